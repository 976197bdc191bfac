package repository

import (
	"context"

	"doctor-finder/internal/domain/entity"
	domainRepo "doctor-finder/internal/domain/repository"
)

type seedDoctorRepository struct {
	doctors []entity.Doctor
}

// NewSeedDoctorRepository serves the given doctors from memory.
func NewSeedDoctorRepository(doctors []entity.Doctor) domainRepo.DoctorRepository {
	return &seedDoctorRepository{doctors: doctors}
}

func (r *seedDoctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	doctors := make([]entity.Doctor, len(r.doctors))
	copy(doctors, r.doctors)
	return doctors, nil
}
