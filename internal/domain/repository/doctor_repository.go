package repository

import (
	"context"

	"doctor-finder/internal/domain/entity"
)

// DoctorRepository loads the doctor directory in its display order.
type DoctorRepository interface {
	FindAll(ctx context.Context) ([]entity.Doctor, error)
}
