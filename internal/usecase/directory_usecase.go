package usecase

import (
	"context"
	"errors"

	"doctor-finder/internal/converter"
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/domain/repository"
	"doctor-finder/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
)

type DirectoryUsecase interface {
	Search(ctx context.Context, clientID string, query *dto.SearchDoctorsQuery) *dto.DoctorListResponse
	GetDoctor(ctx context.Context, id string) (*dto.DoctorResponse, error)
	Specialties(ctx context.Context) *dto.SpecialtyListResponse
	Doctors() []entity.Doctor
}

type directoryUsecase struct {
	log        *logrus.Logger
	workspaces *service.WorkspaceRegistry
	doctors    []entity.Doctor
}

// NewDirectoryUsecase loads the directory once. The snapshot is never
// reloaded or mutated afterwards.
func NewDirectoryUsecase(
	ctx context.Context,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	workspaces *service.WorkspaceRegistry,
) (DirectoryUsecase, error) {
	doctors, err := doctorRepo.FindAll(ctx)
	if err != nil {
		log.Warnf("Failed to load doctor directory: %+v", err)
		return nil, err
	}
	log.Infof("Doctor directory loaded: %d doctors", len(doctors))

	return &directoryUsecase{
		log:        log,
		workspaces: workspaces,
		doctors:    doctors,
	}, nil
}

// Search replaces the client's filter state and returns the visible doctors.
// An empty specialty selects all specialties.
func (u *directoryUsecase) Search(ctx context.Context, clientID string, query *dto.SearchDoctorsQuery) *dto.DoctorListResponse {
	filter := entity.FilterState{Query: query.Query, Specialty: query.Specialty}
	if filter.Specialty == "" {
		filter.Specialty = entity.AllSpecialties
	}

	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	ws.Filter = filter
	return converter.DoctorListToResponse(filter.Apply(u.doctors), filter)
}

func (u *directoryUsecase) GetDoctor(ctx context.Context, id string) (*dto.DoctorResponse, error) {
	doctor := entity.FindDoctor(u.doctors, id)
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *directoryUsecase) Specialties(ctx context.Context) *dto.SpecialtyListResponse {
	specialties := make([]string, len(entity.Specialties))
	copy(specialties, entity.Specialties)
	return &dto.SpecialtyListResponse{
		Default:     entity.AllSpecialties,
		Specialties: specialties,
	}
}

// Doctors returns the directory snapshot. Callers must not modify it.
func (u *directoryUsecase) Doctors() []entity.Doctor {
	return u.doctors
}
