package converter

import (
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	slots := make([]string, len(doctor.AvailableSlots))
	copy(slots, doctor.AvailableSlots)

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialty:      doctor.Specialty,
		Experience:     doctor.Experience,
		Rating:         doctor.Rating,
		AvailableSlots: slots,
		Image:          doctor.Image,
		Location:       doctor.Location,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorListToResponse wraps the visible doctors with the filter that produced them
func DoctorListToResponse(doctors []entity.Doctor, filter entity.FilterState) *dto.DoctorListResponse {
	return &dto.DoctorListResponse{
		Doctors: DoctorsToResponses(doctors),
		Total:   len(doctors),
		Filter: dto.FilterResponse{
			Query:     filter.Query,
			Specialty: filter.Specialty,
		},
	}
}
