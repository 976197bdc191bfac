package handler

import (
	"errors"
	"net/http"

	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/usecase"
	"doctor-finder/pkg/response"
	"doctor-finder/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	directoryUsecase usecase.DirectoryUsecase
	validator        *validator.CustomValidator
}

func NewDoctorHandler(directoryUsecase usecase.DirectoryUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
	}
}

// SearchDoctors handles the search box and specialty selector.
// Every call replaces the client's filter state.
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := dto.SearchDoctorsQuery{
		Query:     r.URL.Query().Get("q"),
		Specialty: r.URL.Query().Get("specialty"),
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctors := h.directoryUsecase.Search(r.Context(), clientID(r), &query)
	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.directoryUsecase.GetDoctor(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Specialties retrieved successfully", h.directoryUsecase.Specialties(r.Context()))
}
