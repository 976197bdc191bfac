package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/usecase"
	"doctor-finder/pkg/response"
	"doctor-finder/pkg/validator"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
	now            func() time.Time
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
		now:            time.Now,
	}
}

func (h *BookingHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	selection := h.bookingUsecase.GetSelection(r.Context(), clientID(r))
	response.Success(w, http.StatusOK, "Booking selection retrieved successfully", selection)
}

func (h *BookingHandler) SelectDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	selection := h.bookingUsecase.SelectDoctor(r.Context(), clientID(r), req.DoctorID)
	response.Success(w, http.StatusOK, selectionMessage(selection, "Doctor selected"), selection)
}

// ChooseDate accepts calendar days from today (UTC) onwards.
func (h *BookingHandler) ChooseDate(w http.ResponseWriter, r *http.Request) {
	var req dto.ChooseDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.ValidationError(w, map[string]string{"Date": "Date must match the format " + dateLayout})
		return
	}

	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		response.ValidationError(w, map[string]string{"Date": "Date must be today or later"})
		return
	}

	selection := h.bookingUsecase.ChooseDate(r.Context(), clientID(r), date)
	response.Success(w, http.StatusOK, selectionMessage(selection, "Date selected"), selection)
}

func (h *BookingHandler) ChooseTime(w http.ResponseWriter, r *http.Request) {
	var req dto.ChooseTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	selection, err := h.bookingUsecase.ChooseTime(r.Context(), clientID(r), req.Time)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidTimeSlot) {
			response.ValidationError(w, map[string]string{"Time": "Time must be one of the offered time slots"})
			return
		}
		response.InternalServerError(w, "Failed to select time")
		return
	}

	response.Success(w, http.StatusOK, selectionMessage(selection, "Time selected"), selection)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	result, err := h.bookingUsecase.Confirm(r.Context(), clientID(r))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingFailed):
			response.BadGateway(w, "Failed to book appointment. Please try again.")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	if result.Appointment == nil {
		response.Success(w, http.StatusOK, "Booking selection is not complete", result)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully!", result)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	selection := h.bookingUsecase.Cancel(r.Context(), clientID(r))
	response.Success(w, http.StatusOK, selectionMessage(selection, "Booking cancelled"), selection)
}

func selectionMessage(selection *dto.BookingSelectionResponse, applied string) string {
	if !selection.Changed {
		return "Selection unchanged"
	}
	return applied
}
