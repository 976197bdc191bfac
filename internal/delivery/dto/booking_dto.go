package dto

import "time"

// Request DTOs

type SelectDoctorRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
}

// ChooseDateRequest carries a calendar date. Format: YYYY-MM-DD
type ChooseDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type ChooseTimeRequest struct {
	Time string `json:"time" validate:"required,timeslot"`
}

// Response DTOs

type BookingSelectionResponse struct {
	State     string          `json:"state"`
	Doctor    *DoctorResponse `json:"doctor"`
	Date      *string         `json:"date"`
	Time      *string         `json:"time"`
	TimeSlots []string        `json:"time_slots"`
	// Changed is false when the event did not apply to the current state.
	Changed bool `json:"changed"`
}

type AppointmentResponse struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	PatientID   string    `json:"patient_id,omitempty"`
	Datetime    time.Time `json:"datetime"`
	BookingCode string    `json:"booking_code"`
	Status      string    `json:"status"`
}

type BookingConfirmationResponse struct {
	Appointment *AppointmentResponse      `json:"appointment"`
	Selection   *BookingSelectionResponse `json:"selection"`
}
