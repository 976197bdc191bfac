package entity

import (
	"time"
)

// AppointmentStatus represents the status of a booked appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is the confirmation returned by the booking backend
type Appointment struct {
	ID          string            `json:"id"`
	DoctorID    string            `json:"doctor_id"`
	PatientID   string            `json:"patient_id,omitempty"`
	Datetime    time.Time         `json:"datetime"`
	BookingCode string            `json:"booking_code"`
	Status      AppointmentStatus `json:"status"`
}

// IsScheduled checks if appointment is still scheduled
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// BookingRequest is the (doctor, date, time) triple sent to the booking backend
type BookingRequest struct {
	DoctorID  string
	PatientID string
	Date      time.Time
	Time      TimeSlot
}

// Datetime combines the request date and time slot in the date's location.
func (r BookingRequest) Datetime() time.Time {
	hour, minute := r.Time.Clock()
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), hour, minute, 0, 0, r.Date.Location())
}
