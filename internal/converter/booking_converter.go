package converter

import (
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// SelectionToResponse converts a BookingSelection to BookingSelectionResponse DTO
func SelectionToResponse(selection *entity.BookingSelection, changed bool) *dto.BookingSelectionResponse {
	response := &dto.BookingSelectionResponse{
		State:     string(selection.State()),
		Doctor:    DoctorToResponse(selection.Doctor),
		TimeSlots: TimeSlotsToStrings(entity.TimeSlots),
		Changed:   changed,
	}

	if selection.Date != nil {
		date := selection.Date.Format(dateLayout)
		response.Date = &date
	}
	if selection.Time != "" {
		slot := string(selection.Time)
		response.Time = &slot
	}

	return response
}

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		DoctorID:    appointment.DoctorID,
		PatientID:   appointment.PatientID,
		Datetime:    appointment.Datetime,
		BookingCode: appointment.BookingCode,
		Status:      string(appointment.Status),
	}
}

func TimeSlotsToStrings(slots []entity.TimeSlot) []string {
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = string(slot)
	}
	return labels
}
