package entity

import "time"

// SelectionState is the state of the booking dialog.
type SelectionState string

const (
	SelectionIdle       SelectionState = "idle"
	SelectionTargeting  SelectionState = "targeting"
	SelectionDateChosen SelectionState = "date_chosen"
	SelectionReady      SelectionState = "ready"
)

// BookingSelection tracks the doctor, date and time picked in the booking dialog.
//
// Transitions that do not apply to the current state are ignored and reported
// as false; none of them is an error.
type BookingSelection struct {
	Doctor *Doctor
	Date   *time.Time
	Time   TimeSlot
}

// State derives the dialog state from the selected fields.
func (s *BookingSelection) State() SelectionState {
	switch {
	case s.Doctor == nil:
		return SelectionIdle
	case s.Date == nil:
		return SelectionTargeting
	case s.Time == "":
		return SelectionDateChosen
	default:
		return SelectionReady
	}
}

// SelectDoctor targets the doctor with the given id, looked up in visible.
// Only valid while idle.
func (s *BookingSelection) SelectDoctor(visible []Doctor, doctorID string) bool {
	if s.State() != SelectionIdle {
		return false
	}
	doctor := FindDoctor(visible, doctorID)
	if doctor == nil {
		return false
	}
	selected := *doctor
	s.Doctor = &selected
	return true
}

// ChooseDate sets the calendar date, truncated to midnight in its location.
// A time already chosen is kept.
func (s *BookingSelection) ChooseDate(date time.Time) bool {
	if s.State() == SelectionIdle {
		return false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	s.Date = &day
	return true
}

// ChooseTime sets the time slot. It needs a date and a valid slot.
func (s *BookingSelection) ChooseTime(slot TimeSlot) (bool, error) {
	if _, err := ParseTimeSlot(string(slot)); err != nil {
		return false, err
	}
	switch s.State() {
	case SelectionDateChosen, SelectionReady:
		s.Time = slot
		return true, nil
	default:
		return false, nil
	}
}

// Request returns the booking triple when the selection is ready.
func (s *BookingSelection) Request() (BookingRequest, bool) {
	if s.State() != SelectionReady {
		return BookingRequest{}, false
	}
	return BookingRequest{
		DoctorID: s.Doctor.ID,
		Date:     *s.Date,
		Time:     s.Time,
	}, true
}

// Cancel clears the selection. Returns false when already idle.
func (s *BookingSelection) Cancel() bool {
	if s.State() == SelectionIdle {
		return false
	}
	s.Clear()
	return true
}

// Clear resets every field.
func (s *BookingSelection) Clear() {
	s.Doctor = nil
	s.Date = nil
	s.Time = ""
}
