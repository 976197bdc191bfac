package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeSlot is returned for a label outside TimeSlots.
var ErrInvalidTimeSlot = errors.New("invalid time slot")

// TimeSlot is a half-hour booking slot label such as "09:30".
type TimeSlot string

// TimeSlots are the slots offered for every bookable date, in display order.
var TimeSlots = []TimeSlot{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// ParseTimeSlot validates s against TimeSlots.
func ParseTimeSlot(s string) (TimeSlot, error) {
	for _, slot := range TimeSlots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
}

// Clock returns the hour and minute of the slot.
// A label that is not a 24-hour "HH:MM" clock gives 00:00.
func (t TimeSlot) Clock() (hour, minute int) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, 0
	}
	return parsed.Hour(), parsed.Minute()
}
