package validation

import (
	"doctor-finder/internal/domain/entity"
	"doctor-finder/pkg/validator"
)

// RegisterTags adds the domain tags used by request DTOs.
func RegisterTags(cv *validator.CustomValidator) error {
	if err := cv.RegisterStringTag("specialty", entity.IsSpecialtySelector); err != nil {
		return err
	}
	return cv.RegisterStringTag("timeslot", func(s string) bool {
		_, err := entity.ParseTimeSlot(s)
		return err == nil
	})
}
