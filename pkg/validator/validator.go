package validator

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var validates a single value against a tag expression such as "required,email".
func (cv *CustomValidator) Var(value interface{}, tag string) error {
	return cv.validator.Var(value, tag)
}

// RegisterStringTag registers a custom tag backed by a string predicate.
func (cv *CustomValidator) RegisterStringTag(tag string, valid func(string) bool) error {
	return cv.validator.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	})
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "len":
				errors[field] = field + " must be exactly " + e.Param() + " characters"
			case "datetime":
				errors[field] = field + " must match the format " + e.Param()
			case "specialty":
				errors[field] = field + " must be a known specialty"
			case "timeslot":
				errors[field] = field + " must be one of the offered time slots"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
