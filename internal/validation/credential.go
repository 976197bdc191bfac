// Package validation holds the credential rule sets of the login, signup and
// OTP forms. Rule sets are evaluated before any backend is contacted.
package validation

import (
	"regexp"

	"doctor-finder/pkg/validator"
)

// Form field names, matching the JSON request fields.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPhone           = "phone"
	FieldConfirmPassword = "confirm_password"
	FieldOTP             = "otp"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern  = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// CredentialRules groups the rule set of each form.
type CredentialRules struct {
	Login  *validator.RuleSet
	Signup *validator.RuleSet
	OTP    *validator.RuleSet
	Email  *validator.RuleSet
}

func NewCredentialRules(cv *validator.CustomValidator) *CredentialRules {
	email := []validator.Rule{
		validator.Tag(cv, "email", "Invalid email address"),
		validator.Matches(emailPattern, "Invalid email format"),
	}

	return &CredentialRules{
		Login: validator.NewRuleSet().
			Field(FieldEmail, email...).
			Field(FieldPassword, validator.MinLength(1, "Password is required")),
		Signup: validator.NewRuleSet().
			Field(FieldName, validator.MinLength(2, "Name must be at least 2 characters")).
			Field(FieldEmail, email...).
			Field(FieldPassword, PasswordRules()...).
			Field(FieldPhone, validator.Matches(phonePattern, "Phone number must be in international format (e.g., +1234567890)")).
			Field(FieldConfirmPassword, validator.EqualsField(FieldPassword, "Passwords don't match")),
		OTP: validator.NewRuleSet().
			Field(FieldOTP, validator.ExactLength(6, "OTP must be 6 digits")),
		Email: validator.NewRuleSet().
			Field(FieldEmail, email...),
	}
}

// PasswordRules is the composite password policy of the signup form.
func PasswordRules() []validator.Rule {
	return []validator.Rule{
		validator.MinLength(8, "Password must be at least 8 characters"),
		validator.Matches(upperPattern, "Password must contain at least one uppercase letter"),
		validator.Matches(lowerPattern, "Password must contain at least one lowercase letter"),
		validator.Matches(digitPattern, "Password must contain at least one number"),
		validator.Matches(symbolPattern, "Password must contain at least one special character"),
	}
}
