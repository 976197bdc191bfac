package dto

import (
	"time"

	"doctor-finder/pkg/validator"
)

// Request DTOs
//
// Credential requests are checked by rule sets, not struct tags, so every
// violated rule can be reported per field.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Form() validator.Form {
	return validator.Form{
		"email":    r.Email,
		"password": r.Password,
	}
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Phone           string `json:"phone"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *SignupRequest) Form() validator.Form {
	return validator.Form{
		"name":             r.Name,
		"email":            r.Email,
		"password":         r.Password,
		"phone":            r.Phone,
		"confirm_password": r.ConfirmPassword,
	}
}

// Response DTOs

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthStateResponse struct {
	User            *UserResponse `json:"user"`
	Token           *string       `json:"token"`
	IsAuthenticated bool          `json:"is_authenticated"`
	ExpiresIn       int64         `json:"expires_in,omitempty"`
}
