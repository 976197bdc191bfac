package dto

import "doctor-finder/pkg/validator"

// Request DTOs

type SendOTPRequest struct {
	Email string `json:"email"`
}

func (r *SendOTPRequest) Form() validator.Form {
	return validator.Form{"email": r.Email}
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

func (r *VerifyOTPRequest) Form() validator.Form {
	return validator.Form{"otp": r.OTP}
}

// Response DTOs

type OTPStatusResponse struct {
	Email string `json:"email,omitempty"`
	// Countdown is the number of seconds until resend is enabled.
	Countdown int  `json:"countdown"`
	CanResend bool `json:"can_resend"`
	Verified  bool `json:"verified"`
}
