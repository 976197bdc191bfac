package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/usecase"
	"doctor-finder/internal/validation"
	"doctor-finder/pkg/response"
)

type OTPHandler struct {
	otpUsecase usecase.OTPUsecase
	rules      *validation.CredentialRules
}

func NewOTPHandler(otpUsecase usecase.OTPUsecase, rules *validation.CredentialRules) *OTPHandler {
	return &OTPHandler{
		otpUsecase: otpUsecase,
		rules:      rules,
	}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if errs := h.rules.Email.Validate(req.Form()); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	status, err := h.otpUsecase.Send(r.Context(), clientID(r), req.Email)
	if err != nil {
		writeOTPError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Verification code sent", status)
}

func (h *OTPHandler) Resend(w http.ResponseWriter, r *http.Request) {
	status, err := h.otpUsecase.Resend(r.Context(), clientID(r))
	if err != nil {
		writeOTPError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "OTP resent successfully", status)
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if errs := h.rules.OTP.Validate(req.Form()); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	status, err := h.otpUsecase.Verify(r.Context(), clientID(r), req.OTP)
	if err != nil {
		writeOTPError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Email verified successfully", status)
}

func (h *OTPHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.otpUsecase.Status(r.Context(), clientID(r))
	response.Success(w, http.StatusOK, "Verification status retrieved successfully", status)
}

func writeOTPError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrResendNotAllowed):
		response.TooManyRequests(w, "Please wait before requesting another code")
	case errors.Is(err, usecase.ErrOTPNotRequested):
		response.Conflict(w, "No verification code was requested")
	case errors.Is(err, usecase.ErrOTPExpired):
		response.Error(w, http.StatusGone, "Verification code has expired", nil)
	case errors.Is(err, usecase.ErrOTPMismatch):
		response.Error(w, http.StatusBadRequest, "Invalid verification code", nil)
	case errors.Is(err, usecase.ErrDispatchFailed):
		response.BadGateway(w, "Failed to send verification code")
	default:
		response.InternalServerError(w, "Failed to process verification code")
	}
}
