// Package gateway declares the remote capabilities the service depends on.
// Every call is deferred and may fail; callers handle the error branch even
// when the configured implementation never fails.
package gateway

import (
	"context"
	"errors"

	"doctor-finder/internal/domain/entity"
)

var (
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrAuthRejected    = errors.New("authentication rejected")
)

// BookingBackend books a (doctor, date, time) triple.
type BookingBackend interface {
	Book(ctx context.Context, req entity.BookingRequest) (*entity.Appointment, error)
}

// AuthResult is a successful authentication: the identity and its session token.
type AuthResult struct {
	User  entity.User
	Token string
}

// AuthBackend authenticates and registers users.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
}

// MailDispatch delivers one-time codes by email.
type MailDispatch interface {
	SendOTP(ctx context.Context, to, code string) error
}
