package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doctor-finder/internal/converter"
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/domain/gateway"
	"doctor-finder/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrBookingFailed = errors.New("failed to book appointment")
)

const (
	msgBookingSucceeded = "Appointment booked successfully!"
	msgBookingFailed    = "Failed to book appointment. Please try again."
)

// BookingUsecase drives the booking selection of each client.
//
// Events that do not apply to the current selection state are no-ops: the
// unchanged selection is returned with Changed set to false.
type BookingUsecase interface {
	GetSelection(ctx context.Context, clientID string) *dto.BookingSelectionResponse
	SelectDoctor(ctx context.Context, clientID, doctorID string) *dto.BookingSelectionResponse
	ChooseDate(ctx context.Context, clientID string, date time.Time) *dto.BookingSelectionResponse
	ChooseTime(ctx context.Context, clientID, slot string) (*dto.BookingSelectionResponse, error)
	Confirm(ctx context.Context, clientID string) (*dto.BookingConfirmationResponse, error)
	Cancel(ctx context.Context, clientID string) *dto.BookingSelectionResponse
}

type bookingUsecase struct {
	log        *logrus.Logger
	workspaces *service.WorkspaceRegistry
	directory  DirectoryUsecase
	backend    gateway.BookingBackend
	notifier   service.Notifier
}

func NewBookingUsecase(
	log *logrus.Logger,
	workspaces *service.WorkspaceRegistry,
	directory DirectoryUsecase,
	backend gateway.BookingBackend,
	notifier service.Notifier,
) BookingUsecase {
	return &bookingUsecase{
		log:        log,
		workspaces: workspaces,
		directory:  directory,
		backend:    backend,
		notifier:   notifier,
	}
}

func (u *bookingUsecase) GetSelection(ctx context.Context, clientID string) *dto.BookingSelectionResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	return converter.SelectionToResponse(&ws.Selection, false)
}

// SelectDoctor targets a doctor from the client's currently visible doctors.
func (u *bookingUsecase) SelectDoctor(ctx context.Context, clientID, doctorID string) *dto.BookingSelectionResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	visible := ws.Filter.Apply(u.directory.Doctors())
	changed := ws.Selection.SelectDoctor(visible, doctorID)
	return converter.SelectionToResponse(&ws.Selection, changed)
}

func (u *bookingUsecase) ChooseDate(ctx context.Context, clientID string, date time.Time) *dto.BookingSelectionResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	changed := ws.Selection.ChooseDate(date)
	return converter.SelectionToResponse(&ws.Selection, changed)
}

func (u *bookingUsecase) ChooseTime(ctx context.Context, clientID, slot string) (*dto.BookingSelectionResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	changed, err := ws.Selection.ChooseTime(entity.TimeSlot(slot))
	if err != nil {
		return nil, err
	}
	return converter.SelectionToResponse(&ws.Selection, changed), nil
}

// Confirm books the ready selection. The workspace stays locked for the
// duration of the backend call, so no other event of the client interleaves.
//
// On success the selection is cleared; on failure it is kept for a retry.
func (u *bookingUsecase) Confirm(ctx context.Context, clientID string) (*dto.BookingConfirmationResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	req, ok := ws.Selection.Request()
	if !ok {
		return &dto.BookingConfirmationResponse{
			Selection: converter.SelectionToResponse(&ws.Selection, false),
		}, nil
	}

	if state := ws.Auth.State(); state.IsAuthenticated && state.User != nil {
		req.PatientID = state.User.ID
	}

	appointment, err := u.backend.Book(ctx, req)
	if err != nil {
		u.log.Warnf("Failed to book appointment with doctor %s: %+v", req.DoctorID, err)
		u.notifier.Failure(ctx, clientID, msgBookingFailed)
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	ws.Selection.Clear()
	u.notifier.Success(ctx, clientID, msgBookingSucceeded)
	u.log.Debugf("Booking selection cleared for client %s after %s", clientID, appointment.BookingCode)

	return &dto.BookingConfirmationResponse{
		Appointment: converter.AppointmentToResponse(appointment),
		Selection:   converter.SelectionToResponse(&ws.Selection, true),
	}, nil
}

// Cancel returns the selection to idle without side effects.
func (u *bookingUsecase) Cancel(ctx context.Context, clientID string) *dto.BookingSelectionResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	changed := ws.Selection.Cancel()
	return converter.SelectionToResponse(&ws.Selection, changed)
}
