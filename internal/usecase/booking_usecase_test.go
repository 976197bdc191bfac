package usecase

import (
	"context"
	"testing"
	"time"

	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/domain/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingUsecase(t *testing.T) (*fixture, *fakeBookingBackend, BookingUsecase) {
	t.Helper()
	f := newFixture(t)
	backend := &fakeBookingBackend{}
	return f, backend, NewBookingUsecase(f.log, f.workspaces, f.directory, backend, f.notifier)
}

func readySelection(t *testing.T, u BookingUsecase, clientID string) {
	t.Helper()
	ctx := context.Background()
	require.True(t, u.SelectDoctor(ctx, clientID, "1").Changed)
	require.True(t, u.ChooseDate(ctx, clientID, time.Date(2030, 5, 1, 17, 45, 0, 0, time.UTC)).Changed)
	selection, err := u.ChooseTime(ctx, clientID, "10:30")
	require.NoError(t, err)
	require.Equal(t, string(entity.SelectionReady), selection.State)
}

func TestBookingHappyPath(t *testing.T) {
	f, backend, u := newBookingUsecase(t)
	ctx := context.Background()

	readySelection(t, u, "c1")

	result, err := u.Confirm(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, result.Appointment)
	assert.Equal(t, "1", result.Appointment.DoctorID)
	assert.Equal(t, time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC), result.Appointment.Datetime)
	assert.Equal(t, string(entity.SelectionIdle), result.Selection.State)
	assert.Nil(t, result.Selection.Doctor)
	assert.Nil(t, result.Selection.Date)
	assert.Nil(t, result.Selection.Time)

	require.Len(t, backend.requests, 1)
	notes := f.notifier.Drain("c1")
	require.Len(t, notes, 1)
	assert.Equal(t, entity.NotificationSuccess, notes[0].Kind)
	assert.Equal(t, "Appointment booked successfully!", notes[0].Message)
}

func TestBookingFailureKeepsSelection(t *testing.T) {
	f, backend, u := newBookingUsecase(t)
	backend.err = gateway.ErrSlotUnavailable
	ctx := context.Background()

	readySelection(t, u, "c1")

	_, err := u.Confirm(ctx, "c1")
	assert.ErrorIs(t, err, ErrBookingFailed)
	assert.ErrorIs(t, err, gateway.ErrSlotUnavailable)

	selection := u.GetSelection(ctx, "c1")
	assert.Equal(t, string(entity.SelectionReady), selection.State)
	require.NotNil(t, selection.Time)
	assert.Equal(t, "10:30", *selection.Time)

	notes := f.notifier.Drain("c1")
	require.Len(t, notes, 1)
	assert.Equal(t, entity.NotificationError, notes[0].Kind)
	assert.Equal(t, "Failed to book appointment. Please try again.", notes[0].Message)
}

func TestConfirmOutsideReadyIsNoop(t *testing.T) {
	f, backend, u := newBookingUsecase(t)
	ctx := context.Background()

	u.SelectDoctor(ctx, "c1", "2")
	result, err := u.Confirm(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, result.Appointment)
	assert.False(t, result.Selection.Changed)
	assert.Equal(t, string(entity.SelectionTargeting), result.Selection.State)

	assert.Empty(t, backend.requests)
	assert.Empty(t, f.notifier.Drain("c1"))
}

func TestSelectDoctorOnlyFromVisibleSet(t *testing.T) {
	f, _, u := newBookingUsecase(t)
	ctx := context.Background()

	f.directory.Search(ctx, "c1", &dto.SearchDoctorsQuery{Specialty: entity.SpecialtyDermatology})

	selection := u.SelectDoctor(ctx, "c1", "1")
	assert.False(t, selection.Changed)
	assert.Equal(t, string(entity.SelectionIdle), selection.State)

	selection = u.SelectDoctor(ctx, "c1", "2")
	assert.True(t, selection.Changed)
	assert.Equal(t, "Dr. Michael Chen", selection.Doctor.Name)
}

func TestChooseTimeRejectsUnknownSlot(t *testing.T) {
	_, _, u := newBookingUsecase(t)
	ctx := context.Background()

	u.SelectDoctor(ctx, "c1", "1")
	u.ChooseDate(ctx, "c1", time.Now().AddDate(0, 0, 1))

	_, err := u.ChooseTime(ctx, "c1", "12:00")
	assert.ErrorIs(t, err, entity.ErrInvalidTimeSlot)
	assert.Equal(t, string(entity.SelectionDateChosen), u.GetSelection(ctx, "c1").State)
}

func TestChooseTimeWithoutDateIsNoop(t *testing.T) {
	_, _, u := newBookingUsecase(t)
	ctx := context.Background()

	u.SelectDoctor(ctx, "c1", "1")
	selection, err := u.ChooseTime(ctx, "c1", "09:00")
	require.NoError(t, err)
	assert.False(t, selection.Changed)
	assert.Nil(t, selection.Time)
}

func TestCancelReturnsToIdle(t *testing.T) {
	_, backend, u := newBookingUsecase(t)
	ctx := context.Background()

	readySelection(t, u, "c1")

	selection := u.Cancel(ctx, "c1")
	assert.True(t, selection.Changed)
	assert.Equal(t, string(entity.SelectionIdle), selection.State)
	assert.Empty(t, backend.requests)

	assert.False(t, u.Cancel(ctx, "c1").Changed)
}

func TestConfirmCarriesAuthenticatedPatient(t *testing.T) {
	f, backend, u := newBookingUsecase(t)
	ctx := context.Background()

	auth := NewAuthUsecase(f.log, f.workspaces, f.jwtService, f.notifier)
	_, err := auth.Login(ctx, "c1", &dto.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)

	readySelection(t, u, "c1")
	_, err = u.Confirm(ctx, "c1")
	require.NoError(t, err)

	require.Len(t, backend.requests, 1)
	assert.Equal(t, "user-1", backend.requests[0].PatientID)
}

func TestSelectionsAreIsolatedPerClient(t *testing.T) {
	_, _, u := newBookingUsecase(t)
	ctx := context.Background()

	u.SelectDoctor(ctx, "a", "1")

	assert.Equal(t, string(entity.SelectionIdle), u.GetSelection(ctx, "b").State)
	assert.Equal(t, string(entity.SelectionTargeting), u.GetSelection(ctx, "a").State)
}
