package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"doctor-finder/config"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/domain/gateway"
	"doctor-finder/internal/repository"
	"doctor-finder/internal/service"
	"doctor-finder/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stillClock hands out tickers that never tick.
type stillClock struct{}

func (stillClock) NewTicker(time.Duration) service.Ticker { return stillTicker{} }

type stillTicker struct{}

func (stillTicker) C() <-chan time.Time { return nil }
func (stillTicker) Stop()               {}

type fakeBookingBackend struct {
	mu       sync.Mutex
	err      error
	requests []entity.BookingRequest
}

func (b *fakeBookingBackend) Book(ctx context.Context, req entity.BookingRequest) (*entity.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	if b.err != nil {
		return nil, b.err
	}
	return &entity.Appointment{
		ID:          "apt-1",
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		Datetime:    req.Datetime(),
		BookingCode: "BK-TEST",
		Status:      entity.AppointmentStatusScheduled,
	}, nil
}

type fakeAuthBackend struct {
	jwtService *jwt.JWTService
	err        error
}

func (b *fakeAuthBackend) Login(ctx context.Context, email, password string) (*gateway.AuthResult, error) {
	return b.issue("Jane", email)
}

func (b *fakeAuthBackend) Signup(ctx context.Context, name, email, password string) (*gateway.AuthResult, error) {
	return b.issue(name, email)
}

func (b *fakeAuthBackend) issue(name, email string) (*gateway.AuthResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	token, _, err := b.jwtService.GenerateSessionToken("user-1", email)
	if err != nil {
		return nil, err
	}
	return &gateway.AuthResult{
		User:  entity.User{ID: "user-1", Email: email, Name: name, CreatedAt: time.Now().UTC()},
		Token: token,
	}, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	err   error
	codes []string
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *fakeMailer) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.codes) == 0 {
		return ""
	}
	return m.codes[len(m.codes)-1]
}

type fixture struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	notifier   service.Notifier
	workspaces *service.WorkspaceRegistry
	auth       *fakeAuthBackend
	directory  DirectoryUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := quietLogger()
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	notifier := service.NewNotificationService(log)
	auth := &fakeAuthBackend{jwtService: jwtService}

	workspaces := service.NewWorkspaceRegistry(log, repository.NewMemoryStorage(), auth, notifier, service.WorkspaceOptions{
		StorageNamespace: "auth-storage",
		Clock:            stillClock{},
		CountdownSeconds: 60,
	})
	t.Cleanup(workspaces.Stop)

	directory, err := NewDirectoryUsecase(context.Background(), log, repository.NewSeedDoctorRepository(entity.SeedDoctors()), workspaces)
	require.NoError(t, err)

	return &fixture{
		log:        log,
		jwtService: jwtService,
		notifier:   notifier,
		workspaces: workspaces,
		auth:       auth,
		directory:  directory,
	}
}
