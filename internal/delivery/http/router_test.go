package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"doctor-finder/config"
	"doctor-finder/internal/delivery/http/handler"
	"doctor-finder/internal/delivery/http/middleware"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/gateway"
	"doctor-finder/internal/repository"
	"doctor-finder/internal/service"
	"doctor-finder/internal/usecase"
	"doctor-finder/internal/validation"
	"doctor-finder/pkg/jwt"
	"doctor-finder/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Error    json.RawMessage `json:"error"`
	Redirect string          `json:"redirect"`
}

// stillClock hands out tickers that never tick.
type stillClock struct{}

func (stillClock) NewTicker(time.Duration) service.Ticker { return stillTicker{} }

type stillTicker struct{}

func (stillTicker) C() <-chan time.Time { return nil }
func (stillTicker) Stop()               {}

type captureMailer struct {
	mu   sync.Mutex
	code string
}

func (m *captureMailer) SendOTP(ctx context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code = code
	return nil
}

func (m *captureMailer) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.code
}

type testServer struct {
	handler http.Handler
	mailer  *captureMailer
}

func newTestServer(t *testing.T, requestsPerMinute, burst int) *testServer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	cv := validator.NewValidator()
	require.NoError(t, validation.RegisterTags(cv))
	rules := validation.NewCredentialRules(cv)

	notifier := service.NewNotificationService(log)
	authBackend := gateway.NewMockAuthBackend(log, jwtService, 0)
	workspaces := service.NewWorkspaceRegistry(log, repository.NewMemoryStorage(), authBackend, notifier, service.WorkspaceOptions{
		StorageNamespace: "auth-storage",
		Clock:            stillClock{},
		CountdownSeconds: 60,
	})
	t.Cleanup(workspaces.Stop)

	directory, err := usecase.NewDirectoryUsecase(context.Background(), log, repository.NewSeedDoctorRepository(entity.SeedDoctors()), workspaces)
	require.NoError(t, err)
	mailer := &captureMailer{}

	router := NewRouter(
		handler.NewDoctorHandler(directory, cv),
		handler.NewBookingHandler(usecase.NewBookingUsecase(log, workspaces, directory, gateway.NewMockBookingBackend(log, 0), notifier), cv),
		handler.NewAuthHandler(usecase.NewAuthUsecase(log, workspaces, jwtService, notifier), rules),
		handler.NewOTPHandler(usecase.NewOTPUsecase(log, workspaces, repository.NewMemoryOTPRepository(nil), mailer, notifier, 5*time.Minute), rules),
		handler.NewNotificationHandler(notifier),
		middleware.NewClientMiddleware(),
		middleware.NewAuthMiddleware(usecase.NewAuthUsecase(log, workspaces, jwtService, notifier)),
		middleware.NewCORSMiddleware(),
		middleware.NewRateLimitMiddleware(requestsPerMinute, burst),
	)

	return &testServer{handler: router.Setup(), mailer: mailer}
}

func (s *testServer) do(t *testing.T, method, path, clientID string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if clientID != "" {
		req.Header.Set(middleware.ClientIDHeader, clientID)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthIssuesClientID(t *testing.T) {
	s := newTestServer(t, 600, 100)

	rec, env := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get(middleware.ClientIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/health", "abc", nil)
	assert.Equal(t, "abc", rec.Header().Get(middleware.ClientIDHeader))
}

func TestSearchDoctors(t *testing.T) {
	s := newTestServer(t, 600, 100)

	rec, env := s.do(t, http.MethodGet, "/api/v1/doctors?q=chen", "c1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Doctors []struct{ ID string } `json:"doctors"`
		Total   int                   `json:"total"`
	}](t, env.Data)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "2", list.Doctors[0].ID)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/doctors?specialty=Neurology", "c1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/doctors/9", "c1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t, 600, 100)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	_, env := s.do(t, http.MethodPost, "/api/v1/booking/doctor", "c1", map[string]string{"doctor_id": "3"})
	assert.Equal(t, "targeting", decode[struct{ State string }](t, env.Data).State)

	rec, _ := s.do(t, http.MethodPut, "/api/v1/booking/date", "c1", map[string]string{"date": "2000-01-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/v1/booking/date", "c1", map[string]string{"date": tomorrow})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/v1/booking/time", "c1", map[string]string{"time": "13:00"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = s.do(t, http.MethodPut, "/api/v1/booking/time", "c1", map[string]string{"time": "14:30"})
	assert.Equal(t, "ready", decode[struct{ State string }](t, env.Data).State)

	rec, env = s.do(t, http.MethodPost, "/api/v1/booking/confirm", "c1", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	result := decode[struct {
		Appointment struct {
			DoctorID    string `json:"doctor_id"`
			BookingCode string `json:"booking_code"`
		} `json:"appointment"`
		Selection struct{ State string } `json:"selection"`
	}](t, env.Data)
	assert.Equal(t, "3", result.Appointment.DoctorID)
	assert.NotEmpty(t, result.Appointment.BookingCode)
	assert.Equal(t, "idle", result.Selection.State)

	_, env = s.do(t, http.MethodGet, "/api/v1/notifications", "c1", nil)
	notes := decode[struct {
		Notifications []struct{ Kind, Message string } `json:"notifications"`
	}](t, env.Data)
	require.Len(t, notes.Notifications, 1)
	assert.Equal(t, "Appointment booked successfully!", notes.Notifications[0].Message)
}

func TestNoopEventsReturnUnchangedState(t *testing.T) {
	s := newTestServer(t, 600, 100)

	rec, env := s.do(t, http.MethodPost, "/api/v1/booking/confirm", "c1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking selection is not complete", env.Message)

	rec, env = s.do(t, http.MethodDelete, "/api/v1/booking", "c1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[struct{ Changed bool }](t, env.Data).Changed)
}

func TestSignupValidationReportsEveryRule(t *testing.T) {
	s := newTestServer(t, 600, 100)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/signup", "c1", map[string]string{
		"name":             "Jane",
		"email":            "jane@example.com",
		"password":         "abc12345",
		"phone":            "+14155550123",
		"confirm_password": "abc12345",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[map[string][]string](t, env.Error)
	assert.Equal(t, []string{
		"Password must contain at least one uppercase letter",
		"Password must contain at least one special character",
	}, errs["password"])
	assert.NotContains(t, errs, "confirm_password")
}

func TestProtectedRouteRequiresCurrentToken(t *testing.T) {
	s := newTestServer(t, 600, 100)

	rec, env := s.do(t, http.MethodGet, "/api/v1/me", "c1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", env.Redirect)

	rec, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "c1", map[string]string{"email": "jane@example.com", "password": "x"})
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[struct {
		Token           string `json:"token"`
		IsAuthenticated bool   `json:"is_authenticated"`
	}](t, env.Data)
	require.True(t, state.IsAuthenticated)

	rec, env = s.do(t, http.MethodGet, "/api/v1/me", "c1", nil, "Authorization", "Bearer "+state.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane@example.com", decode[struct{ Email string }](t, env.Data).Email)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/me", "c2", nil, "Authorization", "Bearer "+state.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.do(t, http.MethodPost, "/api/v1/auth/logout", "c1", nil)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/me", "c1", nil, "Authorization", "Bearer "+state.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOTPFlow(t *testing.T) {
	s := newTestServer(t, 600, 100)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/otp/send", "c1", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/otp/send", "c1", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/otp/resend", "c1", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/otp/verify", "c1", map[string]string{"otp": "123"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"OTP must be 6 digits"}, decode[map[string][]string](t, env.Error)["otp"])

	rec, env = s.do(t, http.MethodPost, "/api/v1/auth/otp/verify", "c1", map[string]string{"otp": s.mailer.last()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[struct{ Verified bool }](t, env.Data).Verified)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, 1, 2)

	for i := 0; i < 2; i++ {
		rec, _ := s.do(t, http.MethodGet, "/api/v1/auth/session", "c1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, _ := s.do(t, http.MethodGet, "/api/v1/auth/session", "c1", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other clients have their own bucket.
	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/session", "c2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
