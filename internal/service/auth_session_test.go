package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"doctor-finder/internal/domain/entity"
	domainGateway "doctor-finder/internal/domain/gateway"
	"doctor-finder/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type stubAuthBackend struct {
	err error
}

func (b *stubAuthBackend) Login(ctx context.Context, email, password string) (*domainGateway.AuthResult, error) {
	return b.result("John Doe", email)
}

func (b *stubAuthBackend) Signup(ctx context.Context, name, email, password string) (*domainGateway.AuthResult, error) {
	return b.result(name, email)
}

func (b *stubAuthBackend) result(name, email string) (*domainGateway.AuthResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &domainGateway.AuthResult{
		User:  entity.User{ID: "1", Email: email, Name: name, CreatedAt: time.Unix(0, 0).UTC()},
		Token: "mock.jwt.token",
	}, nil
}

// failingStorage fails every call.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (failingStorage) Set(context.Context, string, []byte) error   { return errors.New("down") }
func (failingStorage) Delete(context.Context, string) error        { return errors.New("down") }

func TestAuthSessionLoginLogout(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryStorage()
	session := NewAuthSession(quietLogger(), storage, "c1:auth-storage", &stubAuthBackend{})

	state, err := session.Login(ctx, "jane@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.Token)
	assert.Equal(t, "mock.jwt.token", *state.Token)
	assert.Equal(t, "jane@example.com", state.User.Email)

	state = session.Logout(ctx)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.Token)
	assert.Nil(t, state.User)
}

func TestAuthSessionPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryStorage()
	session := NewAuthSession(quietLogger(), storage, "c1:auth-storage", &stubAuthBackend{})

	_, err := session.Signup(ctx, "Jane Doe", "jane@example.com", "Abc12345!")
	require.NoError(t, err)

	raw, err := storage.Get(ctx, "c1:auth-storage")
	require.NoError(t, err)
	var persisted map[string]any
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Contains(t, persisted, "state")
	assert.EqualValues(t, 0, persisted["version"])

	restored := NewAuthSession(quietLogger(), storage, "c1:auth-storage", &stubAuthBackend{})
	restored.Rehydrate(ctx)
	state := restored.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "Jane Doe", state.User.Name)

	restored.Logout(ctx)
	again := NewAuthSession(quietLogger(), storage, "c1:auth-storage", &stubAuthBackend{})
	again.Rehydrate(ctx)
	assert.False(t, again.State().IsAuthenticated)
}

func TestAuthSessionRehydrateRestoresInvariant(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, "k", []byte(`{"state":{"user":null,"token":null,"isAuthenticated":true},"version":0}`)))

	session := NewAuthSession(quietLogger(), storage, "k", &stubAuthBackend{})
	session.Rehydrate(ctx)

	assert.False(t, session.State().IsAuthenticated)
}

func TestAuthSessionIgnoresCorruptStorage(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, "k", []byte("{not json")))

	session := NewAuthSession(quietLogger(), storage, "k", &stubAuthBackend{})
	session.Rehydrate(ctx)

	assert.Equal(t, entity.AuthState{}, session.State())
}

func TestAuthSessionStorageFailureIsNotSurfaced(t *testing.T) {
	session := NewAuthSession(quietLogger(), failingStorage{}, "k", &stubAuthBackend{})
	session.Rehydrate(context.Background())

	state, err := session.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, state.IsAuthenticated)
}

func TestAuthSessionBackendFailureKeepsState(t *testing.T) {
	session := NewAuthSession(quietLogger(), repository.NewMemoryStorage(), "k", &stubAuthBackend{err: domainGateway.ErrAuthRejected})

	state, err := session.Login(context.Background(), "jane@example.com", "secret")
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.ErrorIs(t, err, domainGateway.ErrAuthRejected)
	assert.False(t, state.IsAuthenticated)

	_, err = session.Signup(context.Background(), "Jane", "jane@example.com", "secret")
	assert.ErrorIs(t, err, ErrSignupFailed)
}
