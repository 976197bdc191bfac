package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doctor-finder/internal/domain/entity"
	domainGateway "doctor-finder/internal/domain/gateway"
	domainRepo "doctor-finder/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrLoginFailed  = errors.New("login failed")
	ErrSignupFailed = errors.New("signup failed")
)

// persistedAuthState is the stored envelope of the auth slot.
type persistedAuthState struct {
	State   entity.AuthState `json:"state"`
	Version int              `json:"version"`
}

const persistedAuthVersion = 0

// AuthSession owns the authentication state of one client and mirrors it to
// a storage slot after every successful mutation.
//
// AuthSession is not safe for concurrent use; its workspace serialises access.
type AuthSession struct {
	log     *logrus.Logger
	storage domainRepo.KeyValueStorage
	key     string
	backend domainGateway.AuthBackend
	state   entity.AuthState
}

func NewAuthSession(log *logrus.Logger, storage domainRepo.KeyValueStorage, key string, backend domainGateway.AuthBackend) *AuthSession {
	return &AuthSession{
		log:     log,
		storage: storage,
		key:     key,
		backend: backend,
	}
}

// Rehydrate loads the stored state. A missing or unreadable slot leaves the
// session logged out.
func (s *AuthSession) Rehydrate(ctx context.Context) {
	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domainRepo.ErrKeyNotFound) {
			s.log.Warnf("Failed to read auth storage %s: %+v", s.key, err)
		}
		return
	}

	var persisted persistedAuthState
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.log.Warnf("Failed to decode auth storage %s: %+v", s.key, err)
		return
	}
	s.state = persisted.State.Normalize()
}

// State returns the current authentication state.
func (s *AuthSession) State() entity.AuthState {
	return s.state
}

func (s *AuthSession) Login(ctx context.Context, email, password string) (entity.AuthState, error) {
	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return s.state, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	s.state = entity.NewAuthState(result.User, result.Token)
	s.persist(ctx)
	return s.state, nil
}

func (s *AuthSession) Signup(ctx context.Context, name, email, password string) (entity.AuthState, error) {
	result, err := s.backend.Signup(ctx, name, email, password)
	if err != nil {
		return s.state, fmt.Errorf("%w: %w", ErrSignupFailed, err)
	}
	s.state = entity.NewAuthState(result.User, result.Token)
	s.persist(ctx)
	return s.state, nil
}

// Logout clears the identity and token.
func (s *AuthSession) Logout(ctx context.Context) entity.AuthState {
	s.state = entity.AuthState{}
	s.persist(ctx)
	return s.state
}

// persist writes the state to storage. Failures are logged only.
func (s *AuthSession) persist(ctx context.Context) {
	data, err := json.Marshal(persistedAuthState{State: s.state, Version: persistedAuthVersion})
	if err != nil {
		s.log.Warnf("Failed to encode auth state: %+v", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.log.Warnf("Failed to write auth storage %s: %+v", s.key, err)
	}
}
