package gateway

import (
	"context"
	"strings"
	"time"

	"doctor-finder/internal/domain/entity"
	domainGateway "doctor-finder/internal/domain/gateway"
	"doctor-finder/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type mockAuthBackend struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	latency    time.Duration
	now        func() time.Time
}

// NewMockAuthBackend accepts any credentials and signs a session token for them.
func NewMockAuthBackend(log *logrus.Logger, jwtService *jwt.JWTService, latency time.Duration) domainGateway.AuthBackend {
	return &mockAuthBackend{log: log, jwtService: jwtService, latency: latency, now: time.Now}
}

func (b *mockAuthBackend) Login(ctx context.Context, email, password string) (*domainGateway.AuthResult, error) {
	return b.issue(ctx, displayNameFromEmail(email), email)
}

func (b *mockAuthBackend) Signup(ctx context.Context, name, email, password string) (*domainGateway.AuthResult, error) {
	return b.issue(ctx, name, email)
}

func (b *mockAuthBackend) issue(ctx context.Context, name, email string) (*domainGateway.AuthResult, error) {
	if err := simulateLatency(ctx, b.latency); err != nil {
		return nil, err
	}

	user := entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: b.now().UTC(),
	}

	token, _, err := b.jwtService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		b.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	return &domainGateway.AuthResult{User: user, Token: token}, nil
}

// displayNameFromEmail uses the local part of the address as the display name.
func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
