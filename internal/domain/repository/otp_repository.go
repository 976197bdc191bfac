package repository

import (
	"context"
	"time"

	"doctor-finder/internal/domain/entity"
)

// OTPRepository stores issued codes per client until they expire.
// Find returns nil, nil when nothing is stored.
type OTPRepository interface {
	Save(ctx context.Context, clientID string, challenge *entity.OTPChallenge, ttl time.Duration) error
	Find(ctx context.Context, clientID string) (*entity.OTPChallenge, error)
	Delete(ctx context.Context, clientID string) error
}
