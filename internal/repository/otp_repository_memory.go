package repository

import (
	"context"
	"sync"
	"time"

	"doctor-finder/internal/domain/entity"
	domainRepo "doctor-finder/internal/domain/repository"
)

type memoryOTPRepository struct {
	mu         sync.Mutex
	challenges map[string]entity.OTPChallenge
	now        func() time.Time
}

// NewMemoryOTPRepository keeps challenges in process memory; expired entries
// are dropped on read.
func NewMemoryOTPRepository(now func() time.Time) domainRepo.OTPRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryOTPRepository{challenges: make(map[string]entity.OTPChallenge), now: now}
}

func (r *memoryOTPRepository) Save(ctx context.Context, clientID string, challenge *entity.OTPChallenge, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *challenge
	if stored.ExpiresAt.IsZero() {
		stored.ExpiresAt = r.now().Add(ttl)
	}
	r.challenges[clientID] = stored
	return nil
}

func (r *memoryOTPRepository) Find(ctx context.Context, clientID string) (*entity.OTPChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenge, ok := r.challenges[clientID]
	if !ok {
		return nil, nil
	}
	if challenge.IsExpired(r.now()) {
		delete(r.challenges, clientID)
		return nil, nil
	}
	return &challenge, nil
}

func (r *memoryOTPRepository) Delete(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.challenges, clientID)
	return nil
}
