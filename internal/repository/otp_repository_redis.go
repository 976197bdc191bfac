package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"doctor-finder/internal/domain/entity"
	domainRepo "doctor-finder/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisOTPKeyPrefix namespaces issued codes; the key expires with the code.
const RedisOTPKeyPrefix = "otp:"

type redisOTPRepository struct {
	redisClient *redis.Client
}

func NewRedisOTPRepository(redisClient *redis.Client) domainRepo.OTPRepository {
	return &redisOTPRepository{redisClient: redisClient}
}

func (r *redisOTPRepository) Save(ctx context.Context, clientID string, challenge *entity.OTPChallenge, ttl time.Duration) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}
	return r.redisClient.Set(ctx, RedisOTPKeyPrefix+clientID, data, ttl).Err()
}

func (r *redisOTPRepository) Find(ctx context.Context, clientID string) (*entity.OTPChallenge, error) {
	data, err := r.redisClient.Get(ctx, RedisOTPKeyPrefix+clientID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var challenge entity.OTPChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp challenge: %w", err)
	}
	return &challenge, nil
}

func (r *redisOTPRepository) Delete(ctx context.Context, clientID string) error {
	return r.redisClient.Del(ctx, RedisOTPKeyPrefix+clientID).Err()
}
