package repository

import (
	"context"
	"errors"

	domainRepo "doctor-finder/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisStorageKeyPrefix namespaces the storage slots in Redis
const RedisStorageKeyPrefix = "storage:"

type redisStorage struct {
	redisClient *redis.Client
}

// NewRedisStorage returns a KeyValueStorage backed by Redis strings without expiry.
func NewRedisStorage(redisClient *redis.Client) domainRepo.KeyValueStorage {
	return &redisStorage{redisClient: redisClient}
}

func (s *redisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.redisClient.Get(ctx, RedisStorageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainRepo.ErrKeyNotFound
	}
	return value, err
}

func (s *redisStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.redisClient.Set(ctx, RedisStorageKeyPrefix+key, value, 0).Err()
}

func (s *redisStorage) Delete(ctx context.Context, key string) error {
	return s.redisClient.Del(ctx, RedisStorageKeyPrefix+key).Err()
}
