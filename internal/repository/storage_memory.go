package repository

import (
	"context"
	"sync"

	domainRepo "doctor-finder/internal/domain/repository"
)

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage returns a process-local KeyValueStorage.
func NewMemoryStorage() domainRepo.KeyValueStorage {
	return &memoryStorage{values: make(map[string][]byte)}
}

func (s *memoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, domainRepo.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryStorage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
