package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStorage.Get for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStorage is the durable client-side storage slot used to persist
// authentication state. Writes are last-writer-wins.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
