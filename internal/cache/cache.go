package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found in cache")

// Cache is a byte-oriented snapshot cache. The listing service can run with
// a nil Cache; it is an optimization, never a source of truth.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, keys ...string) error

	Close() error
}
