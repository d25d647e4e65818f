package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the key has no value.
var ErrNotFound = errors.New("cache: key not found")

// Store is a minimal key-value abstraction over the persistence backend.
// Production uses Redis; tests and redis-less development use MemoryStore.
type Store interface {
	// Set stores a key-value pair. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get retrieves a value by key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend connection.
	Close() error
}
