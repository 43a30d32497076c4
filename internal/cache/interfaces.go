package cache

import (
	"context"
	"time"
)

// Store is the key-value contract the cache layer consumes.
// MemoryStore serves development and tests, RedisStore serves production.
// Implementations report connectivity problems as errors wrapping ErrStoreUnavailable.
type Store interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMatching removes every key matching a glob pattern and returns how many were removed.
	DeleteMatching(ctx context.Context, pattern string) (int64, error)
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Common cache errors
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"

	// ErrStoreUnavailable indicates the store could not be reached or timed out.
	ErrStoreUnavailable CacheError = "cache store unavailable"

	// ErrSerialization indicates a value could not be encoded for storage.
	ErrSerialization CacheError = "cache serialization failed"
)
