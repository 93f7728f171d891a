package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Keeping it as an interface lets
// tests swap in an in-memory fake and keeps domain code off the redis client.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// Returns (false, nil) on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX stores a value only if the key does not already exist.
	// Returns true if the key was set. Used as a single-flight lock for
	// scheduled jobs that must not overlap with themselves.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
