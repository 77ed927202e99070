package interfaces

import (
	"context"
	"time"
)

// Store is the key-value contract the cache-aside layer depends on.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the raw value under key. A missing key is found=false with a nil error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites key unconditionally and resets its expiration to ttl
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Ping checks the store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connections
	Close() error
}
