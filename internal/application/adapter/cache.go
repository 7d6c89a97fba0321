// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Cache stores JSON-serializable values by key.
type Cache interface {
	// Get loads the value stored at key into dst. It reports false when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value at key for the given ttl. A zero ttl keeps it until overwritten.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error
}
