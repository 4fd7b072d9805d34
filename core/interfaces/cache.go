// ABOUTME: Cache interface for validation verdicts
// ABOUTME: Backends live under infrastructure/cache (memory, redis, sqlite)

package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores small values with an expiry. The validator keeps verdicts as
// "1" or "0" under "feed:valid:<r|nr>:<tls|notls>:<headers>:<url>", so a
// verdict is only reused under the transport policy that produced it:
//
//	data, err := cache.Get(ctx, "feed:valid:r:notls:-:https://example.com/rss")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// validate, then cache.Set(ctx, key, []byte("1"), time.Hour)
//	}
type Cache interface {
	// Get returns ErrCacheMiss for unknown or expired keys
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete is a no-op for unknown keys
	Delete(ctx context.Context, key string) error
}
