package cache

import (
	"context"
	"time"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
)

// ResponseCache stores raw API responses keyed by namespaced strings
// (e.g. "browse:home", "next:<videoID>"). The cache is agnostic to the key
// convention; prefix invalidation is purely string matching.
//
// A miss is a normal result, not an error: callers fetch fresh data and write
// it back with the TTL their data category calls for.
type ResponseCache interface {
	// Get returns the payload for key and whether it was present and fresh.
	// Expired entries read as misses.
	Get(ctx context.Context, key string) (model.Value, bool, error)

	// Set stores or overwrites the entry for key. Overwriting resets both the
	// payload and the entry's timestamp (last write wins).
	Set(ctx context.Context, key string, payload model.Value, ttl time.Duration) error

	// Invalidate removes every entry whose key starts with prefix.
	// No matching keys is a no-op, not an error.
	Invalidate(ctx context.Context, prefix string) error

	// InvalidateAll removes every entry unconditionally. Used for logout and
	// reset flows, and for test isolation.
	InvalidateAll(ctx context.Context) error
}
