package cache

import (
	"context"
	"strings"
	"time"
)

// Cache holds JSON-serialized values with a TTL. A nil Cache disables caching
// without branching at every call site.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key joins the parts of a cache key with the conventional separator.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
