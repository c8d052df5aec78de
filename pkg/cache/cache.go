// Package cache provides pluggable byte caching for pipeline results.
//
// Layouts and rendered artifacts are cheap to recompute for small scenes but
// not for large ones, and the HTTP API recomputes identical requests often.
// The pipeline keys cache entries by content hash of the scene plus the
// options that influence the result, so a hit is always safe to serve.
//
// Backends:
//   - FileCache: JSON files under the XDG cache dir, for CLI use
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
