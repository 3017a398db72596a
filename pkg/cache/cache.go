// Package cache stores computed layouts so identical subgraphs are not laid
// out twice.
//
// A Graphviz layout is a pure function of the DOT text it was computed from,
// so entries are keyed by a hash of that text plus the layout program. The
// CLI uses [FileCache] under the user cache directory; the server can share
// results between instances through [RedisCache]. Consumers treat a nil
// Cache as caching disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
