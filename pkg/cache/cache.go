// Package cache stores generated mazes and rendered artifacts.
//
// Three backends implement [Cache]: [FileCache] for the CLI (one JSON file
// per entry under the user's cache directory), [RedisCache] for the HTTP
// server (shared between replicas), and [NullCache] when caching is
// disabled. Keys come from a [Keyer] so every backend addresses entries the
// same way.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Locker is implemented by caches shared between processes. Holding the lock
// for a key lets one process generate an entry while the others wait and
// then read it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func() error, err error)
}

// Default time-to-live values. Mazes are deterministic for a given seed, so
// entries never go stale; the TTLs only bound storage.
const (
	TTLMaze     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
