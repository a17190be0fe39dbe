// Package cache stores the best known solution of each problem instance so
// that later runs start from it.
//
// # Backends
//
//   - [FileCache]: JSON files under a directory (CLI default)
//   - [RedisCache]: a shared Redis server, for several machines sampling
//     the same instances
//   - [NullCache]: stores nothing (--no-cache)
//
// # Keys
//
// Keys are built by a [Keyer]. [DefaultKeyer] hashes the instance content
// together with the objective, so renaming an instance file does not lose
// its entry; [ScopedKeyer] adds a namespace prefix.
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().BestKey(cache.Hash(data), "weighted-tardiness")
//	best, ok, err := cache.LoadBest(ctx, c, key)
//	...
//	err = cache.SaveBest(ctx, c, key, best, 0)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
