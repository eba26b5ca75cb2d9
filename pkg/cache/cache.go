// Package cache provides byte caches for fetched resources.
//
// Three backends implement [Cache]: [NullCache] (caching disabled),
// [FileCache] (one file per key under a directory, for CLI use) and
// [RedisCache] (shared across processes). [Scoped] namespaces keys so
// several consumers can share one backend.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Options selects and configures a backend for [Open].
type Options struct {
	Backend   string
	Dir       string
	RedisAddr string
	RedisDB   int
}

// Open creates the cache described by opts. An empty backend means
// [BackendNone].
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{Addr: opts.RedisAddr, DB: opts.RedisDB})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
