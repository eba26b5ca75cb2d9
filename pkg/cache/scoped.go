package cache

import (
	"context"
	"time"
)

// ScopedCache prefixes every key before delegating to an inner cache,
// giving each consumer its own namespace in a shared backend.
//
//	schemas := cache.Scoped(shared, "schema:")
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped wraps inner so all keys are prefixed with prefix. A nil inner
// cache is replaced by a [NullCache].
func Scoped(inner Cache, prefix string) *ScopedCache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

// Get implements [Cache].
func (s *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set implements [Cache].
func (s *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete implements [Cache].
func (s *ScopedCache) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner cache.
func (s *ScopedCache) Close() error {
	return s.inner.Close()
}

var _ Cache = (*ScopedCache)(nil)
