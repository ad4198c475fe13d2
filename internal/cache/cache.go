// Package cache provides a small in-memory TTL cache for slow-changing Jira
// metadata (fields, projects, users). Entries expire after the configured
// TTL; a zero TTL disables caching entirely.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL cache keyed by string. Values are returned as stored, so
// callers should treat them as read-only.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

type entry[T any] struct {
	value   T
	expires time.Time
}

// New creates a cache whose entries live for ttl. A non-positive ttl
// disables caching: every Get misses and Put is a no-op.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key and whether it was present and fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	if c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expires) {
		return zero, false
	}
	return e.value, true
}

// Put stores a value under key.
func (c *Cache[T]) Put(key string, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, expires: c.now().Add(c.ttl)}
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. Load errors are not cached.
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// Invalidate removes a single entry.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

// Size returns the number of stored entries, including expired ones not yet
// overwritten.
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
