// Package cache provides a small in-memory TTL cache used to front list-type
// store queries. Keys are structured as "entity:owner:filter" so that every
// mutation can invalidate the owner's entries by prefix before returning.
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long a cached list survives unless invalidated earlier.
const DefaultTTL = 5 * time.Minute

// Cache is the read-through cache used by the entity services.
type Cache interface {
	// Get retrieves a value, reporting whether a live entry was found.
	Get(key string) (any, bool)

	// Set stores a value for the given ttl; ttl <= 0 falls back to DefaultTTL.
	Set(key string, value any, ttl time.Duration)

	// Invalidate drops every entry whose key starts with prefix.
	Invalidate(prefix string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a mutex-guarded map with per-entry expiry. Expired entries are
// dropped lazily on read and whenever a prefix invalidation scans the map.
type TTLCache struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

// New returns an empty TTLCache.
func New() *TTLCache {
	return &TTLCache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *TTLCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.items {
		if strings.HasPrefix(k, prefix) || now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}

// Size returns the number of stored entries, including expired ones not yet
// swept. Used by tests.
func (c *TTLCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

var _ Cache = (*TTLCache)(nil)
