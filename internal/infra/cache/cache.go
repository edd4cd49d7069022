// Package cache provides the read-through TTL cache backing the product
// listing tool. One instance is constructed at process start with an injected
// clock and handed to the handlers that need it.
package cache

import (
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	value    json.RawMessage
	storedAt time.Time
}

// Cache maps keys to values with timestamp-based invalidation. Stale entries
// are reported as misses but never deleted; the next Set overwrites them.
// Concurrent refreshes of one key are allowed to race, last write wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given TTL. now may be nil, in which case
// time.Now is used; tests inject a fake clock.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the stored value for key if its age is strictly below the TTL.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, unconditionally overwriting any prior entry.
func (c *Cache) Set(key string, value json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}
