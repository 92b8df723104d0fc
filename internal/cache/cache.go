// Package cache holds a small TTL'd query cache for read-mostly catalog
// data. Logout clears it so nothing fetched under one account leaks into
// the next session.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// QueryCache is a mutex-guarded map of cached responses with per-entry TTL.
type QueryCache struct {
	mu    sync.RWMutex
	store map[string]entry
}

// New creates an empty query cache.
func New() *QueryCache {
	return &QueryCache{store: make(map[string]entry)}
}

// Get returns the cached value for key, or false when absent or expired.
func (c *QueryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. A ttl of 0 means no expiry.
func (c *QueryCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.store[key] = entry{value: value, expiresAt: exp}
}

// Clear drops every cached entry. Called on login and logout.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]entry)
}

// Len reports the number of entries, expired ones included.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
