// Package memcache provides the in-process text cache for resolved
// translations. Entries share one TTL fixed at construction and the cache
// is LRU-bounded, so a misbehaving caller cannot grow it without limit.
package memcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TextCache is a TTL-bound, size-bound cache of opaque string values.
// Writers must delete keys explicitly after committing the underlying
// record; the TTL only bounds how long a stale entry can survive a missed
// invalidation.
type TextCache struct {
	lru *expirable.LRU[string, string]
}

// New creates a TextCache holding at most maxEntries values for at most ttl.
func New(maxEntries int, ttl time.Duration) *TextCache {
	return &TextCache{
		lru: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *TextCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores value under key with the cache-wide TTL.
func (c *TextCache) Set(key, value string) {
	c.lru.Add(key, value)
}

// Delete removes key. Deleting an absent key is a no-op.
func (c *TextCache) Delete(key string) {
	c.lru.Remove(key)
}
