// Package cache holds a bounded LRU of point-lookup results.
package cache

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

const (
	MinCacheSize = 16
)

// Cache is an LRU keyed by tree key. It knows nothing about tree structure:
// callers invalidate a key whenever its value collection changes.
//
// Lookups from concurrent readers are safe, which lets tree readers share a
// read lock while Search populates the cache.
type Cache[V any] struct {
	lru *freelru.SyncedLRU[string, V]

	// Stats
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// hashKey folds the 64-bit xxhash of key into freelru's 32-bit hash.
func hashKey(key string) uint32 {
	h := xxhash.Sum64String(key)
	return uint32(h ^ (h >> 32))
}

// New creates a new cache holding at most maxSize entries
func New[V any](maxSize int) (*Cache[V], error) {
	maxSize = max(maxSize, MinCacheSize)

	lru, err := freelru.NewSynced[string, V](uint32(maxSize), hashKey)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: lru}, nil
}

// Put adds a value to the cache, replacing any existing entry for the key.
func (c *Cache[V]) Put(key string, value V) {
	if c.lru.Add(key, value) {
		c.evictions.Add(1)
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) on cache hit, (zero, false) on miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return v, false
	}
	c.hits.Add(1)
	return v, true
}

// Delete removes a key from the cache.
func (c *Cache[V]) Delete(key string) {
	c.lru.Remove(key)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Size returns current number of cached entries
func (c *Cache[V]) Size() int {
	return c.lru.Len()
}

type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// ClearStats resets the cache's positive incrementing statistics
func (c *Cache[V]) ClearStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
