// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cache
// Description: Size-bounded LRU cache with optional expiry
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is a cached item with expiration
type entry[V any] struct {
	key        string
	value      V
	expiration time.Time
}

// expired checks if the entry has expired at now
func (e *entry[V]) expired(now time.Time) bool {
	if e.expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.expiration)
}

// Cache is a thread-safe in-memory LRU cache. Expired entries are dropped
// lazily when they are looked up or pushed out.
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List // front: most recently used
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	// Metrics
	hits      int64
	misses    int64
	evictions int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int

	// TTL is the default lifetime of an entry; zero keeps entries until
	// they are evicted.
	TTL time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{MaxItems: 128}
}

// New creates a new cache instance
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}

	return &Cache[V]{
		items:    make(map[string]*list.Element),
		order:    list.New(),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Get retrieves a value from the cache and marks it as recently used
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}

	e := el.Value.(*entry[V])
	if e.expired(c.now()) {
		c.remove(el)
		c.misses++
		return zero, false
	}

	c.order.MoveToFront(el)
	c.hits++
	return e.value, true
}

// Set stores a value in the cache with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.expiration = exp
		c.order.MoveToFront(el)
		return
	}

	for c.order.Len() >= c.maxItems {
		c.remove(c.order.Back())
		c.evictions++
	}
	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value, expiration: exp})
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// Evictions returns how many entries were pushed out by the size bound
func (c *Cache[V]) Evictions() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}

// remove drops el (must be called with lock held)
func (c *Cache[V]) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[V]).key)
}

// GetOrSet gets a value or computes and stores it if not present. fn runs
// without the lock held, so concurrent misses may compute twice.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(key, val)
	return val, nil
}
