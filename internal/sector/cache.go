// Package sector ties generation and caching together: a World hands
// out sector tile maps by coordinate and theme, generating on cache
// miss and memoizing the result with a TTL and size bound.
package sector

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

const (
	// DefaultMaxSize bounds the number of cached sectors.
	DefaultMaxSize = 100
	// DefaultTTL is how long a cached sector stays valid.
	DefaultTTL = 300 * time.Second
)

// Key identifies one cached sector.
type Key struct {
	X, Y  int
	Theme string
}

type entry struct {
	m       *tilemap.Map
	created time.Time
}

// Cache memoizes generated sectors. Eviction is strictly by oldest
// insertion time, not least-recently-used: a Get never refreshes an
// entry's position in the eviction order. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]entry
	maxSize int
	ttl     time.Duration
	log     *logrus.Logger

	// now is replaced by tests to control entry ages.
	now func() time.Time
}

// NewCache creates a cache with the given bounds; non-positive values
// select the defaults (100 entries, 300 seconds).
func NewCache(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[Key]entry),
		maxSize: maxSize,
		ttl:     ttl,
		log:     logrus.StandardLogger(),
		now:     time.Now,
	}
}

// Get returns the cached sector for (x, y, theme), or nil. An entry
// past its TTL is discarded on lookup and nil is returned.
func (c *Cache) Get(x, y int, theme string) *tilemap.Map {
	key := Key{X: x, Y: y, Theme: theme}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().Sub(e.created) > c.ttl {
		delete(c.entries, key)
		c.log.Debugf("sector cache expired (%d,%d,%s)", x, y, theme)
		return nil
	}
	c.log.Debugf("sector cache hit (%d,%d,%s)", x, y, theme)
	return e.m
}

// Put stores a sector, evicting the single oldest entry first when the
// cache is at capacity.
func (c *Cache) Put(x, y int, theme string, m *tilemap.Map) {
	key := Key{X: x, Y: y, Theme: theme}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		var oldestKey Key
		var oldest time.Time
		first := true
		for k, e := range c.entries {
			if first || e.created.Before(oldest) {
				oldestKey, oldest = k, e.created
				first = false
			}
		}
		delete(c.entries, oldestKey)
		c.log.Debugf("sector cache evicted oldest entry (%d,%d,%s)",
			oldestKey.X, oldestKey.Y, oldestKey.Theme)
	}

	c.entries[key] = entry{m: m, created: c.now()}
}

// Remove drops one sector from the cache.
func (c *Cache) Remove(x, y int, theme string) {
	c.mu.Lock()
	delete(c.entries, Key{X: x, Y: y, Theme: theme})
	c.mu.Unlock()
}

// Clear drops every cached sector.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[Key]entry)
	c.mu.Unlock()
}

// Len returns the number of cached sectors.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
