package health

import (
	"sync"
	"time"
)

// DefaultTTL is the default maximum age of a cached entry before readers
// must re-probe.
const DefaultTTL = 300 * time.Second

// Cache is a thread-safe store of the last-known health entry per provider id.
//
// Probing a provider is an expensive, possibly rate-limited round trip; the
// cache exists purely to bound how often that probe runs. Entries are never
// expired proactively: staleness is evaluated lazily by readers via Fresh, so
// a read inside the TTL window never triggers network activity.
//
// Writes for different provider ids never invalidate each other. Two
// concurrent writers for the same id race benignly; last write wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache creates an empty health cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]Entry),
	}
}

// Get returns a copy of the entry for the given provider id.
// It performs no network access and never mutates the cache.
func (c *Cache) Get(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	return entry, ok
}

// Put overwrites the entry for the given provider id.
func (c *Cache) Put(id string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = entry
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Fresh reports whether the entry is still within the TTL window relative
// to now. A non-positive ttl means nothing is ever fresh.
func Fresh(entry Entry, ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(entry.LastChecked) < ttl
}
