package catalog

import (
	"sync"
	"time"
)

// Cache keys, one per entity type. Category and product caches are
// independent; a mutation invalidates exactly its own entity type (deleting
// a category also touches products, since their resolved category changes).
const (
	CacheKeyCategories = "categories"
	CacheKeyProducts   = "products"
)

type cacheEntry struct {
	data      any
	fetchedAt time.Time
}

// Cache is a small read-through cache keyed by entity type. Entries expire
// after the TTL; Invalidate discards an entry so the next read re-fetches.
// The repository takes it as an explicit dependency so tests can construct
// their own.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.fetchedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, fetchedAt: time.Now()}
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
