package memory

import (
	"sync"
	"time"
)

// Cache is a lightweight in-memory TTL cache used as a fallback when Redis
// is not configured.
type Cache struct {
	items map[string]*item
	mu    sync.RWMutex
	ttl   time.Duration
}

type item struct {
	value      string
	expiration time.Time
}

// New creates a new in-memory cache with the given TTL.
func New(ttl time.Duration) *Cache {
	cache := &Cache{
		items: make(map[string]*item),
		ttl:   ttl,
	}

	go cache.cleanup()

	return cache
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	itm, exists := c.items[key]
	if !exists || time.Now().After(itm.expiration) {
		return "", false
	}

	return itm.value, true
}

// Set stores a value in the cache with the default TTL.
func (c *Cache) Set(key, value string) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with an explicit TTL.
func (c *Cache) SetWithTTL(key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &item{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*item)
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		c.mu.Lock()
		for key, itm := range c.items {
			if now.After(itm.expiration) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
