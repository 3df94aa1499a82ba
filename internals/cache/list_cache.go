package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedList stores a list response with the time it was taken.
type cachedList struct {
	Items     any
	Timestamp time.Time
}

// ListCache keeps the last list response per entity collection. Writes to a
// collection must call Invalidate for it. Readers take a Generation before
// querying and hand it to Set, so a list read before an Invalidate is dropped.
type ListCache struct {
	lists *lru.Cache[string, cachedList]
	gens  map[string]uint64
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewListCache creates a cache holding up to size collections for ttl.
// A ttl <= 0 disables caching (Get always misses).
func NewListCache(size int, ttl time.Duration) (*ListCache, error) {
	if size <= 0 {
		size = 16
	}
	lists, err := lru.New[string, cachedList](size)
	if err != nil {
		return nil, err
	}
	return &ListCache{lists: lists, gens: map[string]uint64{}, ttl: ttl}, nil
}

// Get returns the cached items for a collection key.
func Get[T any](c *ListCache, key string) ([]T, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	cached, ok := c.lists.Get(key)
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Since(cached.Timestamp) > c.ttl {
		c.mu.Lock()
		c.lists.Remove(key)
		c.mu.Unlock()
		return nil, false
	}

	items, ok := cached.Items.([]T)
	return items, ok
}

// Generation returns the invalidation counter of a collection key.
func (c *ListCache) Generation(key string) uint64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[key]
}

// Set stores items for a collection key unless the key was invalidated
// after gen was taken.
func Set[T any](c *ListCache, key string, gen uint64, items []T) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] != gen {
		return
	}
	c.lists.Add(key, cachedList{
		Items:     items,
		Timestamp: time.Now(),
	})
}

// Invalidate drops the cached list of a collection.
func (c *ListCache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	c.lists.Remove(key)
}

// Clear removes all entries from the cache
func (c *ListCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists.Purge()
}
