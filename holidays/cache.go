package holidays

import (
	"strconv"

	"github.com/patrickmn/go-cache"
)

// Cache memoises ForYear. A year's set never changes, so entries never expire.
// Cache is safe for concurrent use.
type Cache struct {
	store *cache.Cache
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{store: cache.New(cache.NoExpiration, 0)}
}

// ForYear returns the cached set for year, building it on first use.
func (c *Cache) ForYear(year int) *Set {
	key := strconv.Itoa(year)
	if v, ok := c.store.Get(key); ok {
		return v.(*Set)
	}
	s := ForYear(year)
	// Concurrent misses may both build; the sets are identical.
	c.store.SetDefault(key, s)
	return s
}

// Len returns the number of cached years.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Flush drops every cached year.
func (c *Cache) Flush() {
	c.store.Flush()
}
