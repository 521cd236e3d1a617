package geocode

import (
	"strings"

	"github.com/pfrederiksen/clubmap/internal/club"
)

// Cache memoizes query results for the lifetime of one Geocoder, including
// queries that matched nothing
type Cache struct {
	entries map[string]*club.Coordinates
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*club.Coordinates)}
}

// Get returns the cached result for a query. The boolean reports whether
// the query was seen; the coordinates are nil for a cached miss.
func (c *Cache) Get(query string) (*club.Coordinates, bool) {
	coords, ok := c.entries[cacheKey(query)]
	if !ok || coords == nil {
		return nil, ok
	}
	copied := *coords
	return &copied, true
}

// Set stores a result; nil records a miss
func (c *Cache) Set(query string, coords *club.Coordinates) {
	if coords != nil {
		copied := *coords
		coords = &copied
	}
	c.entries[cacheKey(query)] = coords
}

// Size returns the number of cached queries
func (c *Cache) Size() int {
	return len(c.entries)
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
