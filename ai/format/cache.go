package format

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is used when NewCache is given a non-positive size.
const DefaultCacheSize = 256

// CacheObserver receives cache lookups outcomes.
type CacheObserver interface {
	ObserveFormatCache(hit bool)
}

// Cache memoises Format by raw input. Documents are re-derivable, so eviction only costs
// a recomputation.
type Cache struct {
	docs     *lru.Cache[string, Document]
	observer CacheObserver
}

// NewCache creates a cache holding at most size documents.
func NewCache(size int, observer CacheObserver) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	docs, err := lru.New[string, Document](size)
	if err != nil {
		return nil, fmt.Errorf("create format cache: %w", err)
	}
	return &Cache{docs: docs, observer: observer}, nil
}

// Format returns the cached document for raw, formatting it on a miss.
// Callers must not mutate the returned document.
func (c *Cache) Format(raw string) Document {
	if doc, ok := c.docs.Get(raw); ok {
		c.observe(true)
		return doc
	}
	c.observe(false)
	doc := Format(raw)
	c.docs.Add(raw, doc)
	return doc
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return c.docs.Len()
}

func (c *Cache) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveFormatCache(hit)
	}
}
