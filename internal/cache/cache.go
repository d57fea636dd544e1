// Package cache is a tiny in-memory TTL cache for API responses.
//
// Expiry is an absolute timestamp checked on read; there is no size bound
// and no background sweeper since one user's working set is a handful of
// recent queries.
package cache

import (
	"sync"
	"time"

	"github.com/Swapnil-2005/movie-recommendation/internal/metrics"
)

// Cache maps string keys to values of type T until they expire.
type Cache[T any] struct {
	mu   sync.RWMutex
	data map[string]entry[T]
	ttl  time.Duration
	now  func() time.Time

	hits   int64
	misses int64
}

type entry[T any] struct {
	value T
	exp   time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// New returns an empty cache whose entries live for ttl.
// A ttl of zero disables caching: Set is a no-op.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		data: make(map[string]entry[T]),
		ttl:  ttl,
		now:  time.Now,
	}
}

// WithClock swaps the time source, for tests.
func (c *Cache[T]) WithClock(now func() time.Time) *Cache[T] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// Get returns the cached value or false if absent or expired.
// Expired entries are dropped on the way out.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.RLock()
	item, ok := c.data[key]
	now := c.now()
	c.mu.RUnlock()

	if ok && now.Before(item.exp) {
		c.record(true)
		return item.value, true
	}

	if ok {
		c.mu.Lock()
		// another reader may have refreshed it meanwhile
		if cur, still := c.data[key]; still && !now.Before(cur.exp) {
			delete(c.data, key)
		}
		c.mu.Unlock()
	}
	c.record(false)
	return zero, false
}

// Set stores value under key for the cache TTL.
func (c *Cache[T]) Set(key string, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.data[key] = entry[T]{value: value, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns hit/miss counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.data)}
}

func (c *Cache[T]) record(hit bool) {
	c.mu.Lock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	if hit {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
}
