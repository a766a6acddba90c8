package querycache

import (
	"sync"
	"time"
)

// defaultEvictAfter is the hard lifetime of an entry. Stale entries stay
// readable (shown while refetching) until eviction removes them outright.
const defaultEvictAfter = 30 * time.Minute

type entry struct {
	key        Key
	value      interface{}
	fetchedAt  time.Time
	staleAfter time.Duration
	expiresAt  time.Time
	invalid    bool
}

// Cache is the in-memory query cache. It is constructor-injected (no
// module-level instance) and updated atomically per key.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	evictAfter time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

// NewCache creates a cache and starts its eviction janitor.
func NewCache() *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		evictAfter: defaultEvictAfter,
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the janitor. The cache stays usable but no longer evicts.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Get returns the cached value for key, expired entries excluded.
func (c *Cache) Get(key Key) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key.String()]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// IsStale reports whether the entry under key needs a refresh: missing,
// explicitly invalidated, or past its staleness window.
func (c *Cache) IsStale(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key.String()]
	if !ok || time.Now().After(e.expiresAt) {
		return true
	}
	if e.invalid {
		return true
	}
	return time.Now().After(e.fetchedAt.Add(e.staleAfter))
}

// Set stores value under key with the given staleness window.
func (c *Cache) Set(key Key, value interface{}, staleAfter time.Duration) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = &entry{
		key:        key,
		value:      value,
		fetchedAt:  now,
		staleAfter: staleAfter,
		expiresAt:  now.Add(c.evictAfter),
	}
}

// Update atomically rewrites the value under key, preserving its staleness
// window. fn receives the current value (nil, false when absent) and returns
// the replacement. Used for optimistic writes.
func (c *Cache) Update(key Key, fn func(old interface{}, ok bool) interface{}) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	ks := key.String()
	e, ok := c.entries[ks]
	if ok && !now.After(e.expiresAt) {
		e.value = fn(e.value, true)
		e.fetchedAt = now
		e.invalid = false
		e.expiresAt = now.Add(c.evictAfter)
		return
	}
	c.entries[ks] = &entry{
		key:       key,
		value:     fn(nil, false),
		fetchedAt: now,
		expiresAt: now.Add(c.evictAfter),
	}
}

// Invalidate marks every entry at or below prefix as outdated. Values stay
// readable; the next access triggers a refetch. Returns the number of
// entries touched.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.invalid = true
			n++
		}
	}
	return n
}

// InvalidateAll marks every entry as outdated.
func (c *Cache) InvalidateAll() int {
	return c.Invalidate(Key{})
}

// Remove drops every entry at or below prefix.
func (c *Cache) Remove(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for ks, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, ks)
			n++
		}
	}
	return n
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for ks, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, ks)
		}
	}
}
