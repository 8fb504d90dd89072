// Package cache provides a small LRU cache used to keep prepared statements
// keyed by their rendered SQL text.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the capacity used when a non-positive one is requested.
const DefaultCapacity = 1000

// LRU is a fixed-capacity, concurrency-safe least-recently-used cache.
// The evict callback runs (with the lock held) for every entry that leaves
// the cache through eviction, replacement or Purge.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
	onEvict  func(key string, value V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type entry[V any] struct {
	key   string
	value V
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU[V any](capacity int, onEvict func(key string, value V)) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		onEvict:  onEvict,
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	c.hits.Add(1)
	return elem.Value.(*entry[V]).value, true
}

// Add stores value under key. An existing value for key is replaced and
// handed to the evict callback. When full, the least recently used entry
// is evicted.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[V])
		c.order.MoveToFront(elem)
		c.release(e)
		e.value = value
		return
	}
	c.insert(key, value)
}

// AddIfAbsent stores value under key unless key is already cached. It
// returns the value now cached and whether value was stored.
func (c *LRU[V]) AddIfAbsent(key string, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[V]).value, false
	}
	c.insert(key, value)
	return value, true
}

// insert adds a new entry, evicting the oldest one when full.
// Must be called with the lock held.
func (c *LRU[V]) insert(key string, value V) {
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			e := oldest.Value.(*entry[V])
			delete(c.items, e.key)
			c.release(e)
			c.evictions.Add(1)
		}
	}
	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value})
}

// Remove drops key from the cache, releasing its value.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.items, key)
	c.release(elem.Value.(*entry[V]))
	return true
}

// Purge releases and removes every entry.
func (c *LRU[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		c.release(elem.Value.(*entry[V]))
	}
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[V]) release(e *entry[V]) {
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// Stats holds cache performance metrics.
type Stats struct {
	Size      int     // Current number of entries.
	Capacity  int     // Maximum capacity.
	Hits      uint64  // Successful lookups.
	Misses    uint64  // Failed lookups.
	Evictions uint64  // Entries evicted for capacity.
	HitRate   float64 // hits / (hits + misses).
}

// Stats returns cache statistics.
func (c *LRU[V]) Stats() Stats {
	size := c.Len()
	hits := c.hits.Load()
	misses := c.misses.Load()

	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Size:      size,
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}
