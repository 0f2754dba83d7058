package lrucache

import (
	"cmp"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Cache is a fixed-capacity key-value store with least-recently-used
// eviction. Both Get and Put are O(1) amortized with the default hash index,
// or O(log n) worst case with the ordered index, and neither allocates after
// construction.
//
// A Cache is not safe for concurrent access. Callers that share one across
// goroutines must serialize every Get and Put with external locking; the
// cache never exposes a partially applied operation within a single call, so
// one exclusive lock around each call is sufficient.
type Cache[K comparable, V any] struct {
	capacity int
	live     int

	index KeyIndex[K]
	arena *arena[K, V]
}

// New returns a cache bounded to capacity entries, using the default
// map-backed key index. It fails with ErrInvalidCapacity if capacity is less
// than one.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	return NewWithIndex[K, V](capacity, NewHashIndex[K](capacity))
}

// NewOrdered returns a cache bounded to capacity entries, using the B-tree
// backed key index. It only differs from New in lookup complexity class and
// in requiring ordered keys; cache semantics are identical.
func NewOrdered[K cmp.Ordered, V any](capacity int) (*Cache[K, V], error) {
	return NewWithIndex[K, V](capacity, NewOrderedIndex[K]())
}

// NewWithIndex returns a cache bounded to capacity entries using the given
// key index backend. The index must be empty.
func NewWithIndex[K comparable, V any](capacity int,
	index KeyIndex[K]) (*Cache[K, V], error) {

	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity,
			capacity)
	}

	c := &Cache[K, V]{
		capacity: capacity,
		index:    index,
		arena:    newArena[K, V](capacity),
	}

	log.Debugf("Created LRU cache: capacity=%d, backend=%v", capacity,
		index.Description())

	return c, nil
}

// Get looks up key and returns its value, or fn.None on a miss. A hit counts
// as a use: the entry is promoted to most recently used even though its value
// is unchanged. A miss leaves the cache completely untouched.
func (c *Cache[K, V]) Get(key K) fn.Option[V] {
	h, ok := c.index.Find(key)
	if !ok {
		return fn.None[V]()
	}

	c.arena.promote(h)

	return fn.Some(c.arena.slot(h).value)
}

// Put inserts or updates the value stored under key and marks the entry most
// recently used. It returns true iff a brand-new key was inserted, false if
// an existing key's value was overwritten. When the cache is full a new key
// reclaims the least recently used slot, evicting that slot's prior entry
// before the new one is recorded, so the live entry count never exceeds the
// capacity, not even transiently.
func (c *Cache[K, V]) Put(key K, value V) bool {
	// Existing key: overwrite in place and promote.
	if h, ok := c.index.Find(key); ok {
		s := c.arena.slot(h)
		s.value = value
		c.arena.promote(h)

		return false
	}

	// New key with spare room: take the next never-used slot.
	if c.live < c.capacity {
		h, ok := c.arena.allocFreeSlot()
		if !ok {
			// The arena holds exactly capacity slots, so a free
			// one must exist while live < capacity.
			panic("lrucache: arena exhausted below capacity")
		}

		s := c.arena.slot(h)
		s.key = key
		s.value = value

		c.index.InsertNew(key, h)
		c.arena.promote(h)
		c.live++

		return true
	}

	// New key at capacity: reuse the least recently used slot. The
	// victim's index mapping is dropped first, using the key still held
	// in the slot, then the slot is rebound to the new key.
	victim := c.arena.leastRecent()
	s := c.arena.slot(victim)

	log.Tracef("Evicting LRU entry: key=%v", s.key)

	c.index.Erase(s.key)
	s.key = key
	s.value = value
	c.index.InsertNew(key, victim)
	c.arena.promote(victim)

	return true
}

// Len returns the number of live entries currently held.
func (c *Cache[K, V]) Len() int {
	return c.live
}

// Cap returns the fixed capacity the cache was constructed with.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Backend returns the human readable label of the key index backend in use.
// It exists for external tooling (the benchmark harness, log lines) and has
// no semantic significance.
func (c *Cache[K, V]) Backend() string {
	return c.index.Description()
}
