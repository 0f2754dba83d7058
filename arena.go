package lrucache

// Handle identifies a slot in the cache's arena. Handles are small integers
// that remain stable for as long as the slot holds the same key, which is why
// the key index stores them instead of pointers.
type Handle uint32

// sentinelHandle is the handle of the permanent sentinel slot that anchors
// the recency ring. It never holds a live entry.
const sentinelHandle Handle = 0

// slot is a single arena cell. Live slots hold a key/value pair, while the
// prev/next fields thread the slot into the recency ring. The sentinel slot
// only ever uses its link fields.
type slot[K comparable, V any] struct {
	key   K
	value V

	// prev and next are ring links. Walking next pointers from the
	// sentinel visits slots from least to most recently used.
	prev Handle
	next Handle
}

// arena is a fixed-size pool of slots with the recency ring threaded through
// them. All storage is allocated up front at construction time, so cache
// operations never allocate. Slot 0 is the sentinel: the least recently used
// live slot is always sentinel.next and the most recently used one is always
// sentinel.prev.
type arena[K comparable, V any] struct {
	slots []slot[K, V]

	// nextFree is the handle that allocFreeSlot will return next. Free
	// slots are handed out in strictly increasing order. Once the arena
	// has been fully populated this is never consulted again since all
	// further insertions reuse the least recent slot.
	nextFree Handle
}

// newArena creates an arena able to hold capacity live slots plus the
// sentinel. The ring starts out empty, with the sentinel linked to itself.
func newArena[K comparable, V any](capacity int) *arena[K, V] {
	a := &arena[K, V]{
		slots:    make([]slot[K, V], capacity+1),
		nextFree: sentinelHandle + 1,
	}

	a.slots[sentinelHandle].prev = sentinelHandle
	a.slots[sentinelHandle].next = sentinelHandle

	return a
}

// slot returns the slot addressed by h. The pointer is only valid until the
// next call that mutates the arena's backing slice, which never happens after
// construction, so in practice it is stable for the arena's lifetime.
func (a *arena[K, V]) slot(h Handle) *slot[K, V] {
	return &a.slots[h]
}

// allocFreeSlot hands out the next never-used slot, or false once the arena
// is exhausted. A fresh slot is returned self-linked so that a subsequent
// promote treats the unlink step as a no-op.
func (a *arena[K, V]) allocFreeSlot() (Handle, bool) {
	if int(a.nextFree) >= len(a.slots) {
		return sentinelHandle, false
	}

	h := a.nextFree
	a.nextFree++

	s := &a.slots[h]
	s.prev = h
	s.next = h

	return h, true
}

// promote moves the slot addressed by h to the most recently used end of the
// ring, immediately before the sentinel. Promoting truly is O(1): two
// unlink writes and four splice writes, no traversal.
func (a *arena[K, V]) promote(h Handle) {
	s := &a.slots[h]

	// Unlink from the current ring position. For a freshly allocated,
	// self-linked slot these writes are no-ops.
	a.slots[s.prev].next = s.next
	a.slots[s.next].prev = s.prev

	// Splice in right before the sentinel.
	sentinel := &a.slots[sentinelHandle]
	s.prev = sentinel.prev
	s.next = sentinelHandle
	a.slots[sentinel.prev].next = h
	sentinel.prev = h
}

// leastRecent returns the handle of the least recently used slot. With an
// empty ring this is the sentinel itself, so callers must only consult it
// when at least one live slot exists.
func (a *arena[K, V]) leastRecent() Handle {
	return a.slots[sentinelHandle].next
}
