package lrucache

import (
	"cmp"

	"github.com/google/btree"
)

// KeyIndex maps keys to arena handles. It is the single configuration axis
// of the cache: swapping the index backend changes the lookup complexity
// class (and the constraints placed on the key type) but never the observable
// cache semantics.
//
// The cache guarantees that InsertNew is only called for keys that a
// preceding Find reported absent, and that Erase is only called for keys the
// index currently holds. Implementations may rely on both.
type KeyIndex[K comparable] interface {
	// Find returns the handle mapped to key, if any. It has no side
	// effects.
	Find(key K) (Handle, bool)

	// InsertNew maps key to h. The key must not already be present.
	InsertNew(key K, h Handle)

	// Erase removes the mapping for key. Since every live slot stores
	// its own key, the cache erases a victim using the key held in the
	// victim's slot and never needs a second search to locate it.
	Erase(key K)

	// Description returns a human readable label for the backend. It is
	// consumed by external tooling such as the benchmark harness and has
	// no bearing on cache behavior.
	Description() string
}

// hashIndex is the default KeyIndex backend, built on the runtime map. Both
// lookup and erase are O(1) amortized.
type hashIndex[K comparable] struct {
	m map[K]Handle
}

// NewHashIndex returns a map-backed KeyIndex with space for capacity entries
// reserved up front.
func NewHashIndex[K comparable](capacity int) KeyIndex[K] {
	return &hashIndex[K]{
		m: make(map[K]Handle, capacity),
	}
}

// Find returns the handle mapped to key, if any.
func (i *hashIndex[K]) Find(key K) (Handle, bool) {
	h, ok := i.m[key]
	return h, ok
}

// InsertNew maps key to h.
func (i *hashIndex[K]) InsertNew(key K, h Handle) {
	i.m[key] = h
}

// Erase removes the mapping for key.
func (i *hashIndex[K]) Erase(key K) {
	delete(i.m, key)
}

// Description returns the backend label.
func (i *hashIndex[K]) Description() string {
	return "hash index (runtime map)"
}

// orderedDegree is the branching factor used for the B-tree backend. The
// google/btree documentation suggests values in this range for in-memory
// trees.
const orderedDegree = 16

// orderedItem is a single B-tree entry for the ordered backend.
type orderedItem[K cmp.Ordered] struct {
	key    K
	handle Handle
}

// orderedIndex is a KeyIndex backend for totally ordered keys, built on a
// B-tree. Lookup and erase are O(log n) worst case. It exists for key types
// without a usable hash as well as for callers that want bounded worst-case
// latency instead of amortized bounds.
type orderedIndex[K cmp.Ordered] struct {
	tree *btree.BTreeG[orderedItem[K]]
}

// NewOrderedIndex returns a B-tree backed KeyIndex.
func NewOrderedIndex[K cmp.Ordered]() KeyIndex[K] {
	less := func(a, b orderedItem[K]) bool {
		return a.key < b.key
	}

	return &orderedIndex[K]{
		tree: btree.NewG(orderedDegree, less),
	}
}

// Find returns the handle mapped to key, if any.
func (i *orderedIndex[K]) Find(key K) (Handle, bool) {
	item, ok := i.tree.Get(orderedItem[K]{key: key})
	if !ok {
		return sentinelHandle, false
	}

	return item.handle, true
}

// InsertNew maps key to h.
func (i *orderedIndex[K]) InsertNew(key K, h Handle) {
	i.tree.ReplaceOrInsert(orderedItem[K]{key: key, handle: h})
}

// Erase removes the mapping for key.
func (i *orderedIndex[K]) Erase(key K) {
	i.tree.Delete(orderedItem[K]{key: key})
}

// Description returns the backend label.
func (i *orderedIndex[K]) Description() string {
	return "ordered index (b-tree)"
}
