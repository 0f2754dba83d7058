package lrucache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ringOrder walks the ring from least to most recent and returns the visited
// handles.
func ringOrder[K comparable, V any](a *arena[K, V]) []Handle {
	var order []Handle
	for h := a.leastRecent(); h != sentinelHandle; h = a.slot(h).next {
		order = append(order, h)
	}

	return order
}

// TestArenaEmptyRing asserts that a fresh arena has a self-linked sentinel
// and an empty ring.
func TestArenaEmptyRing(t *testing.T) {
	t.Parallel()

	a := newArena[string, int](4)

	require.Equal(t, sentinelHandle, a.leastRecent())
	require.Empty(t, ringOrder(a))
}

// TestArenaAllocateExhaustion asserts that free slots are handed out in
// strictly increasing handle order and that allocation fails once the arena
// is full.
func TestArenaAllocateExhaustion(t *testing.T) {
	t.Parallel()

	const capacity = 3

	a := newArena[string, int](capacity)

	for want := Handle(1); want <= capacity; want++ {
		h, ok := a.allocFreeSlot()
		require.True(t, ok)
		require.Equal(t, want, h)

		// A fresh slot comes back self-linked.
		require.Equal(t, h, a.slot(h).prev)
		require.Equal(t, h, a.slot(h).next)
	}

	_, ok := a.allocFreeSlot()
	require.False(t, ok)
}

// TestArenaPromoteOrdering asserts that promote always moves a slot to the
// most recent end and leaves the rest of the ring order intact.
func TestArenaPromoteOrdering(t *testing.T) {
	t.Parallel()

	a := newArena[string, int](3)

	var handles []Handle
	for i := 0; i < 3; i++ {
		h, ok := a.allocFreeSlot()
		require.True(t, ok)
		a.promote(h)
		handles = append(handles, h)
	}

	// Insertion order is the recency order so far.
	require.Equal(t, handles, ringOrder(a))
	require.Equal(t, handles[0], a.leastRecent())

	// Promoting the LRU slot rotates it to the back.
	a.promote(handles[0])
	require.Equal(t,
		[]Handle{handles[1], handles[2], handles[0]}, ringOrder(a),
	)

	// Promoting a middle slot only moves that slot.
	a.promote(handles[2])
	require.Equal(t,
		[]Handle{handles[1], handles[0], handles[2]}, ringOrder(a),
	)

	// Promoting the already most recent slot is a no-op.
	a.promote(handles[2])
	require.Equal(t,
		[]Handle{handles[1], handles[0], handles[2]}, ringOrder(a),
	)
}

// TestArenaSingleSlotRing asserts the degenerate capacity-1 ring: repeated
// promotion of the only slot must not corrupt the sentinel's links.
func TestArenaSingleSlotRing(t *testing.T) {
	t.Parallel()

	a := newArena[string, int](1)

	h, ok := a.allocFreeSlot()
	require.True(t, ok)
	a.promote(h)

	for i := 0; i < 5; i++ {
		a.promote(h)

		require.Equal(t, h, a.leastRecent())
		require.Equal(t, []Handle{h}, ringOrder(a))

		sentinel := a.slot(sentinelHandle)
		require.Equal(t, h, sentinel.prev)
		require.Equal(t, h, sentinel.next)
		require.Equal(t, sentinelHandle, a.slot(h).prev)
		require.Equal(t, sentinelHandle, a.slot(h).next)
	}
}
