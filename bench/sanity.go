package bench

import (
	"fmt"

	"github.com/lightninglabs/lrucache"
)

// Sanity runs a short fixed scenario against a capacity-4 cache built by
// newCache and verifies the expected hits, misses and eviction order. The
// CLI harness runs it before any timed measurement so that an obviously
// broken cache is reported as such instead of producing nonsense numbers.
func Sanity(newCache func() (*lrucache.Cache[string, string],
	error)) error {

	c, err := newCache()
	if err != nil {
		return fmt.Errorf("unable to construct cache: %w", err)
	}
	if c.Cap() != 4 {
		return fmt.Errorf("sanity scenario needs a capacity-4 "+
			"cache, got %d", c.Cap())
	}

	keys := []string{"aaa", "bbb", "ccc", "ddd", "eee", "fff", "ggg"}
	vals := []string{"a1", "b1", "c1", "d1", "e1", "f1", "g1"}

	// Insert all seven keys, re-reading each one and touching the first
	// key after every insertion so it keeps escaping eviction.
	for i, key := range keys {
		c.Put(key, vals[i])

		got := c.Get(key)
		if got.UnwrapOr("") != vals[i] {
			return fmt.Errorf("sanity: just-stored key %q "+
				"returned %q, want %q", key,
				got.UnwrapOr("<miss>"), vals[i])
		}

		if c.Get(keys[0]).IsNone() {
			return fmt.Errorf("sanity: repeatedly touched key "+
				"%q was evicted", keys[0])
		}
	}

	// The constantly touched first key survived; the three keys that
	// followed it were the eviction victims.
	expectations := []struct {
		key   string
		value string
		hit   bool
	}{
		{key: "aaa", value: "a1", hit: true},
		{key: "bbb", hit: false},
		{key: "ccc", hit: false},
		{key: "ddd", hit: false},
		{key: "eee", value: "e1", hit: true},
		{key: "fff", value: "f1", hit: true},
		{key: "ggg", value: "g1", hit: true},
	}
	for _, exp := range expectations {
		got := c.Get(exp.key)

		if got.IsSome() != exp.hit {
			return fmt.Errorf("sanity: key %q hit=%v, want %v",
				exp.key, got.IsSome(), exp.hit)
		}
		if exp.hit && got.UnwrapOr("") != exp.value {
			return fmt.Errorf("sanity: key %q returned %q, "+
				"want %q", exp.key, got.UnwrapOr(""),
				exp.value)
		}
	}

	// Re-inserting an evicted key is a fresh insertion and displaces the
	// current LRU entry, which by now is the first key again.
	if !c.Put("bbb", "b1") {
		return fmt.Errorf("sanity: re-insert of evicted key was " +
			"reported as an update")
	}
	if c.Get("aaa").IsSome() {
		return fmt.Errorf("sanity: expected re-insertion to evict " +
			"the LRU entry")
	}

	// Updating the present key in place is not an insertion.
	if c.Put("bbb", "a1") {
		return fmt.Errorf("sanity: update of present key was " +
			"reported as an insertion")
	}
	if got := c.Get("bbb").UnwrapOr(""); got != "a1" {
		return fmt.Errorf("sanity: updated key returned %q, want "+
			"%q", got, "a1")
	}

	log.Debugf("Sanity scenario passed for backend %v", c.Backend())

	return nil
}
