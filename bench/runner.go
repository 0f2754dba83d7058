package bench

import (
	"fmt"
	"time"

	"github.com/lightninglabs/lrucache"
	"github.com/lightningnetwork/lnd/clock"
)

// CacheConstructor builds a fresh cache instance for one benchmark run. The
// runner always measures a cold cache.
type CacheConstructor func() (*lrucache.Cache[uint64, uint64], error)

// Result holds the measurements of one benchmark run.
type Result struct {
	// Label names the configuration under test, typically the backend.
	Label string

	// Backend is the cache's own description of its key index.
	Backend string

	// Puts and Gets count the operations issued.
	Puts uint64
	Gets uint64

	// Hits and Misses break down the Gets.
	Hits   uint64
	Misses uint64

	// Inserts counts Puts that added a brand-new key, Updates the Puts
	// that overwrote an existing one.
	Inserts uint64
	Updates uint64

	// Evictions counts entries displaced by capacity pressure.
	Evictions uint64

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Runner replays workloads against cache instances and measures them.
type Runner struct {
	clock clock.Clock
}

// NewRunner returns a runner that measures with the wall clock.
func NewRunner() *Runner {
	return NewRunnerWithClock(clock.NewDefaultClock())
}

// NewRunnerWithClock returns a runner using the given clock. Tests use this
// with a mock clock to keep timing deterministic.
func NewRunnerWithClock(c clock.Clock) *Runner {
	return &Runner{
		clock: c,
	}
}

// Run replays the workload against a freshly constructed cache and returns
// the measurements. Every hit is verified against the workload's derived
// value; a mismatch means the cache returned a corrupt entry and aborts the
// run.
func (r *Runner) Run(label string, newCache CacheConstructor,
	w *Workload) (*Result, error) {

	c, err := newCache()
	if err != nil {
		return nil, fmt.Errorf("unable to construct cache: %w", err)
	}

	res := &Result{
		Label:   label,
		Backend: c.Backend(),
	}

	log.Infof("Running %d ops against %v", w.Len(), res.Backend)

	start := r.clock.Now()

	for i, key := range w.Keys {
		if w.IsPut[i] {
			res.Puts++
			if c.Put(key, Value(key)) {
				res.Inserts++
			} else {
				res.Updates++
			}

			continue
		}

		res.Gets++

		val := c.Get(key)
		if val.IsNone() {
			res.Misses++
			continue
		}

		res.Hits++
		if got := val.UnwrapOr(0); got != Value(key) {
			return nil, fmt.Errorf("corrupt cache entry for key "+
				"%d: got %d, want %d", key, got, Value(key))
		}
	}

	res.Elapsed = r.clock.Now().Sub(start)

	// Every insertion beyond the cache's final population displaced an
	// older entry.
	res.Evictions = res.Inserts - uint64(c.Len())

	log.Infof("Finished %v: elapsed=%v, hits=%d, misses=%d, "+
		"evictions=%d", res.Backend, res.Elapsed, res.Hits,
		res.Misses, res.Evictions)

	return res, nil
}
