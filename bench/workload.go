package bench

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// DefaultPutProb is the default probability that any given operation
	// in a generated workload is a Put rather than a Get.
	DefaultPutProb = 0.33

	// keySuccessProb is the per-trial success probability of the binomial
	// key distribution. Together with the trial count of four times the
	// cache size this concentrates most keys in a band narrower than the
	// cache, so the workload produces a realistic mix of hits, misses
	// and evictions.
	keySuccessProb = 0.89

	// keyTrialFactor scales the cache size into the binomial trial
	// count that bounds the key space.
	keyTrialFactor = 4
)

// Config describes a pseudo-random workload to generate. The same config
// always generates the same workload, so results are comparable across
// backends and across runs.
type Config struct {
	// CacheSize is the capacity of the cache under test. It also shapes
	// the key distribution: keys are drawn from a binomial distribution
	// over [0, 4*CacheSize].
	CacheSize int

	// NumOps is the total number of operations in the workload.
	NumOps int

	// PutProb is the probability that an operation is a Put. The
	// remainder are Gets.
	PutProb float64

	// Seed seeds the generator.
	Seed int64
}

// validate sanity checks the config.
func (cfg *Config) validate() error {
	if cfg.CacheSize < 1 {
		return fmt.Errorf("workload cache size must be positive, "+
			"got %d", cfg.CacheSize)
	}
	if cfg.NumOps < 1 {
		return fmt.Errorf("workload op count must be positive, "+
			"got %d", cfg.NumOps)
	}
	if cfg.PutProb < 0 || cfg.PutProb > 1 {
		return fmt.Errorf("put probability must be in [0, 1], "+
			"got %v", cfg.PutProb)
	}

	return nil
}

// Workload is a fully materialized operation sequence: for each step a key
// and whether the step is a Put. Values are derived from keys (value =
// 2*key), which lets the runner verify every hit it observes.
type Workload struct {
	// Keys holds one key per operation.
	Keys []uint64

	// IsPut flags which operations are Puts.
	IsPut []bool
}

// Value returns the value the workload stores under key. Deriving values
// from keys makes every cache hit verifiable.
func Value(key uint64) uint64 {
	return 2 * key
}

// Generate materializes the workload described by cfg. Key draws approximate
// a binomial distribution via the normal approximation, which is accurate
// for the trial counts involved here and avoids per-draw looping.
func Generate(cfg Config) (*Workload, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	trials := keyTrialFactor * cfg.CacheSize
	mean := float64(trials) * keySuccessProb
	stddev := math.Sqrt(mean * (1 - keySuccessProb))

	w := &Workload{
		Keys:  make([]uint64, cfg.NumOps),
		IsPut: make([]bool, cfg.NumOps),
	}

	for i := 0; i < cfg.NumOps; i++ {
		draw := math.Round(rng.NormFloat64()*stddev + mean)
		draw = math.Max(0, math.Min(draw, float64(trials)))

		w.Keys[i] = uint64(draw)
		w.IsPut[i] = rng.Float64() < cfg.PutProb
	}

	log.Debugf("Generated workload: ops=%d, cacheSize=%d, keySpace="+
		"[0, %d], putProb=%v, seed=%d", cfg.NumOps, cfg.CacheSize,
		trials, cfg.PutProb, cfg.Seed)

	return w, nil
}

// Len returns the number of operations in the workload.
func (w *Workload) Len() int {
	return len(w.Keys)
}
