package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightninglabs/lrucache"
	"github.com/lightninglabs/lrucache/bench"
	"github.com/urfave/cli"
)

const (
	// defaultCacheSize is large enough that the key index dominates the
	// measurement rather than fitting in a couple of cache lines.
	defaultCacheSize = 16 * 4096

	// defaultNumOps is the default workload length.
	defaultNumOps = 1_000_000
)

// backendNames are the accepted values of the backend flag.
const (
	backendHash    = "hash"
	backendOrdered = "ordered"
	backendAll     = "all"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[lrubench] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "lrubench"
	app.Usage = "benchmark harness for the lrucache library"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "size",
			Usage: "capacity of the cache under test",
			Value: defaultCacheSize,
		},
		cli.IntFlag{
			Name:  "ops",
			Usage: "number of operations in the workload",
			Value: defaultNumOps,
		},
		cli.Float64Flag{
			Name:  "putratio",
			Usage: "fraction of operations that are puts",
			Value: bench.DefaultPutProb,
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "workload generator seed",
		},
		cli.StringFlag{
			Name: "backend",
			Usage: "key index backend to measure: hash, " +
				"ordered or all",
			Value: backendAll,
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// selectedBackends resolves the backend flag into the set of labelled cache
// constructors to measure.
func selectedBackends(name string,
	size int) ([]string, []bench.CacheConstructor, error) {

	hash := func() (*lrucache.Cache[uint64, uint64], error) {
		return lrucache.New[uint64, uint64](size)
	}
	ordered := func() (*lrucache.Cache[uint64, uint64], error) {
		return lrucache.NewOrdered[uint64, uint64](size)
	}

	switch name {
	case backendHash:
		return []string{backendHash},
			[]bench.CacheConstructor{hash}, nil

	case backendOrdered:
		return []string{backendOrdered},
			[]bench.CacheConstructor{ordered}, nil

	case backendAll:
		return []string{backendHash, backendOrdered},
			[]bench.CacheConstructor{hash, ordered}, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}

func run(ctx *cli.Context) error {
	logger := btclog.NewSLogger(btclog.NewDefaultHandler(os.Stdout))
	if ctx.Bool("debug") {
		logger.SetLevel(btclog.LevelDebug)
	} else {
		logger.SetLevel(btclog.LevelInfo)
	}
	lrucache.UseLogger(logger.SubSystem(lrucache.Subsystem))
	bench.UseLogger(logger.SubSystem(bench.Subsystem))

	size := ctx.Int("size")

	labels, constructors, err := selectedBackends(
		ctx.String("backend"), size,
	)
	if err != nil {
		return err
	}

	// Make sure the cache actually behaves before timing it.
	fmt.Println("running basic sanity scenario...")
	for _, label := range labels {
		sanityCache := func() (*lrucache.Cache[string, string],
			error) {

			if label == backendOrdered {
				return lrucache.NewOrdered[string, string](4)
			}

			return lrucache.New[string, string](4)
		}

		if err := bench.Sanity(sanityCache); err != nil {
			return fmt.Errorf("sanity scenario failed for %v "+
				"backend: %w", label, err)
		}
	}

	fmt.Println("generating random workload...")
	workload, err := bench.Generate(bench.Config{
		CacheSize: size,
		NumOps:    ctx.Int("ops"),
		PutProb:   ctx.Float64("putratio"),
		Seed:      ctx.Int64("seed"),
	})
	if err != nil {
		return err
	}

	runner := bench.NewRunner()

	var results []*bench.Result
	for i, newCache := range constructors {
		res, err := runner.Run(labels[i], newCache, workload)
		if err != nil {
			return err
		}

		results = append(results, res)
	}

	fmt.Println(bench.RenderResults(results))

	return nil
}
