package projection

import (
	"context"
	"runtime"
	"sync"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/variate"
)

// Below this many scenarios the pool is not worth its goroutines.
const minParallelScenarios = 100

// StreamFactory builds the uniform source for one scenario. Every scenario
// must get a stream that shares no state with any other.
type StreamFactory func(seed uint64, scenario int) variate.Source

// DefaultStreams gives scenario s the PCG stream (seed, s).
func DefaultStreams(seed uint64, scenario int) variate.Source {
	return variate.NewStream(seed, uint64(scenario))
}

// EnsembleOptions tune RunEnsemble.
type EnsembleOptions struct {
	Workers     int
	Streams     StreamFactory
	PairCaching bool
}

// RunEnsemble simulates cfg.ScenarioCount independent trajectories and
// returns them as [scenario][month]. The config is validated before any
// work starts. A cancelled ctx yields ctx.Err() and no ensemble.
func RunEnsemble(ctx context.Context, cfg model.SimulationConfig, seed uint64, opts EnsembleOptions) ([][]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	streams := opts.Streams
	if streams == nil {
		streams = DefaultStreams
	}
	var genOpts []variate.Option
	if opts.PairCaching {
		genOpts = append(genOpts, variate.WithPairCaching())
	}

	params := PathParams{
		InitialAmount:       cfg.InitialAmount,
		MonthlyContribution: cfg.MonthlyContribution,
		HorizonMonths:       cfg.HorizonMonths,
		MonthlyMean:         cfg.MonthlyMeanReturn(),
		MonthlyStdDev:       cfg.MonthlyStdDev(),
	}

	n := cfg.ScenarioCount
	ensemble := make([][]float64, n)
	backing := make([]float64, n*(cfg.HorizonMonths+1))
	for s := range ensemble {
		ensemble[s] = backing[s*(cfg.HorizonMonths+1) : (s+1)*(cfg.HorizonMonths+1)]
	}

	err := forEachIndex(ctx, n, workerCount(opts.Workers, n), func(s int) {
		gen := variate.New(streams(seed, s), genOpts...)
		fillPath(ensemble[s], params, gen)
	})
	if err != nil {
		return nil, err
	}
	return ensemble, nil
}

func workerCount(requested, jobs int) int {
	w := requested
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if jobs < minParallelScenarios {
		w = 1
	}
	if w > jobs {
		w = jobs
	}
	if w < 1 {
		w = 1
	}
	return w
}

// forEachIndex runs fn(i) for i in [0, n) on the given number of workers
// and returns once every call has finished. Each index is handed to exactly
// one worker. Indices not yet started when ctx is cancelled are skipped and
// ctx.Err() is returned.
func forEachIndex(ctx context.Context, n, workers int, fn func(i int)) error {
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	var err error
feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return err
}
