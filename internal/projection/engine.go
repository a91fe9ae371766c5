package projection

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/model"
)

// Recorder receives one observation per finished run. result is "success"
// or "error".
type Recorder interface {
	ObserveRun(result string, scenarios, months int, duration time.Duration)
}

type Engine struct {
	workers     int
	pairCaching bool
	streams     StreamFactory
	logger      *slog.Logger
	recorder    Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the goroutines used per run. Zero means GOMAXPROCS.
func WithWorkers(n int) Option { return func(e *Engine) { e.workers = n } }

// WithPairCaching reuses both Box–Muller deviates.
func WithPairCaching() Option { return func(e *Engine) { e.pairCaching = true } }

// WithStreams replaces the per-scenario uniform source factory.
func WithStreams(f StreamFactory) Option { return func(e *Engine) { e.streams = f } }

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option { return func(e *Engine) { e.recorder = r } }

func New(opts ...Option) *Engine {
	e := &Engine{
		streams: DefaultStreams,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run simulates the configured ensemble and reduces it to percentile bands.
// The series has HorizonMonths+1 entries in ascending month order.
func (e *Engine) Run(ctx context.Context, cfg model.SimulationConfig) (*Result, error) {
	start := time.Now()
	res, err := e.run(ctx, cfg)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if e.recorder != nil {
		e.recorder.ObserveRun(outcome, cfg.ScenarioCount, cfg.HorizonMonths+1, time.Since(start))
	}
	if err != nil {
		e.logger.Debug("projection run failed", "error", err)
		return nil, err
	}
	res.Elapsed = time.Since(start)
	e.logger.Debug("projection run finished",
		"scenarios", res.Scenarios,
		"months", len(res.Series),
		"seed", res.Seed,
		"workers", workerCount(e.workers, cfg.ScenarioCount),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (e *Engine) run(ctx context.Context, cfg model.SimulationConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// 53 bits so the reported seed survives a round trip through a JSON number.
	seed := rand.Uint64() >> 11
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	ensemble, err := RunEnsemble(ctx, cfg, seed, EnsembleOptions{
		Workers:     e.workers,
		Streams:     e.streams,
		PairCaching: e.pairCaching,
	})
	if err != nil {
		return nil, fmt.Errorf("run ensemble: %w", err)
	}

	series, err := Aggregate(ctx, cfg, ensemble, e.workers)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	return &Result{
		Series:    series,
		Seed:      seed,
		Scenarios: cfg.ScenarioCount,
	}, nil
}

// ExpectedValuesOf extracts the final month of a series.
func ExpectedValuesOf(series []model.MonthlySummary) (model.ExpectedValues, error) {
	if len(series) == 0 {
		return model.ExpectedValues{}, fmt.Errorf("empty series")
	}
	final := series[len(series)-1]
	return model.ExpectedValues{
		Pessimistic: final.P10,
		Expected:    final.Median,
		Optimistic:  final.P90,
		Invested:    final.Invested,
	}, nil
}
