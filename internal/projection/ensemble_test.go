package projection

import (
	"context"
	"errors"
	"sync"
	"testing"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/variate"
)

func TestRunEnsemble_Shape(t *testing.T) {
	cfg := baseConfig()
	cfg.ScenarioCount = 150
	cfg.HorizonMonths = 36
	ens, err := RunEnsemble(context.Background(), cfg, 11, EnsembleOptions{Workers: 4})
	if err != nil {
		t.Fatalf("RunEnsemble: %v", err)
	}
	if len(ens) != 150 {
		t.Fatalf("len(ensemble) = %d, want 150", len(ens))
	}
	for s, path := range ens {
		if len(path) != 37 {
			t.Fatalf("len(ensemble[%d]) = %d, want 37", s, len(path))
		}
		if path[0] != cfg.InitialAmount {
			t.Fatalf("ensemble[%d][0] = %v, want %v", s, path[0], cfg.InitialAmount)
		}
		for m, v := range path {
			if v < 0 {
				t.Fatalf("ensemble[%d][%d] = %v, want >= 0", s, m, v)
			}
		}
	}
}

func TestRunEnsemble_OneStreamPerScenario(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]int{}
	streams := func(seed uint64, scenario int) variate.Source {
		mu.Lock()
		seen[scenario]++
		mu.Unlock()
		return variate.NewStream(seed, uint64(scenario))
	}
	cfg := baseConfig()
	cfg.ScenarioCount = 300
	if _, err := RunEnsemble(context.Background(), cfg, 1, EnsembleOptions{Workers: 6, Streams: streams}); err != nil {
		t.Fatalf("RunEnsemble: %v", err)
	}
	if len(seen) != 300 {
		t.Fatalf("streams built for %d scenarios, want 300", len(seen))
	}
	for s, n := range seen {
		if n != 1 {
			t.Errorf("scenario %d got %d streams", s, n)
		}
	}
}

func TestRunEnsemble_ScenariosDoNotShareState(t *testing.T) {
	cfg := baseConfig()
	cfg.ScenarioCount = 200
	ens, err := RunEnsemble(context.Background(), cfg, 5, EnsembleOptions{})
	if err != nil {
		t.Fatalf("RunEnsemble: %v", err)
	}
	// Scenario 17 simulated alone must match scenario 17 from the pool.
	gen := variate.New(variate.NewStream(5, 17))
	alone := SimulatePath(PathParams{
		InitialAmount:       cfg.InitialAmount,
		MonthlyContribution: cfg.MonthlyContribution,
		HorizonMonths:       cfg.HorizonMonths,
		MonthlyMean:         cfg.MonthlyMeanReturn(),
		MonthlyStdDev:       cfg.MonthlyStdDev(),
	}, gen)
	for m := range alone {
		if alone[m] != ens[17][m] {
			t.Fatalf("month %d: alone %v, pooled %v", m, alone[m], ens[17][m])
		}
	}
}

func TestRunEnsemble_Invalid(t *testing.T) {
	cfg := baseConfig()
	cfg.ScenarioCount = 0
	_, err := RunEnsemble(context.Background(), cfg, 1, EnsembleOptions{})
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestWorkerCount(t *testing.T) {
	tests := []struct {
		requested, jobs, want int
	}{
		{4, 10, 1},
		{4, 1000, 4},
		{16, 120, 16},
		{500, 200, 200},
	}
	for _, tt := range tests {
		if got := workerCount(tt.requested, tt.jobs); got != tt.want {
			t.Errorf("workerCount(%d, %d) = %d, want %d", tt.requested, tt.jobs, got, tt.want)
		}
	}
}
