package projection

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"portfolio-projection/internal/model"
)

func seed(v uint64) *uint64 { return &v }

func baseConfig() model.SimulationConfig {
	return model.SimulationConfig{
		InitialAmount:        10000,
		MonthlyContribution:  250,
		HorizonMonths:        120,
		AnnualExpectedReturn: 8.5,
		AnnualVolatility:     15,
		ScenarioCount:        500,
		Seed:                 seed(20240601),
	}
}

func TestRun_SingleMonthScenario(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialAmount:        10000,
		HorizonMonths:        0,
		ScenarioCount:        100,
		AnnualExpectedReturn: 8,
	}
	res, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []model.MonthlySummary{{Month: 0, Year: "0.0", P10: 10000, Median: 10000, P90: 10000, Invested: 10000}}
	if len(res.Series) != 1 || res.Series[0] != want[0] {
		t.Errorf("series = %+v, want %+v", res.Series, want)
	}
}

func TestRun_OneMonthZeroVolatility(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialAmount:        1000,
		MonthlyContribution:  100,
		HorizonMonths:        1,
		AnnualExpectedReturn: 12,
		ScenarioCount:        10,
	}
	res, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := res.Series[1]
	if got.P10 != 1111.0 || got.Median != 1111.0 || got.P90 != 1111.0 {
		t.Errorf("month 1 bands = %v/%v/%v, want 1111 for all", got.P10, got.Median, got.P90)
	}
	if got.Invested != 1100 {
		t.Errorf("invested = %v, want 1100", got.Invested)
	}
}

func TestRun_ZeroVolatilityMatchesClosedForm(t *testing.T) {
	cfg := baseConfig()
	cfg.AnnualVolatility = 0
	res, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	r := cfg.MonthlyMeanReturn()
	value := cfg.InitialAmount
	for m, s := range res.Series {
		if m > 0 {
			value += cfg.MonthlyContribution
			value *= 1 + r
		}
		if s.P10 != s.Median || s.Median != s.P90 {
			t.Fatalf("month %d: bands differ with zero volatility: %+v", m, s)
		}
		if s.Median != value {
			t.Fatalf("month %d: median = %v, want %v", m, s.Median, value)
		}
	}

	// Same thing via the textbook annuity formula, to rounding.
	n := float64(cfg.HorizonMonths)
	growth := math.Pow(1+r, n)
	closed := cfg.InitialAmount*growth + cfg.MonthlyContribution*(1+r)*(growth-1)/r
	last := res.Series[len(res.Series)-1].Median
	if math.Abs(last-closed)/closed > 1e-9 {
		t.Errorf("final median = %v, closed form = %v", last, closed)
	}
}

func TestRun_SeriesProperties(t *testing.T) {
	cfg := baseConfig()
	res, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Series) != cfg.HorizonMonths+1 {
		t.Fatalf("len(series) = %d, want %d", len(res.Series), cfg.HorizonMonths+1)
	}
	first := res.Series[0]
	if first.P10 != cfg.InitialAmount || first.Median != cfg.InitialAmount || first.P90 != cfg.InitialAmount {
		t.Errorf("month 0 = %+v, want every band at %v", first, cfg.InitialAmount)
	}
	for m, s := range res.Series {
		if s.Month != m {
			t.Fatalf("series[%d].Month = %d", m, s.Month)
		}
		if s.Year != model.YearLabel(m) {
			t.Errorf("series[%d].Year = %q", m, s.Year)
		}
		if s.Invested != cfg.InitialAmount+cfg.MonthlyContribution*float64(m) {
			t.Errorf("series[%d].Invested = %v", m, s.Invested)
		}
		if s.P10 < 0 {
			t.Errorf("series[%d].P10 = %v, want >= 0", m, s.P10)
		}
		if !(s.P10 <= s.Median && s.Median <= s.P90) {
			t.Errorf("series[%d] bands out of order: %v %v %v", m, s.P10, s.Median, s.P90)
		}
	}
	last := res.Series[len(res.Series)-1]
	if last.P90-last.P10 <= 0 {
		t.Errorf("final spread = %v, want > 0 with 15%% volatility", last.P90-last.P10)
	}
}

func TestRun_SeedReproducibleAcrossWorkers(t *testing.T) {
	cfg := baseConfig()
	a, err := New(WithWorkers(1)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := New(WithWorkers(8)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Seed != b.Seed {
		t.Fatalf("seeds differ: %d vs %d", a.Seed, b.Seed)
	}
	for m := range a.Series {
		if a.Series[m] != b.Series[m] {
			t.Fatalf("month %d differs: %+v vs %+v", m, a.Series[m], b.Series[m])
		}
	}
}

func TestRun_ReplaysReportedSeed(t *testing.T) {
	cfg := baseConfig()
	cfg.Seed = nil
	a, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	cfg.Seed = seed(a.Seed)
	b, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Series[len(a.Series)-1] != b.Series[len(b.Series)-1] {
		t.Error("replaying the reported seed did not reproduce the run")
	}
}

func TestRun_DifferentSeedsDiffer(t *testing.T) {
	cfg := baseConfig()
	a, _ := New().Run(context.Background(), cfg)
	cfg.Seed = seed(7)
	b, _ := New().Run(context.Background(), cfg)
	if a.Series[len(a.Series)-1] == b.Series[len(b.Series)-1] {
		t.Error("different seeds produced identical final months")
	}
}

func TestRun_ConvergesWithScenarioCount(t *testing.T) {
	cfg := baseConfig()
	cfg.ScenarioCount = 4000
	cfg.MonthlyContribution = 0
	cfg.HorizonMonths = 12
	res, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Median of a product of near-lognormal monthly factors sits close to
	// the compounded mean less half the variance.
	r, sd := cfg.MonthlyMeanReturn(), cfg.MonthlyStdDev()
	mu := math.Log(1+r) - sd*sd/(2*(1+r)*(1+r))
	want := cfg.InitialAmount * math.Exp(12*mu)
	got := res.Series[12].Median
	if math.Abs(got-want)/want > 0.02 {
		t.Errorf("median after 12 months = %v, want within 2%% of %v", got, want)
	}
}

func TestRun_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *model.SimulationConfig)
	}{
		{"zero scenarios", func(c *model.SimulationConfig) { c.ScenarioCount = 0 }},
		{"negative horizon", func(c *model.SimulationConfig) { c.HorizonMonths = -1 }},
		{"negative initial", func(c *model.SimulationConfig) { c.InitialAmount = -100 }},
		{"negative volatility", func(c *model.SimulationConfig) { c.AnnualVolatility = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			rec := &fakeRecorder{}
			res, err := New(WithRecorder(rec)).Run(context.Background(), cfg)
			if !errors.Is(err, model.ErrInvalidConfiguration) {
				t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
			}
			if res != nil {
				t.Error("expected no result on invalid configuration")
			}
			if rec.results["error"] != 1 {
				t.Errorf("recorded %v, want one error", rec.results)
			}
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New().Run(ctx, baseConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Error("expected no partial result")
	}
}

func TestRun_RecordsSuccess(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := baseConfig()
	if _, err := New(WithRecorder(rec)).Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.results["success"] != 1 {
		t.Errorf("recorded %v, want one success", rec.results)
	}
	if rec.scenarios != cfg.ScenarioCount || rec.months != cfg.HorizonMonths+1 {
		t.Errorf("recorded scenarios=%d months=%d", rec.scenarios, rec.months)
	}
}

func TestExpectedValuesOf(t *testing.T) {
	series := []model.MonthlySummary{
		{Month: 0, P10: 1, Median: 1, P90: 1, Invested: 1},
		{Month: 1, P10: 90, Median: 100, P90: 120, Invested: 95},
	}
	got, err := ExpectedValuesOf(series)
	if err != nil {
		t.Fatalf("ExpectedValuesOf: %v", err)
	}
	want := model.ExpectedValues{Pessimistic: 90, Expected: 100, Optimistic: 120, Invested: 95}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if _, err := ExpectedValuesOf(nil); err == nil {
		t.Error("expected error for empty series")
	}
}

type fakeRecorder struct {
	mu        sync.Mutex
	results   map[string]int
	scenarios int
	months    int
}

func (f *fakeRecorder) ObserveRun(result string, scenarios, months int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.results == nil {
		f.results = map[string]int{}
	}
	f.results[result]++
	f.scenarios = scenarios
	f.months = months
}

func TestResult_Expected(t *testing.T) {
	cfg := baseConfig()
	cfg.HorizonMonths = 0
	res, err := New().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// A zero horizon still yields the month-0 entry.
	got := res.Expected()
	if got.Expected != cfg.InitialAmount || got.Invested != cfg.InitialAmount {
		t.Errorf("Expected() = %+v, want initial amount %v", got, cfg.InitialAmount)
	}
	if (&Result{}).Expected() != (model.ExpectedValues{}) {
		t.Error("empty series should give the zero value")
	}
}
