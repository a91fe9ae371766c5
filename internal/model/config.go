package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is wrapped by every validation failure of a
// SimulationConfig. Callers match it with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultScenarioCount is the number of trajectories used when a boundary
// (API, CLI, config file) receives no explicit scenario count.
const DefaultScenarioCount = 1000

// DefaultHorizonYears is the horizon used when none is supplied.
const DefaultHorizonYears = 10

// PercentileMethod selects how a percentile is read from a sorted column.
type PercentileMethod string

const (
	// PercentileNearestRank picks sorted[floor(n*p)], clamped to n-1.
	PercentileNearestRank PercentileMethod = "nearest_rank"
	// PercentileLinear interpolates between adjacent order statistics.
	PercentileLinear PercentileMethod = "linear"
)

// SimulationConfig is the caller-supplied input of one projection run.
// Units:
// - InitialAmount, MonthlyContribution: currency
// - AnnualExpectedReturn, AnnualVolatility: percent (8.5 means 8.5%/year)
type SimulationConfig struct {
	InitialAmount        float64          `json:"initial_amount" yaml:"initial_amount"`
	MonthlyContribution  float64          `json:"monthly_contribution" yaml:"monthly_contribution"`
	HorizonMonths        int              `json:"horizon_months" yaml:"horizon_months"`
	AnnualExpectedReturn float64          `json:"expected_return" yaml:"expected_return"`
	AnnualVolatility     float64          `json:"volatility" yaml:"volatility"`
	ScenarioCount        int              `json:"scenarios" yaml:"scenarios"`
	Seed                 *uint64          `json:"seed,omitempty" yaml:"seed,omitempty"`
	PercentileMethod     PercentileMethod `json:"percentile_method,omitempty" yaml:"percentile_method,omitempty"`
}

// MaxHorizonYears is the longest horizon whose month count fits an int.
const MaxHorizonYears = math.MaxInt / 12

// HorizonMonthsFromYears converts a horizon in years to simulated months,
// saturating instead of wrapping when years is out of range.
func HorizonMonthsFromYears(years int) int {
	switch {
	case years > MaxHorizonYears:
		return math.MaxInt
	case years < -MaxHorizonYears:
		return math.MinInt
	}
	return years * 12
}

// MonthsFromYears is the checked conversion used for caller input. It
// rejects negative horizons and horizons whose month count overflows.
func MonthsFromYears(years int) (int, error) {
	if years < 0 {
		return 0, invalid("horizon_years must be >= 0")
	}
	if years > MaxHorizonYears {
		return 0, invalid("horizon_years must be <= %d", MaxHorizonYears)
	}
	return years * 12, nil
}

// Validate reports whether the config can be simulated.
func (c SimulationConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"initial_amount", c.InitialAmount},
		{"monthly_contribution", c.MonthlyContribution},
		{"expected_return", c.AnnualExpectedReturn},
		{"volatility", c.AnnualVolatility},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid("%s must be a finite number", f.name)
		}
	}
	if c.ScenarioCount <= 0 {
		return invalid("scenarios must be > 0")
	}
	if c.HorizonMonths < 0 {
		return invalid("horizon_months must be >= 0")
	}
	if c.InitialAmount < 0 {
		return invalid("initial_amount must be >= 0")
	}
	if c.AnnualVolatility < 0 {
		return invalid("volatility must be >= 0")
	}
	switch c.PercentileMethod {
	case "", PercentileNearestRank, PercentileLinear:
	default:
		return invalid("unknown percentile_method %q", c.PercentileMethod)
	}
	return nil
}

// Method returns the configured percentile method, defaulting to nearest rank.
func (c SimulationConfig) Method() PercentileMethod {
	if c.PercentileMethod == "" {
		return PercentileNearestRank
	}
	return c.PercentileMethod
}

// MonthlyMeanReturn is the per-month mean return as a fraction.
func (c SimulationConfig) MonthlyMeanReturn() float64 {
	return c.AnnualExpectedReturn / 12 / 100
}

// MonthlyStdDev is the per-month return standard deviation as a fraction.
// Volatility scales with the square root of time.
func (c SimulationConfig) MonthlyStdDev() float64 {
	return c.AnnualVolatility / math.Sqrt(12) / 100
}

// Invested is the contributed capital after month m.
func (c SimulationConfig) Invested(month int) float64 {
	return c.InitialAmount + c.MonthlyContribution*float64(month)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
