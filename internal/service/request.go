package service

import (
	"portfolio-projection/internal/config"
	"portfolio-projection/internal/model"
)

// Request is the caller-facing shape of a projection run, shared by the
// HTTP API, the MCP tools and the CLI. Pointer fields distinguish "absent"
// from an explicit zero.
type Request struct {
	InitialAmount       float64 `json:"initial_amount,omitempty" form:"initial_amount" jsonschema:"starting capital in currency units"`
	MonthlyContribution float64 `json:"monthly_contribution,omitempty" form:"monthly_contribution" jsonschema:"amount added at the start of every month"`
	// HorizonMonths wins over HorizonYears when both are set.
	HorizonYears  *int `json:"horizon_years,omitempty" form:"horizon_years" jsonschema:"projection horizon in years (default 10)"`
	HorizonMonths *int `json:"horizon_months,omitempty" form:"horizon_months" jsonschema:"projection horizon in months, overrides horizon_years"`
	// ExpectedReturn and Volatility are annual percentages. When absent they
	// come from the named profile.
	ExpectedReturn   *float64 `json:"expected_return,omitempty" form:"expected_return" jsonschema:"annual expected return in percent, e.g. 6.5"`
	Volatility       *float64 `json:"volatility,omitempty" form:"volatility" jsonschema:"annual volatility in percent, e.g. 10"`
	Profile          string   `json:"profile,omitempty" form:"profile" jsonschema:"risk profile id (defensive, neutral, offensive); default neutral"`
	Scenarios        *int     `json:"scenarios,omitempty" form:"scenarios" jsonschema:"number of simulated trajectories (default 1000)"`
	Seed             *uint64  `json:"seed,omitempty" form:"seed" jsonschema:"seed for a reproducible run"`
	PercentileMethod string   `json:"percentile_method,omitempty" form:"percentile_method" jsonschema:"nearest_rank (default) or linear"`
}

// Limits caps the size of a single run. Zero means unlimited.
type Limits struct {
	MaxScenarios     int
	MaxHorizonMonths int
}

func (l Limits) check(cfg model.SimulationConfig) error {
	if l.MaxScenarios > 0 && cfg.ScenarioCount > l.MaxScenarios {
		return limitErr("scenarios %d exceeds the maximum of %d", cfg.ScenarioCount, l.MaxScenarios)
	}
	if l.MaxHorizonMonths > 0 && cfg.HorizonMonths > l.MaxHorizonMonths {
		return limitErr("horizon of %d months exceeds the maximum of %d", cfg.HorizonMonths, l.MaxHorizonMonths)
	}
	return nil
}

// toConfig builds the engine input, taking missing return assumptions from p.
func (r Request) toConfig(p model.RiskProfile) (model.SimulationConfig, error) {
	cfg := model.SimulationConfig{
		InitialAmount:        r.InitialAmount,
		MonthlyContribution:  r.MonthlyContribution,
		HorizonMonths:        model.HorizonMonthsFromYears(model.DefaultHorizonYears),
		AnnualExpectedReturn: p.ExpectedReturn,
		AnnualVolatility:     p.Volatility,
		ScenarioCount:        model.DefaultScenarioCount,
		Seed:                 r.Seed,
		PercentileMethod:     model.PercentileMethod(r.PercentileMethod),
	}
	if r.HorizonYears != nil {
		months, err := model.MonthsFromYears(*r.HorizonYears)
		if err != nil {
			return model.SimulationConfig{}, err
		}
		cfg.HorizonMonths = months
	}
	if r.HorizonMonths != nil {
		cfg.HorizonMonths = *r.HorizonMonths
	}
	if r.ExpectedReturn != nil {
		cfg.AnnualExpectedReturn = *r.ExpectedReturn
	}
	if r.Volatility != nil {
		cfg.AnnualVolatility = *r.Volatility
	}
	if r.Scenarios != nil {
		cfg.ScenarioCount = *r.Scenarios
	}
	return cfg, nil
}

// RequestFromConfig builds a request from a loaded run config. The config's
// profile has already been merged, so its return assumption is explicit.
func RequestFromConfig(c *config.Config) Request {
	m := c.ToModel()
	months := m.HorizonMonths
	scenarios := m.ScenarioCount
	ret := m.AnnualExpectedReturn
	vol := m.AnnualVolatility
	return Request{
		InitialAmount:       m.InitialAmount,
		MonthlyContribution: m.MonthlyContribution,
		HorizonMonths:       &months,
		ExpectedReturn:      &ret,
		Volatility:          &vol,
		Profile:             c.Profile.ID,
		Scenarios:           &scenarios,
		Seed:                m.Seed,
		PercentileMethod:    string(m.PercentileMethod),
	}
}
