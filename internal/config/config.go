package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"portfolio-projection/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML) of a projection run.
type Config struct {
	// Optional: load the risk profile from a separate YAML (e.g. examples/profiles/*.yaml).
	// If both ProfileFile and Profile are provided, Profile overrides ProfileFile.
	ProfileFile string           `yaml:"profile_file"`
	Profile     ProfileConfig    `yaml:"profile"`
	Simulation  SimulationConfig `yaml:"simulation"`
	Engine      EngineConfig     `yaml:"engine"`
}

type ProfileConfig struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	ExpectedReturn float64 `yaml:"expected_return"`
	Volatility     float64 `yaml:"volatility"`
}

type SimulationConfig struct {
	InitialAmount       float64 `yaml:"initial_amount"`
	MonthlyContribution float64 `yaml:"monthly_contribution"`
	// HorizonYears is converted to months; HorizonMonths wins when both are set.
	HorizonYears     *int    `yaml:"horizon_years"`
	HorizonMonths    *int    `yaml:"horizon_months"`
	Scenarios        int     `yaml:"scenarios"`
	Seed             *uint64 `yaml:"seed"`
	PercentileMethod string  `yaml:"percentile_method"`
}

type EngineConfig struct {
	Workers     int  `yaml:"workers"`
	PairCaching bool `yaml:"pair_caching"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If profile_file is set, load it and merge in any explicit overrides from c.Profile.
	if c.ProfileFile != "" {
		profilePath := c.ProfileFile
		if !filepath.IsAbs(profilePath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), profilePath)
			if _, err := os.Stat(cand); err == nil {
				profilePath = cand
			}
		}
		loaded, err := LoadProfileFile(profilePath)
		if err != nil {
			return nil, err
		}
		c.Profile = MergeProfile(loaded, c.Profile)
	}
	return &c, nil
}

// ApplyDefaults fills in what a concise config may leave out: the default
// scenario count, the default horizon, and the return assumption of a
// built-in profile referenced only by id.
func (c *Config) ApplyDefaults() {
	if c.Simulation.Scenarios == 0 {
		c.Simulation.Scenarios = model.DefaultScenarioCount
	}
	if c.Simulation.HorizonYears == nil && c.Simulation.HorizonMonths == nil {
		years := model.DefaultHorizonYears
		c.Simulation.HorizonYears = &years
	}
	if c.Profile.ExpectedReturn == 0 && c.Profile.Volatility == 0 {
		id := c.Profile.ID
		if id == "" {
			id = model.DefaultProfileID
		}
		for _, p := range model.BuiltinProfiles() {
			if p.ID == id {
				c.Profile = MergeProfile(FromModelProfile(p), c.Profile)
			}
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Engine.Workers < 0 {
		return errors.New("engine.workers must be >= 0")
	}
	if y := c.Simulation.HorizonYears; y != nil {
		if _, err := model.MonthsFromYears(*y); err != nil {
			return fmt.Errorf("simulation config invalid: %w", err)
		}
	}
	if err := c.ToModel().Validate(); err != nil {
		return fmt.Errorf("simulation config invalid: %w", err)
	}
	return nil
}

// ToModel builds the engine input from the file shape.
func (c *Config) ToModel() model.SimulationConfig {
	s := c.Simulation
	months := 0
	if s.HorizonYears != nil {
		months = model.HorizonMonthsFromYears(*s.HorizonYears)
	}
	if s.HorizonMonths != nil {
		months = *s.HorizonMonths
	}
	return model.SimulationConfig{
		InitialAmount:        s.InitialAmount,
		MonthlyContribution:  s.MonthlyContribution,
		HorizonMonths:        months,
		AnnualExpectedReturn: c.Profile.ExpectedReturn,
		AnnualVolatility:     c.Profile.Volatility,
		ScenarioCount:        s.Scenarios,
		Seed:                 s.Seed,
		PercentileMethod:     model.PercentileMethod(s.PercentileMethod),
	}
}

func (p ProfileConfig) ToModel() model.RiskProfile {
	return model.RiskProfile{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ExpectedReturn: p.ExpectedReturn,
		Volatility:     p.Volatility,
	}
}

func FromModelProfile(p model.RiskProfile) ProfileConfig {
	return ProfileConfig{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ExpectedReturn: p.ExpectedReturn,
		Volatility:     p.Volatility,
	}
}

type profileFileWrapper struct {
	Profile ProfileConfig `yaml:"profile"`
}

// LoadProfileFile reads a single risk profile preset.
func LoadProfileFile(path string) (ProfileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProfileConfig{}, err
	}
	var w profileFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ProfileConfig{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return w.Profile, nil
}

// MergeProfile overlays non-zero fields from override onto base.
// This is used when loading a profile file and then applying overrides from the config.
func MergeProfile(base, override ProfileConfig) ProfileConfig {
	out := base
	if override.ID != "" {
		out.ID = override.ID
	}
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	// Note: a 0% return is legal but cannot be expressed as an override.
	if override.ExpectedReturn != 0 {
		out.ExpectedReturn = override.ExpectedReturn
	}
	if override.Volatility != 0 {
		out.Volatility = override.Volatility
	}
	return out
}
