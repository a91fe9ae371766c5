package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio-projection/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_ProfileFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "profiles/offensive.yaml", `
profile:
  id: offensive
  name: Offensive
  expected_return: 8.5
  volatility: 15
`)
	path := writeFile(t, dir, "run.yaml", `
profile_file: profiles/offensive.yaml
profile:
  volatility: 18
simulation:
  initial_amount: 10000
  monthly_contribution: 250
  horizon_years: 20
  seed: 42
engine:
  workers: 4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile.ID != "offensive" || cfg.Profile.ExpectedReturn != 8.5 {
		t.Errorf("profile = %+v, want offensive with 8.5%% return", cfg.Profile)
	}
	if cfg.Profile.Volatility != 18 {
		t.Errorf("volatility override = %v, want 18", cfg.Profile.Volatility)
	}

	m := cfg.ToModel()
	if m.HorizonMonths != 240 {
		t.Errorf("HorizonMonths = %d, want 240", m.HorizonMonths)
	}
	if m.ScenarioCount != model.DefaultScenarioCount {
		t.Errorf("ScenarioCount = %d, want default %d", m.ScenarioCount, model.DefaultScenarioCount)
	}
	if m.Seed == nil || *m.Seed != 42 {
		t.Errorf("Seed = %v, want 42", m.Seed)
	}
	if cfg.Engine.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Engine.Workers)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", `
simulation:
  initial_amount: 5000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cfg.ToModel()
	if m.HorizonMonths != model.DefaultHorizonYears*12 {
		t.Errorf("HorizonMonths = %d, want %d", m.HorizonMonths, model.DefaultHorizonYears*12)
	}
	if cfg.Profile.ID != model.DefaultProfileID {
		t.Errorf("profile = %q, want %q", cfg.Profile.ID, model.DefaultProfileID)
	}
	if m.AnnualExpectedReturn == 0 || m.AnnualVolatility == 0 {
		t.Errorf("default profile did not fill the return assumption: %+v", m)
	}
}

func TestLoad_HorizonMonthsWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", `
profile:
  expected_return: 5
  volatility: 8
simulation:
  initial_amount: 1000
  horizon_years: 30
  horizon_months: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.ToModel().HorizonMonths; got != 0 {
		t.Errorf("HorizonMonths = %d, want 0", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", `
profile:
  expected_return: 5
  volatility: -2
simulation:
  initial_amount: 1000
`)
	_, err := Load(path)
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}

	path = writeFile(t, dir, "forever.yaml", `
profile:
  expected_return: 5
  volatility: 8
simulation:
  initial_amount: 1000
  horizon_years: 1537228672809129302
`)
	if _, err := Load(path); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("overflowing horizon_years: err = %v, want ErrInvalidConfiguration", err)
	}

	path = writeFile(t, dir, "broken.yaml", "simulation: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMergeProfile(t *testing.T) {
	base := ProfileConfig{ID: "neutral", Name: "Neutral", ExpectedReturn: 6.5, Volatility: 10}
	got := MergeProfile(base, ProfileConfig{Volatility: 12})
	want := ProfileConfig{ID: "neutral", Name: "Neutral", ExpectedReturn: 6.5, Volatility: 12}
	if got != want {
		t.Errorf("MergeProfile = %+v, want %+v", got, want)
	}
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("MAX_SCENARIOS", "5000")
	t.Setenv("MAX_HORIZON_YEARS", "not-a-number")
	t.Setenv("SIMULATION_CACHE_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PROFILE_DIR", t.TempDir())

	s := ServerFromEnv()
	if s.Port != "9090" {
		t.Errorf("Port = %q", s.Port)
	}
	if s.MaxScenarios != 5000 {
		t.Errorf("MaxScenarios = %d", s.MaxScenarios)
	}
	if s.MaxHorizonYears != 100 {
		t.Errorf("MaxHorizonYears = %d, want default 100", s.MaxHorizonYears)
	}
	if s.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v", s.CacheTTL)
	}
	if len(s.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", s.AllowedOrigins)
	}
	if !filepath.IsAbs(s.ProfileDir) {
		t.Errorf("ProfileDir = %q, want absolute", s.ProfileDir)
	}
}
