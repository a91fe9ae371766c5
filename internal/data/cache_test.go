package data

import (
	"testing"
	"time"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/projection"
)

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) ObserveCache(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func seeded(seed uint64) model.SimulationConfig {
	return model.SimulationConfig{
		InitialAmount:        1000,
		MonthlyContribution:  100,
		HorizonMonths:        120,
		AnnualExpectedReturn: 6,
		AnnualVolatility:     10,
		ScenarioCount:        1000,
		Seed:                 &seed,
	}
}

func TestCacheKey(t *testing.T) {
	a := seeded(1)
	if CacheKey(a) == "" {
		t.Fatal("seeded config should have a key")
	}
	if CacheKey(a) != CacheKey(seeded(1)) {
		t.Error("equal configs must share a key")
	}
	if CacheKey(a) == CacheKey(seeded(2)) {
		t.Error("different seeds must not share a key")
	}

	explicit := seeded(1)
	explicit.PercentileMethod = model.PercentileNearestRank
	if CacheKey(a) != CacheKey(explicit) {
		t.Error("default and explicit nearest_rank must share a key")
	}

	unseeded := seeded(1)
	unseeded.Seed = nil
	if CacheKey(unseeded) != "" {
		t.Error("unseeded config must not be cacheable")
	}
}

func TestResultCache_GetSetExpiry(t *testing.T) {
	obs := &countingObserver{}
	c := NewResultCache(time.Minute, obs)
	defer c.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	key := CacheKey(seeded(7))
	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}

	res := &projection.Result{Seed: 7, Scenarios: 1000}
	c.Set(key, res)
	got, ok := c.Get(key)
	if !ok || got != res {
		t.Fatalf("Get = %v, %v; want stored result", got, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(key); ok {
		t.Error("expired entry reported a hit")
	}
	c.evictExpired()
	if c.Len() != 0 {
		t.Errorf("Len() after eviction = %d, want 0", c.Len())
	}

	if obs.hits != 1 || obs.misses != 2 {
		t.Errorf("observer hits=%d misses=%d, want 1/2", obs.hits, obs.misses)
	}
}

func TestResultCache_Disabled(t *testing.T) {
	c := NewResultCache(0, nil)
	if c != nil {
		t.Fatal("ttl 0 should disable the cache")
	}
	c.Set("k", &projection.Result{})
	if _, ok := c.Get("k"); ok {
		t.Error("nil cache reported a hit")
	}
	c.Clear()
	c.Close()
}
