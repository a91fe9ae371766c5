// Package service resolves caller requests into engine runs. It is the one
// place where profiles, limits and the result cache meet the engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio-projection/internal/data"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/projection"
)

// CustomProfileID labels runs whose return assumption was given explicitly.
const CustomProfileID = "custom"

// ErrLimitExceeded is returned when a request is larger than the configured limits.
var ErrLimitExceeded = errors.New("limit exceeded")

func limitErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLimitExceeded, fmt.Sprintf(format, args...))
}

// Outcome is a finished run together with the inputs that produced it.
type Outcome struct {
	Config  model.SimulationConfig
	Profile model.RiskProfile
	Result  *projection.Result
	Cached  bool
}

type Service struct {
	engine   *projection.Engine
	profiles *data.ProfileStore
	cache    *data.ResultCache
	limits   Limits
	logger   *slog.Logger
}

// New wires a service. cache may be nil.
func New(engine *projection.Engine, profiles *data.ProfileStore, cache *data.ResultCache, limits Limits, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		engine:   engine,
		profiles: profiles,
		cache:    cache,
		limits:   limits,
		logger:   logger,
	}
}

func (s *Service) Profiles() []model.RiskProfile {
	return s.profiles.List()
}

func (s *Service) Limits() Limits {
	return s.limits
}

// resolveProfile looks up the named profile unless the request carries its
// own return assumption, in which case the profile is only a label.
func (s *Service) resolveProfile(req Request) (model.RiskProfile, error) {
	if req.ExpectedReturn != nil && req.Volatility != nil {
		id := req.Profile
		if id == "" {
			id = CustomProfileID
		}
		return model.RiskProfile{
			ID:             id,
			Name:           id,
			ExpectedReturn: *req.ExpectedReturn,
			Volatility:     *req.Volatility,
		}, nil
	}
	return s.profiles.Get(req.Profile)
}

// Resolve turns a request into a validated engine config.
func (s *Service) Resolve(req Request) (model.SimulationConfig, model.RiskProfile, error) {
	profile, err := s.resolveProfile(req)
	if err != nil {
		return model.SimulationConfig{}, model.RiskProfile{}, err
	}
	cfg, err := req.toConfig(profile)
	if err != nil {
		return model.SimulationConfig{}, model.RiskProfile{}, err
	}
	if err := cfg.Validate(); err != nil {
		return model.SimulationConfig{}, model.RiskProfile{}, err
	}
	if err := s.limits.check(cfg); err != nil {
		return model.SimulationConfig{}, model.RiskProfile{}, err
	}
	return cfg, profile, nil
}

// Simulate resolves req and runs it, serving seeded runs from the cache
// when possible.
func (s *Service) Simulate(ctx context.Context, req Request) (*Outcome, error) {
	cfg, profile, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}

	key := data.CacheKey(cfg)
	if res, ok := s.cache.Get(key); ok {
		s.logger.Debug("serving cached projection", "seed", res.Seed)
		return &Outcome{Config: cfg, Profile: profile, Result: res, Cached: true}, nil
	}

	res, err := s.engine.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, res)

	return &Outcome{Config: cfg, Profile: profile, Result: res}, nil
}
