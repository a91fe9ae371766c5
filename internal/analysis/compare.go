// Package analysis compares one savings plan across risk profiles.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"
)

// ProfileOutcome is the final-month result of a plan under one profile.
type ProfileOutcome struct {
	Rank    int               `json:"rank"`
	Profile model.RiskProfile `json:"profile"`
	Seed    uint64            `json:"seed"`
	model.ExpectedValues
	// Spread is the P90-P10 width of the final month.
	Spread float64 `json:"spread"`
	// Gain is the median minus the invested amount.
	Gain float64 `json:"gain"`
}

// CompareProfiles runs req once per profile, ignoring any return
// assumption it carries, and ranks the outcomes by median descending.
// Every run shares the request seed (or the first run's seed) so the
// profiles face the same random draws.
func CompareProfiles(ctx context.Context, svc *service.Service, req service.Request) ([]ProfileOutcome, error) {
	profiles := svc.Profiles()
	out := make([]ProfileOutcome, 0, len(profiles))
	req.ExpectedReturn, req.Volatility = nil, nil

	for _, p := range profiles {
		req.Profile = p.ID
		res, err := svc.Simulate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.ID, err)
		}
		if req.Seed == nil {
			seed := res.Result.Seed
			req.Seed = &seed
		}
		ev := res.Result.Expected()
		out = append(out, ProfileOutcome{
			Profile:        p,
			Seed:           res.Result.Seed,
			ExpectedValues: ev,
			Spread:         ev.Optimistic - ev.Pessimistic,
			Gain:           ev.Expected - ev.Invested,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Expected > out[j].Expected
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
