package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"
)

// SimulatePortfolioOutput is the result of the simulate_portfolio tool.
type SimulatePortfolioOutput struct {
	Seed          uint64                 `json:"seed" jsonschema:"seed that replays this run"`
	Scenarios     int                    `json:"scenarios"`
	HorizonMonths int                    `json:"horizon_months"`
	Profile       string                 `json:"profile"`
	Expected      model.ExpectedValues   `json:"expected" jsonschema:"final-month pessimistic (P10), expected (median) and optimistic (P90) values"`
	Yearly        []model.MonthlySummary `json:"yearly" jsonschema:"percentile bands at every whole year and the final month"`
}

// ExpectedValuesOutput is the result of the expected_values tool.
type ExpectedValuesOutput struct {
	Seed     uint64               `json:"seed"`
	Profile  string               `json:"profile"`
	Expected model.ExpectedValues `json:"expected"`
}

type ListProfilesInput struct{}

type ListProfilesOutput struct {
	Profiles []model.RiskProfile `json:"profiles"`
	Default  string              `json:"default"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "simulate_portfolio",
		Description: "Run a Monte Carlo projection of a portfolio with monthly contributions and return yearly P10/median/P90 bands",
	}, s.handleSimulatePortfolio)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "expected_values",
		Description: "Run a projection and return only the final pessimistic, expected and optimistic values",
	}, s.handleExpectedValues)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "list_profiles",
		Description: "List risk profiles with their annual expected return and volatility",
	}, s.handleListProfiles)
}

func (s *Server) handleSimulatePortfolio(ctx context.Context, req *sdk.CallToolRequest, args service.Request) (*sdk.CallToolResult, SimulatePortfolioOutput, error) {
	out, err := s.svc.Simulate(ctx, args)
	if err != nil {
		s.logger.Info("simulate_portfolio failed", "error", err)
		return nil, SimulatePortfolioOutput{}, err
	}
	res := out.Result
	return nil, SimulatePortfolioOutput{
		Seed:          res.Seed,
		Scenarios:     res.Scenarios,
		HorizonMonths: out.Config.HorizonMonths,
		Profile:       out.Profile.ID,
		Expected:      res.Expected(),
		Yearly:        yearly(res.Series),
	}, nil
}

func (s *Server) handleExpectedValues(ctx context.Context, req *sdk.CallToolRequest, args service.Request) (*sdk.CallToolResult, ExpectedValuesOutput, error) {
	out, err := s.svc.Simulate(ctx, args)
	if err != nil {
		s.logger.Info("expected_values failed", "error", err)
		return nil, ExpectedValuesOutput{}, err
	}
	return nil, ExpectedValuesOutput{
		Seed:     out.Result.Seed,
		Profile:  out.Profile.ID,
		Expected: out.Result.Expected(),
	}, nil
}

func (s *Server) handleListProfiles(ctx context.Context, req *sdk.CallToolRequest, args ListProfilesInput) (*sdk.CallToolResult, ListProfilesOutput, error) {
	return nil, ListProfilesOutput{
		Profiles: s.svc.Profiles(),
		Default:  model.DefaultProfileID,
	}, nil
}

func yearly(series []model.MonthlySummary) []model.MonthlySummary {
	out := make([]model.MonthlySummary, 0, len(series)/12+2)
	for i, m := range series {
		if m.Month%12 == 0 || i == len(series)-1 {
			out = append(out, m)
		}
	}
	return out
}
