package model

import "errors"

// DefaultProfileID is the risk profile used when a caller names none.
const DefaultProfileID = "neutral"

// RiskProfile maps a named investor profile to a return assumption.
// ExpectedReturn and Volatility are annual percentages.
type RiskProfile struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description,omitempty" yaml:"description"`
	ExpectedReturn float64 `json:"expected_return" yaml:"expected_return"`
	Volatility     float64 `json:"volatility" yaml:"volatility"`
}

func (p RiskProfile) Validate() error {
	if p.ID == "" {
		return errors.New("profile id is required")
	}
	if p.Volatility < 0 {
		return errors.New("profile volatility must be >= 0")
	}
	return nil
}

// BuiltinProfiles are used when no profile directory is available.
func BuiltinProfiles() []RiskProfile {
	return []RiskProfile{
		{ID: "defensive", Name: "Defensive", Description: "Mostly bonds, low drawdowns.", ExpectedReturn: 4.0, Volatility: 6.0},
		{ID: "neutral", Name: "Neutral", Description: "Balanced equity/bond mix.", ExpectedReturn: 6.5, Volatility: 10.0},
		{ID: "offensive", Name: "Offensive", Description: "Equity heavy, long horizons.", ExpectedReturn: 8.5, Volatility: 15.0},
	}
}
