package model

import "github.com/shopspring/decimal"

// MonthlySummary is one point of the projected percentile bands.
// This is the primary artifact of a run; trajectories are not retained.
type MonthlySummary struct {
	Month    int     `json:"month"`
	Year     string  `json:"year"`
	P10      float64 `json:"p10"`
	Median   float64 `json:"median"`
	P90      float64 `json:"p90"`
	Invested float64 `json:"invested"`
}

// ExpectedValues is the final-month view shown to end users.
type ExpectedValues struct {
	Pessimistic float64 `json:"pessimistic"`
	Expected    float64 `json:"expected"`
	Optimistic  float64 `json:"optimistic"`
	Invested    float64 `json:"invested"`
}

// YearLabel renders month/12 with one decimal, rounding half away from zero.
func YearLabel(month int) string {
	return decimal.NewFromInt(int64(month)).
		DivRound(decimal.NewFromInt(12), 8).
		StringFixed(1)
}
