package models

import (
	"portfolio-projection/internal/analysis"
	"portfolio-projection/internal/model"
)

// SimulationResponse represents the response from a projection run
type SimulationResponse struct {
	Status        string                 `json:"status"`
	Seed          uint64                 `json:"seed"`
	Scenarios     int                    `json:"scenarios"`
	HorizonMonths int                    `json:"horizon_months"`
	Profile       string                 `json:"profile"`
	Cached        bool                   `json:"cached"`
	ElapsedMS     int64                  `json:"elapsed_ms"`
	Series        []model.MonthlySummary `json:"series"`
	Expected      model.ExpectedValues   `json:"expected"`
}

// ExpectedResponse is the final-month view of a run
type ExpectedResponse struct {
	Seed      uint64 `json:"seed"`
	Scenarios int    `json:"scenarios"`
	Profile   string `json:"profile"`
	model.ExpectedValues
}

// ProfilesResponse lists risk profile presets
type ProfilesResponse struct {
	Profiles []model.RiskProfile `json:"profiles"`
	Default  string              `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeUnknownProfile       = "UNKNOWN_PROFILE"
	CodeLimitExceeded        = "LIMIT_EXCEEDED"
	CodeUnsupportedFormat    = "UNSUPPORTED_FORMAT"
	CodeSimulationError      = "SIMULATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// CompareResponse ranks one plan across every risk profile
type CompareResponse struct {
	Comparison []analysis.ProfileOutcome `json:"comparison"`
}
