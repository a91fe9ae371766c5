package models

import "portfolio-projection/internal/service"

// SimulationRequest is the body of POST /api/v1/simulations and friends.
type SimulationRequest = service.Request

// PlaybackQuery carries a simulation request in the query string of the
// playback websocket, plus the pause between frames.
type PlaybackQuery struct {
	service.Request
	IntervalMS int `form:"interval_ms"`
}

// ExportQuery selects the export format.
type ExportQuery struct {
	Format string `form:"format"` // "csv", "xlsx" or "pdf"; default csv
}
