package projection

import (
	"time"

	"portfolio-projection/internal/model"
)

// Result is the output of one Engine.Run.
// Seed replays the run bit for bit when fed back through SimulationConfig.Seed.
type Result struct {
	Series    []model.MonthlySummary
	Seed      uint64
	Scenarios int
	Elapsed   time.Duration
}

// Expected returns the final-month summary of the run. Run always yields at
// least the month-0 entry; an empty Series gives the zero value.
func (r *Result) Expected() model.ExpectedValues {
	ev, _ := ExpectedValuesOf(r.Series)
	return ev
}
