package projection

import (
	"context"
	"fmt"
	"math"
	"sort"

	"portfolio-projection/internal/model"
)

const (
	pLow    = 0.10
	pMedian = 0.50
	pHigh   = 0.90
)

// Aggregate reduces an ensemble to one MonthlySummary per month. It must
// only be called once every scenario of the ensemble is complete. Months
// are reduced independently on up to workers goroutines.
func Aggregate(ctx context.Context, cfg model.SimulationConfig, ensemble [][]float64, workers int) ([]model.MonthlySummary, error) {
	if len(ensemble) == 0 {
		return nil, fmt.Errorf("%w: empty ensemble", model.ErrInvalidConfiguration)
	}
	months := cfg.HorizonMonths + 1
	series := make([]model.MonthlySummary, months)
	pick := percentileFunc(cfg.Method())

	// One scratch column per worker; a month is handled by a single worker.
	w := workerCount(workers, len(ensemble))
	if w > months {
		w = months
	}
	columns := make(chan []float64, w)
	for i := 0; i < w; i++ {
		columns <- make([]float64, len(ensemble))
	}

	err := forEachIndex(ctx, months, w, func(m int) {
		col := <-columns
		defer func() { columns <- col }()

		for s, path := range ensemble {
			col[s] = path[m]
		}
		sort.Float64s(col)
		series[m] = model.MonthlySummary{
			Month:    m,
			Year:     model.YearLabel(m),
			P10:      pick(col, pLow),
			Median:   pick(col, pMedian),
			P90:      pick(col, pHigh),
			Invested: cfg.Invested(m),
		}
	})
	if err != nil {
		return nil, err
	}
	return series, nil
}

func percentileFunc(method model.PercentileMethod) func([]float64, float64) float64 {
	if method == model.PercentileLinear {
		return percentileLinear
	}
	return percentileNearestRank
}

// percentileNearestRank reads sorted[floor(n*q)] without interpolation,
// clamping the index to the last element.
func percentileNearestRank(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(float64(len(sorted)) * q))
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

func percentileLinear(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
