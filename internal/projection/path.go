package projection

import "portfolio-projection/internal/variate"

// PathParams are the per-scenario inputs of SimulatePath, with returns
// already converted to monthly fractions.
type PathParams struct {
	InitialAmount       float64
	MonthlyContribution float64
	HorizonMonths       int
	MonthlyMean         float64
	MonthlyStdDev       float64
}

// SimulatePath advances one trajectory month by month and returns its
// value at months 0..HorizonMonths.
//
// Each month the contribution is added first and the month's return is
// applied to the sum, so new money rides that month's market move.
func SimulatePath(p PathParams, gen *variate.Generator) []float64 {
	path := make([]float64, p.HorizonMonths+1)
	fillPath(path, p, gen)
	return path
}

// fillPath writes the trajectory into dst, which must hold HorizonMonths+1 values.
func fillPath(dst []float64, p PathParams, gen *variate.Generator) {
	value := p.InitialAmount
	dst[0] = floorZero(value)
	for m := 1; m <= p.HorizonMonths; m++ {
		value += p.MonthlyContribution
		r := gen.Normal(p.MonthlyMean, p.MonthlyStdDev)
		value *= 1 + r
		value = floorZero(value)
		dst[m] = value
	}
}

func floorZero(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
