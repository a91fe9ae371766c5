// Package variate draws normally distributed values from a uniform source.
package variate

import (
	"math"
	"math/rand/v2"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewStream returns an independent PCG stream. Two streams with the same
// seed but different stream ids never share state.
func NewStream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Generator turns uniform draws into normal variates with the Box–Muller
// transform. A Generator is not safe for concurrent use; give each worker
// its own.
type Generator struct {
	src Source

	pairCaching bool
	spare       float64
	hasSpare    bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithPairCaching keeps the second deviate of each transform and returns it
// on the following call, halving the uniform draws per variate.
func WithPairCaching() Option {
	return func(g *Generator) { g.pairCaching = true }
}

func New(src Source, opts ...Option) *Generator {
	g := &Generator{src: src}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Normal returns one draw from N(mean, stdDev²).
func (g *Generator) Normal(mean, stdDev float64) float64 {
	return g.standard()*stdDev + mean
}

func (g *Generator) standard() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}

	// u1 = 0 would put ln(u1) at -Inf.
	u1 := g.src.Float64()
	for u1 == 0 {
		u1 = g.src.Float64()
	}
	u2 := g.src.Float64()

	r := math.Sqrt(-2.0 * math.Log(u1))
	theta := 2.0 * math.Pi * u2
	if g.pairCaching {
		g.spare = r * math.Sin(theta)
		g.hasSpare = true
	}
	return r * math.Cos(theta)
}
