package sim

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// GrowthSampler produces the annual GDP growth rates a projection advances
// by. Rates are decimal fractions; rate i moves GDP from year i to year i+1.
// Every sampled rate is still routed through the recession guard before use,
// so a sampler may legitimately produce extreme draws.
type GrowthSampler interface {
	Rates(n int) []float64
}

// FixedGrowth repeats one deterministic rate
type FixedGrowth struct {
	Rate float64
}

func (f FixedGrowth) Rates(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f.Rate
	}
	return out
}

// NormalGrowth draws iid annual rates from a seeded normal distribution.
// The same seed always yields the same path.
type NormalGrowth struct {
	dist distuv.Normal
}

// NewNormalGrowth creates a sampler with the given mean, volatility, and seed
func NewNormalGrowth(mean, stddev float64, seed uint64) NormalGrowth {
	return NormalGrowth{
		dist: distuv.Normal{
			Mu:    mean,
			Sigma: stddev,
			Src:   rand.NewSource(seed),
		},
	}
}

func (g NormalGrowth) Rates(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.dist.Rand()
	}
	return out
}
