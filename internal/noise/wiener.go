// Package noise generates the stochastic drive and the deterministic
// squeezing envelopes consumed by the solver.
package noise

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Wiener returns n independent Gaussian increments with mean zero and
// variance dt, the discrete form of a Wiener process sampled on a grid
// of spacing dt. The same seed always yields the same increments.
func Wiener(n int, dt float64, seed uint64) []float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: math.Sqrt(dt),
		Src:   rand.NewSource(seed),
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}
