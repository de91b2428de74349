package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Quadratures rotates the trajectory into the frame co-rotating at
// omega0. For free harmonic motion both outputs are constant; squeezing
// shows up as one quadrature quieting while the other heats.
//
//	X = q·cos(ω₀t) - (v/ω₀)·sin(ω₀t)
//	Y = q·sin(ω₀t) + (v/ω₀)·cos(ω₀t)
func Quadratures(q, v []float64, omega0, dt float64) (x, y []float64) {
	x = make([]float64, len(q))
	y = make([]float64, len(q))
	for i := range q {
		wt := omega0 * float64(i) * dt
		c, s := math.Cos(wt), math.Sin(wt)
		u := v[i] / omega0
		x[i] = q[i]*c - u*s
		y[i] = q[i]*s + u*c
	}
	return x, y
}

// QuadratureVariance measures the variance of both quadratures over the
// trailing fraction tail of the trajectory, where transients have died
// out. tail is clamped to (0, 1].
func QuadratureVariance(q, v []float64, omega0, dt, tail float64) (varX, varY float64) {
	if len(q) < 2 {
		return 0, 0
	}
	if tail <= 0 || tail > 1 {
		tail = 0.5
	}
	x, y := Quadratures(q, v, omega0, dt)
	from := int(float64(len(x)) * (1 - tail))
	if from >= len(x)-1 {
		from = 0
	}
	return stat.Variance(x[from:], nil), stat.Variance(y[from:], nil)
}
