// Package experiment assembles full runs from their ingredients:
// parameters, noise, pulse envelope, and solver. It also fans runs out
// into ensembles and parameter sweeps.
package experiment

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/trapsim/internal/analysis"
	"github.com/san-kum/trapsim/internal/noise"
	"github.com/san-kum/trapsim/internal/sde"
	"github.com/san-kum/trapsim/internal/trap"
)

// Config describes one run end to end.
type Config struct {
	Params  trap.Params
	Pulse   noise.Pulse
	Dt      float64
	Steps   int
	Seed    int64
	Scratch sde.Scratch
	Q0, V0  float64

	// Progress, when set, receives solver progress ticks.
	Progress func(done, total int)
}

// Result is a completed run with its derived metrics.
type Result struct {
	Times []float64
	Q     []float64
	V     []float64
	DW    []float64
	Pulse []float64

	Metrics map[string]float64
	Elapsed time.Duration
}

// Run integrates a single trajectory.
func Run(cfg Config) (*Result, error) {
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("%w (steps=%d)", sde.ErrStepCount, cfg.Steps)
	}
	pulse, err := cfg.Pulse.Samples(cfg.Steps, cfg.Dt)
	if err != nil {
		return nil, err
	}
	dw := noise.Wiener(cfg.Steps, cfg.Dt, uint64(cfg.Seed))

	q := make([]float64, cfg.Steps+1)
	v := make([]float64, cfg.Steps+1)
	q[0], v[0] = cfg.Q0, cfg.V0

	solver := sde.New(
		sde.WithSeed(cfg.Seed),
		sde.WithScratch(cfg.Scratch),
		sde.WithProgress(cfg.Progress),
	)

	start := time.Now()
	if err := solver.Solve(q, v, cfg.Params, cfg.Dt, dw, pulse, 0, cfg.Steps); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	times := make([]float64, cfg.Steps+1)
	for i := range times {
		times[i] = float64(i) * cfg.Dt
	}

	res := &Result{
		Times:   times,
		Q:       q,
		V:       v,
		DW:      dw,
		Pulse:   pulse,
		Elapsed: elapsed,
	}
	res.Metrics = metrics(cfg, q, v)
	return res, nil
}

// metrics summarizes a trajectory. Variances are taken over the
// trailing half, where the initial transient has decayed; energy drift
// compares the mean energy of the last tenth against the first tenth,
// so cooling runs come out negative and heated runs positive.
func metrics(cfg Config, q, v []float64) map[string]float64 {
	tail := len(q) / 2
	varQ, varV := 0.0, 0.0
	if len(q)-tail >= 2 {
		varQ = stat.Variance(q[tail:], nil)
		varV = stat.Variance(v[tail:], nil)
	}
	varX, varY := analysis.QuadratureVariance(q, v, cfg.Params.Omega0, cfg.Dt, 0.5)

	window := len(q) / 10
	if window < 1 {
		window = 1
	}

	maxQ := 0.0
	energy := 0.0
	headE, tailE := 0.0, 0.0
	for i := range q {
		maxQ = math.Max(maxQ, math.Abs(q[i]))
		e := cfg.Params.Energy(q[i], v[i])
		energy += e
		if i < window {
			headE += e
		}
		if i >= len(q)-window {
			tailE += e
		}
	}
	energy /= float64(len(q))

	return map[string]float64{
		"var_q":        varQ,
		"var_v":        varV,
		"var_x":        varX,
		"var_y":        varY,
		"max_q":        maxQ,
		"mean_energy":  energy,
		"energy_drift": (tailE - headE) / float64(window),
	}
}
