package experiment

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Point holds the pooled ensemble statistics at one parameter value.
type Point struct {
	Value float64
	Stats Stats
}

// Sweep scans a named trap parameter over [from, to] on a uniform grid
// and runs an ensemble at every grid point. The same seed block is
// reused at each point so that points differ only by the parameter.
func Sweep(ctx context.Context, base Config, param string, from, to float64, points, runs int, seedStart int64) ([]Point, error) {
	if points < 1 {
		return nil, fmt.Errorf("experiment: sweep needs at least one point (got %d)", points)
	}
	if runs < 1 {
		return nil, fmt.Errorf("experiment: sweep needs at least one run per point (got %d)", runs)
	}

	values := make([]float64, points)
	if points == 1 {
		values[0] = from
	} else {
		floats.Span(values, from, to)
	}

	out := make([]Point, 0, points)
	for _, val := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg := base
		if err := cfg.Params.Set(param, val); err != nil {
			return nil, err
		}

		results, err := NewEnsemble(cfg, runs, seedStart).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("experiment: %s=%v: %w", param, val, err)
		}
		out = append(out, Point{Value: val, Stats: Aggregate(results)})
	}
	return out, nil
}
