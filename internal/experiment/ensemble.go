package experiment

import (
	"context"
	"sync"
)

// Ensemble runs independent realizations of the same configuration
// with consecutive seeds.
type Ensemble struct {
	base      Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(base Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

// Run launches one goroutine per member. Member i uses seed
// seedStart+i so the ensemble is reproducible run to run.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			cfg := e.base
			cfg.Seed = e.seedStart + int64(idx)
			cfg.Progress = nil

			results[idx], errs[idx] = Run(cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Stats pools the per-run metrics of an ensemble.
type Stats struct {
	Runs       int
	VarQ       float64
	VarV       float64
	VarX       float64
	VarY       float64
	MeanEnergy float64
}

// Aggregate averages the steady-state metrics across runs.
func Aggregate(results []*Result) Stats {
	s := Stats{Runs: len(results)}
	if len(results) == 0 {
		return s
	}
	for _, r := range results {
		s.VarQ += r.Metrics["var_q"]
		s.VarV += r.Metrics["var_v"]
		s.VarX += r.Metrics["var_x"]
		s.VarY += r.Metrics["var_y"]
		s.MeanEnergy += r.Metrics["mean_energy"]
	}
	n := float64(len(results))
	s.VarQ /= n
	s.VarV /= n
	s.VarX /= n
	s.VarY /= n
	s.MeanEnergy /= n
	return s
}
