package experiment

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is a scripted parameter sweep, loadable from a YAML file.
type Plan struct {
	Name   string  `yaml:"name"`
	Param  string  `yaml:"param"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Points int     `yaml:"points"`
	Runs   int     `yaml:"runs"`
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	if plan.Param == "" {
		return nil, fmt.Errorf("plan %s names no parameter", path)
	}
	return &plan, nil
}

// Run executes the plan against a base configuration. Member seeds
// start at the base seed, as in Sweep.
func (p *Plan) Run(ctx context.Context, base Config) ([]Point, error) {
	return Sweep(ctx, base, p.Param, p.From, p.To, p.Points, p.Runs, base.Seed)
}
