package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trapsim/internal/noise"
	"github.com/san-kum/trapsim/internal/trap"
)

const (
	DefaultDt       = 1e-3
	DefaultSteps    = 125000
	DefaultGamma0   = 0.02
	DefaultOmega0   = 1.0
	DefaultNoiseAmp = 0.05
	DefaultQ        = 1.0
)

type Config struct {
	Dt      float64 `yaml:"dt"`
	Steps   int     `yaml:"steps"`
	Seed    int64   `yaml:"seed"`    // 0 derives the seed from the clock
	Scratch string  `yaml:"scratch"` // float64 or float32

	Trap  TrapConfig  `yaml:"trap"`
	Init  InitConfig  `yaml:"init_state"`
	Pulse PulseConfig `yaml:"pulse"`
}

type TrapConfig struct {
	Mass         float64 `yaml:"mass"`
	Gamma0       float64 `yaml:"gamma0"`
	Omega0       float64 `yaml:"omega0"`
	NoiseAmp     float64 `yaml:"noise_amp"`
	Alpha        float64 `yaml:"alpha"`
	Beta         float64 `yaml:"beta"`
	DoubleAmp    float64 `yaml:"double_amp"`
	DoublePhase  float64 `yaml:"double_phase"`
	SingleAmp    float64 `yaml:"single_amp"`
	SinglePhase  float64 `yaml:"single_phase"`
	DelayPeriods float64 `yaml:"delay_periods"`
}

type InitConfig struct {
	Q float64 `yaml:"q"`
	V float64 `yaml:"v"`
}

type PulseConfig struct {
	Kind   string  `yaml:"kind"`
	Depth  float64 `yaml:"depth"`
	Freq   float64 `yaml:"freq"`
	Phase  float64 `yaml:"phase"`
	Center float64 `yaml:"center"`
	Width  float64 `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:      DefaultDt,
		Steps:   DefaultSteps,
		Scratch: "float64",
		Trap: TrapConfig{
			Mass:     1.0,
			Gamma0:   DefaultGamma0,
			Omega0:   DefaultOmega0,
			NoiseAmp: DefaultNoiseAmp,
		},
		Init:  InitConfig{Q: DefaultQ},
		Pulse: PulseConfig{Kind: noise.Flat},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TrapParams maps the trap section onto solver parameters.
func (c *Config) TrapParams() trap.Params {
	return trap.Params{
		Mass:         c.Trap.Mass,
		Gamma0:       c.Trap.Gamma0,
		Omega0:       c.Trap.Omega0,
		NoiseAmp:     c.Trap.NoiseAmp,
		Alpha:        c.Trap.Alpha,
		Beta:         c.Trap.Beta,
		DoubleAmp:    c.Trap.DoubleAmp,
		DoublePhase:  c.Trap.DoublePhase,
		SingleAmp:    c.Trap.SingleAmp,
		SinglePhase:  c.Trap.SinglePhase,
		DelayPeriods: c.Trap.DelayPeriods,
	}
}

// PulseSpec maps the pulse section onto an envelope description.
func (c *Config) PulseSpec() noise.Pulse {
	return noise.Pulse{
		Kind:   c.Pulse.Kind,
		Depth:  c.Pulse.Depth,
		Freq:   c.Pulse.Freq,
		Phase:  c.Pulse.Phase,
		Center: c.Pulse.Center,
		Width:  c.Pulse.Width,
	}
}
