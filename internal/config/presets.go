package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"thermal": {
		Dt: 1e-3, Steps: 125000, Scratch: "float64",
		Trap: TrapConfig{Mass: 1, Gamma0: 0.02, Omega0: 1.0, NoiseAmp: 0.05},
		Init: InitConfig{Q: 1.0},
	},
	"duffing": {
		Dt: 5e-4, Steps: 200000, Scratch: "float64",
		Trap: TrapConfig{Mass: 1, Gamma0: 0.05, Omega0: 1.0, NoiseAmp: 0.08, Alpha: 0.55, Beta: 0.3},
		Init: InitConfig{Q: 1.6},
	},
	"squeezed": {
		Dt: 1e-3, Steps: 125000, Scratch: "float64",
		Trap:  TrapConfig{Mass: 1, Gamma0: 0.02, Omega0: 1.0, NoiseAmp: 0.05},
		Init:  InitConfig{Q: 0.5},
		Pulse: PulseConfig{Kind: "sine", Depth: 0.1, Freq: 1 / math.Pi}, // 2Ω₀ drive
	},
	"locked": {
		Dt: 1e-3, Steps: 125000, Scratch: "float64",
		Trap: TrapConfig{Mass: 1, Gamma0: 0.02, Omega0: 1.0, NoiseAmp: 0.05,
			DoubleAmp: 0.15, DelayPeriods: 0.25},
		Init: InitConfig{Q: 1.0},
	},
	"cooled": {
		Dt: 1e-3, Steps: 125000, Scratch: "float64",
		Trap: TrapConfig{Mass: 1, Gamma0: 0.01, Omega0: 1.0, NoiseAmp: 0.05,
			SingleAmp: 0.12, SinglePhase: math.Pi, DelayPeriods: 0.25},
		Init: InitConfig{Q: 1.2},
	},
	"kicked": {
		Dt: 1e-3, Steps: 60000, Scratch: "float64",
		Trap:  TrapConfig{Mass: 1, Gamma0: 0.03, Omega0: 1.0, NoiseAmp: 0.04},
		Init:  InitConfig{Q: 0.8},
		Pulse: PulseConfig{Kind: "gauss", Depth: 0.8, Center: 30.0, Width: 2.0},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. Callers may modify the copy freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
