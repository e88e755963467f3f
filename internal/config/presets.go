package config

import "sort"

// RK2Presets are the classical coefficient choices for ode.RK2.
var RK2Presets = map[string]RK2Config{
	"heun":     {A1: 0.5, A2: 0.5, P1: 1, Q11: 1},
	"midpoint": {A1: 0, A2: 1, P1: 0.5, Q11: 0.5},
	"ralston":  {A1: 1.0 / 3.0, A2: 2.0 / 3.0, P1: 0.75, Q11: 0.75},
}

// Presets are solver profiles trading accuracy for work.
var Presets = map[string]*Config{
	"coarse": {
		ODE:   ODEConfig{Stepper: "heun", Step: 0.25, RK2: RK2Presets["heun"]},
		Quad:  QuadConfig{Panels: 4, RombergLevels: 3, AdaptiveTol: 1e-3, MaxDepth: 20},
		Root:  RootConfig{Tolerance: 1e-6, MaxIter: 100},
		Optim: OptimConfig{Mode: "max", Es: 5, MaxIter: 20},
	},
	"default": DefaultConfig(),
	"precise": {
		ODE:   ODEConfig{Stepper: "rk5", Step: 0.01, RK2: RK2Presets["ralston"]},
		Quad:  QuadConfig{Panels: 256, RombergLevels: 8, AdaptiveTol: 1e-10, MaxDepth: 60},
		Root:  RootConfig{Tolerance: 1e-15, MaxIter: 5000},
		Optim: OptimConfig{Mode: "max", Es: 1e-6, MaxIter: 500},
	},
}

// GetPreset returns a copy of the named profile, or nil.
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

func ListRK2Presets() []string {
	names := make([]string, 0, len(RK2Presets))
	for name := range RK2Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
