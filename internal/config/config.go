package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/numkit/internal/ode"
	"github.com/san-kum/numkit/internal/optim"
	"github.com/san-kum/numkit/internal/quad"
	"github.com/san-kum/numkit/internal/rootfind"
)

const (
	DefaultStep          = 0.1
	DefaultStepper       = "rk4"
	DefaultPanels        = 16
	DefaultRombergLevels = 5
	DefaultOptimES       = 1.0
	DefaultOptimMaxIter  = 100
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Problem string      `yaml:"problem"`
	ODE     ODEConfig   `yaml:"ode"`
	Quad    QuadConfig  `yaml:"quad"`
	Root    RootConfig  `yaml:"root"`
	Optim   OptimConfig `yaml:"optim"`
}

type ODEConfig struct {
	Stepper string  `yaml:"stepper"`
	Step    float64 `yaml:"step"`
	// RK2Preset names an entry of RK2Presets; when set it overrides RK2.
	RK2Preset string    `yaml:"rk2_preset,omitempty"`
	RK2       RK2Config `yaml:"rk2"`
}

// RK2Config holds the coefficients of a generic second-order Runge-Kutta
// method.
type RK2Config struct {
	A1  float64 `yaml:"a1"`
	A2  float64 `yaml:"a2"`
	P1  float64 `yaml:"p1"`
	Q11 float64 `yaml:"q11"`
}

type QuadConfig struct {
	Panels        int     `yaml:"panels"`
	RombergLevels int     `yaml:"romberg_levels"`
	AdaptiveTol   float64 `yaml:"adaptive_tol"`
	MaxDepth      int     `yaml:"max_depth"`
}

type RootConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
}

type OptimConfig struct {
	Mode       string  `yaml:"mode"`
	Es         float64 `yaml:"es"`
	MaxIter    int     `yaml:"max_iter"`
	FixedCount bool    `yaml:"fixed_count"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem: "exp",
		ODE: ODEConfig{
			Stepper: DefaultStepper,
			Step:    DefaultStep,
			RK2:     RK2Presets["heun"],
		},
		Quad: QuadConfig{
			Panels:        DefaultPanels,
			RombergLevels: DefaultRombergLevels,
			AdaptiveTol:   quad.DefaultAdaptiveTol,
			MaxDepth:      quad.DefaultAdaptiveMaxDepth,
		},
		Root: RootConfig{
			Tolerance: rootfind.DefaultTolerance,
			MaxIter:   rootfind.DefaultMaxIter,
		},
		Optim: OptimConfig{
			Mode:    optim.Max.String(),
			Es:      DefaultOptimES,
			MaxIter: DefaultOptimMaxIter,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	switch {
	case c.ODE.Step <= 0:
		return fmt.Errorf("%w: ode.step must be positive, got %g", ErrInvalid, c.ODE.Step)
	case c.Quad.Panels <= 0:
		return fmt.Errorf("%w: quad.panels must be positive, got %d", ErrInvalid, c.Quad.Panels)
	case c.Quad.RombergLevels <= 0 || c.Quad.RombergLevels > quad.MaxRombergLevels:
		return fmt.Errorf("%w: quad.romberg_levels must be in 1..%d, got %d", ErrInvalid, quad.MaxRombergLevels, c.Quad.RombergLevels)
	case c.Root.Tolerance <= 0:
		return fmt.Errorf("%w: root.tolerance must be positive, got %g", ErrInvalid, c.Root.Tolerance)
	case c.Optim.Es <= 0:
		return fmt.Errorf("%w: optim.es must be positive, got %g", ErrInvalid, c.Optim.Es)
	}
	if c.ODE.RK2Preset != "" {
		if _, ok := RK2Presets[c.ODE.RK2Preset]; !ok {
			return fmt.Errorf("%w: unknown rk2 preset %q (available: %v)", ErrInvalid, c.ODE.RK2Preset, ListRK2Presets())
		}
	}
	if _, err := optim.ParseMode(c.Optim.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// RK2Stepper returns the configured generic second-order stepper.
func (c ODEConfig) RK2Stepper() *ode.RK2 {
	k := c.RK2
	if p, ok := RK2Presets[c.RK2Preset]; ok {
		k = p
	}
	return ode.NewRK2(k.A1, k.A2, k.P1, k.Q11)
}

func (c QuadConfig) AdaptiveOptions() quad.AdaptiveOptions {
	return quad.AdaptiveOptions{Tol: c.AdaptiveTol, MaxDepth: c.MaxDepth}
}

func (c RootConfig) Options() []rootfind.Option {
	return []rootfind.Option{
		rootfind.WithTolerance(c.Tolerance),
		rootfind.WithMaxIter(c.MaxIter),
	}
}

func (c OptimConfig) Options() (optim.Options, error) {
	mode, err := optim.ParseMode(c.Mode)
	if err != nil {
		return optim.Options{}, err
	}
	opts := optim.DefaultOptions()
	opts.Mode = mode
	opts.Es = c.Es
	opts.MaxIter = c.MaxIter
	opts.FixedCount = c.FixedCount
	return opts, nil
}
