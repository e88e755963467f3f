package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/numkit/internal/config"
	"github.com/san-kum/numkit/internal/models"
	"github.com/san-kum/numkit/internal/ode"
)

var ErrUnknown = errors.New("experiment: unknown name")

// Registry maps names used on the command line and in config files to
// steppers and reference problems.
type Registry struct {
	steppers       map[string]func() ode.Stepper
	systemSteppers map[string]func() ode.SystemStepper
	problems       map[string]func() models.Problem
	systems        map[string]systemFactory
	systemParams   map[string]map[string]float64
	integrals      map[string]Integral
	roots          map[string]RootProblem
	optima         map[string]OptimProblem
}

// NewRegistry builds the registry. cfg supplies the coefficients behind the
// "rk2" stepper; nil means the defaults.
func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Registry{
		steppers:       make(map[string]func() ode.Stepper),
		systemSteppers: make(map[string]func() ode.SystemStepper),
		problems:       make(map[string]func() models.Problem),
		systems:        make(map[string]systemFactory),
		systemParams:   make(map[string]map[string]float64),
		integrals:      make(map[string]Integral),
		roots:          make(map[string]RootProblem),
		optima:         make(map[string]OptimProblem),
	}

	rk2 := cfg.ODE
	r.steppers["euler"] = func() ode.Stepper { return ode.NewEuler() }
	r.steppers["heun"] = func() ode.Stepper { return ode.NewHeun() }
	r.steppers["midpoint"] = func() ode.Stepper { return ode.NewMidpoint() }
	r.steppers["ralston"] = func() ode.Stepper { return ode.NewRalston() }
	r.steppers["rk2"] = func() ode.Stepper { return rk2.RK2Stepper() }
	r.steppers["rk3"] = func() ode.Stepper { return ode.NewRK3() }
	r.steppers["rk4"] = func() ode.Stepper { return ode.NewRK4() }
	r.steppers["rk5"] = func() ode.Stepper { return ode.NewRK5() }

	r.systemSteppers["euler"] = func() ode.SystemStepper { return ode.NewSystemEuler() }
	r.systemSteppers["rk4"] = func() ode.SystemStepper { return ode.NewSystemRK4() }

	r.problems["exp"] = models.ExpGrowth
	r.problems["poly"] = models.Polynomial
	r.problems["decay"] = func() models.Problem { return models.Decay(20) }

	r.systems["rotation"] = func(params map[string]float64) (models.SystemProblem, error) {
		if err := configure(nil, params); err != nil {
			return models.SystemProblem{}, err
		}
		return models.Rotation(), nil
	}
	r.systems["spring"] = func(params map[string]float64) (models.SystemProblem, error) {
		s := models.NewSpringMass()
		if err := configure(s, params); err != nil {
			return models.SystemProblem{}, err
		}
		return s.Problem(1, 10), nil
	}
	r.systems["vanderpol"] = func(params map[string]float64) (models.SystemProblem, error) {
		v := models.NewVanDerPol()
		if err := configure(v, params); err != nil {
			return models.SystemProblem{}, err
		}
		return v.Problem(20), nil
	}
	r.systemParams["spring"] = models.NewSpringMass().GetParams()
	r.systemParams["vanderpol"] = models.NewVanDerPol().GetParams()

	for _, in := range referenceIntegrals() {
		r.integrals[in.Name] = in
	}
	for _, p := range referenceRoots() {
		r.roots[p.Name] = p
	}
	for _, p := range referenceOptima() {
		r.optima[p.Name] = p
	}

	return r
}

type systemFactory func(params map[string]float64) (models.SystemProblem, error)

// configure applies params to m. A model without parameters accepts only an
// empty map.
func configure(m models.Configurable, params map[string]float64) error {
	if m == nil {
		for name := range params {
			return fmt.Errorf("%w: %s", models.ErrUnknownParam, name)
		}
		return nil
	}
	for _, name := range sortedKeys(params) {
		if err := m.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

func unknown(kind, name string, available []string) error {
	return fmt.Errorf("%w: %s %q (available: %v)", ErrUnknown, kind, name, available)
}

func (r *Registry) GetStepper(name string) (ode.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, unknown("stepper", name, r.ListSteppers())
	}
	return fn(), nil
}

func (r *Registry) GetSystemStepper(name string) (ode.SystemStepper, error) {
	fn, ok := r.systemSteppers[name]
	if !ok {
		return nil, unknown("system stepper", name, r.ListSystemSteppers())
	}
	return fn(), nil
}

func (r *Registry) GetProblem(name string) (models.Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return models.Problem{}, unknown("problem", name, r.ListProblems())
	}
	return fn(), nil
}

func (r *Registry) GetSystem(name string) (models.SystemProblem, error) {
	return r.GetSystemWithParams(name, nil)
}

// GetSystemWithParams builds the named system after overriding the model
// parameters in params.
func (r *Registry) GetSystemWithParams(name string, params map[string]float64) (models.SystemProblem, error) {
	fn, ok := r.systems[name]
	if !ok {
		return models.SystemProblem{}, unknown("system", name, r.ListSystems())
	}
	return fn(params)
}

func (r *Registry) GetIntegral(name string) (Integral, error) {
	in, ok := r.integrals[name]
	if !ok {
		return Integral{}, unknown("integral", name, r.ListIntegrals())
	}
	return in, nil
}

func (r *Registry) GetRoot(name string) (RootProblem, error) {
	p, ok := r.roots[name]
	if !ok {
		return RootProblem{}, unknown("root problem", name, r.ListRoots())
	}
	return p, nil
}

func (r *Registry) GetOptimum(name string) (OptimProblem, error) {
	p, ok := r.optima[name]
	if !ok {
		return OptimProblem{}, unknown("optimisation problem", name, r.ListOptima())
	}
	return p, nil
}

// SystemParams returns the default parameters of the named system; empty
// for systems without tunable parameters.
func (r *Registry) SystemParams(name string) (map[string]float64, error) {
	if _, ok := r.systems[name]; !ok {
		return nil, unknown("system", name, r.ListSystems())
	}
	out := make(map[string]float64, len(r.systemParams[name]))
	for k, v := range r.systemParams[name] {
		out[k] = v
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListSteppers() []string       { return sortedKeys(r.steppers) }
func (r *Registry) ListSystemSteppers() []string { return sortedKeys(r.systemSteppers) }
func (r *Registry) ListProblems() []string       { return sortedKeys(r.problems) }
func (r *Registry) ListSystems() []string        { return sortedKeys(r.systems) }
func (r *Registry) ListIntegrals() []string      { return sortedKeys(r.integrals) }
func (r *Registry) ListRoots() []string          { return sortedKeys(r.roots) }
func (r *Registry) ListOptima() []string         { return sortedKeys(r.optima) }
