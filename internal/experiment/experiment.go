package experiment

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/numkit/internal/metrics"
	"github.com/san-kum/numkit/internal/models"
	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/ode"
)

var ErrNoExact = errors.New("experiment: problem has no exact solution")

// StabilityBound is the magnitude beyond which a component counts as blown up.
const StabilityBound = 1e6

// Result is one solver run together with its metric values. Err is the
// solver error, if any; the trajectory then holds the samples computed
// before the failure.
type Result struct {
	Stepper    string
	H          float64
	Trajectory ode.SystemTrajectory
	Metrics    map[string]float64
	Elapsed    time.Duration
	Err        error
}

// Steps is the number of steps taken.
func (r *Result) Steps() int {
	if r.Trajectory.Len() == 0 {
		return 0
	}
	return r.Trajectory.Len() - 1
}

// DefaultMetrics returns the error metrics (when an exact solution exists),
// energy drift (when the problem defines an energy) and a stability check.
func DefaultMetrics(hasExact bool, energy metrics.EnergyFunc) metrics.Set {
	var set metrics.Set
	if hasExact {
		set = append(set, metrics.NewMaxAbsError(), metrics.NewFinalError(), metrics.NewRMSError())
	}
	if energy != nil {
		set = append(set, metrics.NewEnergyDrift(energy))
	}
	return append(set, metrics.NewStability(StabilityBound))
}

// Run integrates a scalar problem and evaluates ms over the trajectory. A nil
// ms selects DefaultMetrics. The trajectory is returned as a one-component
// system trajectory so scalar and system runs report alike.
func Run(name string, s ode.Stepper, p models.Problem, h float64, ms metrics.Set) *Result {
	if ms == nil {
		ms = DefaultMetrics(p.HasExact(), nil)
	}

	start := time.Now()
	traj, err := ode.Solve(s, p.X0, p.XF, p.Y0, h, p.F)
	res := &Result{Stepper: name, H: h, Elapsed: time.Since(start), Err: err}
	res.Trajectory = ode.SystemTrajectory{
		X: traj.X,
		Y: make([]numeric.Vector, len(traj.Y)),
	}
	for i, y := range traj.Y {
		res.Trajectory.Y[i] = numeric.Vector{y}
	}

	var exact func(float64) numeric.Vector
	if p.HasExact() {
		exact = func(x float64) numeric.Vector { return numeric.Vector{p.Exact(x)} }
	}
	res.Metrics = observe(ms, res.Trajectory, exact)
	return res
}

// RunSystem integrates a coupled problem and evaluates ms over the
// trajectory. A nil ms selects DefaultMetrics.
func RunSystem(name string, s ode.SystemStepper, p models.SystemProblem, h float64, ms metrics.Set) *Result {
	if ms == nil {
		ms = DefaultMetrics(p.HasExact(), p.Energy)
	}

	start := time.Now()
	traj, err := ode.SolveSystem(s, p.X0, p.XF, p.Y0, h, p.Sys)
	res := &Result{Stepper: name, H: h, Trajectory: traj, Elapsed: time.Since(start), Err: err}
	res.Metrics = observe(ms, traj, p.Exact)
	return res
}

func observe(ms metrics.Set, traj ode.SystemTrajectory, exact func(float64) numeric.Vector) map[string]float64 {
	ms.Reset()
	for i, x := range traj.X {
		var ref numeric.Vector
		if exact != nil {
			ref = exact(x)
		}
		ms.Observe(x, traj.Y[i], ref)
	}
	return ms.Values()
}

// Compare runs every named stepper on the same scalar problem.
func Compare(reg *Registry, names []string, p models.Problem, h float64) ([]*Result, error) {
	results := make([]*Result, 0, len(names))
	for _, name := range names {
		s, err := reg.GetStepper(name)
		if err != nil {
			return nil, err
		}
		results = append(results, Run(name, s, p, h, nil))
	}
	return results, nil
}

// CompareSystem runs every named system stepper on the same coupled problem.
func CompareSystem(reg *Registry, names []string, p models.SystemProblem, h float64) ([]*Result, error) {
	results := make([]*Result, 0, len(names))
	for _, name := range names {
		s, err := reg.GetSystemStepper(name)
		if err != nil {
			return nil, err
		}
		results = append(results, RunSystem(name, s, p, h, nil))
	}
	return results, nil
}

func checkStudy(h0 float64, levels int) error {
	if h0 <= 0 {
		return fmt.Errorf("%w: h0=%g", numeric.ErrInvalidStep, h0)
	}
	if levels < 1 {
		return fmt.Errorf("experiment: levels must be at least 1, got %d", levels)
	}
	return nil
}
