package ode

import (
	"fmt"

	"github.com/san-kum/numkit/internal/numeric"
)

// Args is the argument vector shared by every equation of a System:
// Args[0] is x and Args[1+i] is the i-th state component. Equations must
// treat it as read-only.
type Args []float64

func (a Args) X() float64 { return a[0] }

// Y returns state component i.
func (a Args) Y(i int) float64 { return a[i+1] }

// SystemFunc is the right-hand side of one equation of a coupled system.
type SystemFunc func(args Args) float64

// Equation binds a right-hand side to the state component it drives.
type Equation struct {
	Index int
	F     SystemFunc
}

// System is an ordered set of equations, one per state component.
type System []Equation

// NewSystem binds fs[i] to state component i.
func NewSystem(fs ...SystemFunc) System {
	sys := make(System, len(fs))
	for i, f := range fs {
		sys[i] = Equation{Index: i, F: f}
	}
	return sys
}

// Validate checks that the system drives each of n components exactly once.
func (s System) Validate(n int) error {
	if len(s) != n {
		return fmt.Errorf("%w: %d equations for %d state components", numeric.ErrDimensionMismatch, len(s), n)
	}
	seen := make([]bool, n)
	for _, eq := range s {
		if eq.F == nil {
			return fmt.Errorf("%w: equation for component %d", numeric.ErrMissingFunc, eq.Index)
		}
		if eq.Index < 0 || eq.Index >= n || seen[eq.Index] {
			return fmt.Errorf("%w: bad or duplicate component index %d", numeric.ErrDimensionMismatch, eq.Index)
		}
		seen[eq.Index] = true
	}
	return nil
}

// Eval evaluates every equation against one argument vector and writes the
// slopes into out. The whole vector is built before any equation runs.
func (s System) Eval(args Args, out numeric.Vector) {
	for _, eq := range s {
		out[eq.Index] = eq.F(args)
	}
}

// stageArgs fills args with [x, y + c·k].
func stageArgs(args Args, x float64, y numeric.Vector, c float64, k numeric.Vector) {
	args[0] = x
	for i := range y {
		if k == nil {
			args[i+1] = y[i]
		} else {
			args[i+1] = y[i] + c*k[i]
		}
	}
}

// SystemStepper advances a state vector by one step of size h.
type SystemStepper interface {
	Step(sys System, x float64, y numeric.Vector, h float64) numeric.Vector
}

// SystemTrajectory holds the x samples and one state vector per sample.
type SystemTrajectory struct {
	X []float64
	Y []numeric.Vector
}

func (t SystemTrajectory) Len() int { return len(t.X) }

// Last returns the final sample. It panics on an empty trajectory.
func (t SystemTrajectory) Last() (float64, numeric.Vector) {
	n := len(t.X) - 1
	return t.X[n], t.Y[n]
}

// Component returns the samples of state component i.
func (t SystemTrajectory) Component(i int) []float64 {
	out := make([]float64, len(t.Y))
	for j, y := range t.Y {
		out[j] = y[i]
	}
	return out
}

// SolveSystem integrates sys from xi to xf starting at y0 with fixed step h.
// It follows the same stepping and truncation rules as Solve; y0 is not
// modified.
func SolveSystem(s SystemStepper, xi, xf float64, y0 []float64, h float64, sys System) (SystemTrajectory, error) {
	if s == nil {
		return SystemTrajectory{}, numeric.ErrMissingFunc
	}
	if err := sys.Validate(len(y0)); err != nil {
		return SystemTrajectory{}, err
	}
	if err := validateStep(h); err != nil {
		return SystemTrajectory{}, err
	}

	n := capacity(xi, xf, h)
	traj := SystemTrajectory{
		X: make([]float64, 0, n),
		Y: make([]numeric.Vector, 0, n),
	}

	x := xi
	y := numeric.Vector(y0).Clone()
	traj.X = append(traj.X, x)
	traj.Y = append(traj.Y, y.Clone())

	for i := 1; x < xf; i++ {
		step, last := clamp(x, xf, h)
		if !last && x+step == x {
			return traj, numeric.Wrap("ode.SolveSystem", i, x, numeric.ErrInvalidStep)
		}

		y = s.Step(sys, x, y, step)
		if last {
			x = xf
		} else {
			x += step
		}

		if !y.IsValid() {
			return traj, numeric.Wrap("ode.SolveSystem", i, x, numeric.ErrInvalidState)
		}
		traj.X = append(traj.X, x)
		traj.Y = append(traj.Y, y.Clone())
	}

	return traj, nil
}

// SystemEuler applies the Euler update to every component using one
// evaluation of each equation.
type SystemEuler struct{}

func NewSystemEuler() *SystemEuler {
	return &SystemEuler{}
}

func (e *SystemEuler) Step(sys System, x float64, y numeric.Vector, h float64) numeric.Vector {
	n := len(y)
	args := make(Args, n+1)
	k := make(numeric.Vector, n)

	stageArgs(args, x, y, 0, nil)
	sys.Eval(args, k)

	return y.AddScaled(h, k)
}

// SystemRK4 is the classical fourth-order method applied to a coupled
// system. Each stage evaluates every equation against the previous stage's
// complete argument vector.
type SystemRK4 struct{}

func NewSystemRK4() *SystemRK4 {
	return &SystemRK4{}
}

func (r *SystemRK4) Step(sys System, x float64, y numeric.Vector, h float64) numeric.Vector {
	n := len(y)
	args := make(Args, n+1)
	k1 := make(numeric.Vector, n)
	k2 := make(numeric.Vector, n)
	k3 := make(numeric.Vector, n)
	k4 := make(numeric.Vector, n)

	stageArgs(args, x, y, 0, nil)
	sys.Eval(args, k1)

	stageArgs(args, x+h/2, y, h/2, k1)
	sys.Eval(args, k2)

	stageArgs(args, x+h/2, y, h/2, k2)
	sys.Eval(args, k3)

	stageArgs(args, x+h, y, h, k3)
	sys.Eval(args, k4)

	result := make(numeric.Vector, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + h6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result
}
