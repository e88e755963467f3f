package ode

// Func is the right-hand side of a scalar ODE, dy/dx = f(x, y).
type Func func(x, y float64) float64

// Stepper advances a scalar state by one step of size h.
type Stepper interface {
	Step(f Func, x, y, h float64) float64
}

// Trajectory is the ordered sequence of (x, y) samples produced by Solve.
type Trajectory struct {
	X []float64
	Y []float64
}

func (t Trajectory) Len() int { return len(t.X) }

// Last returns the final sample. It panics on an empty trajectory.
func (t Trajectory) Last() (x, y float64) {
	n := len(t.X) - 1
	return t.X[n], t.Y[n]
}

func (t *Trajectory) append(x, y float64) {
	t.X = append(t.X, x)
	t.Y = append(t.Y, y)
}
