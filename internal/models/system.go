package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/ode"
)

// SystemProblem is a coupled initial-value problem.
type SystemProblem struct {
	Name   string
	Sys    ode.System
	X0, XF float64
	Y0     []float64
	// Exact is the closed-form solution, nil if none is known.
	Exact func(x float64) numeric.Vector
	// Energy is an invariant (or dissipated) quantity of the state, nil if
	// the problem has none.
	Energy func(y numeric.Vector) float64
}

func (p SystemProblem) Dim() int       { return len(p.Y0) }
func (p SystemProblem) HasExact() bool { return p.Exact != nil }

// LinearSystem is Y' = A·Y, Y(0) = y0 on [0, xf]. Its exact solution is
// e^(A·x)·y0.
func LinearSystem(a *mat.Dense, y0 []float64, xf float64) (SystemProblem, error) {
	r, c := a.Dims()
	if r != c || r != len(y0) {
		return SystemProblem{}, fmt.Errorf("%w: %dx%d matrix, %d initial values", numeric.ErrDimensionMismatch, r, c, len(y0))
	}

	a = mat.DenseCopyOf(a)
	sys := make(ode.System, r)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, a)
		sys[i] = ode.Equation{Index: i, F: func(args ode.Args) float64 {
			sum := 0.0
			for j, aij := range row {
				sum += aij * args.Y(j)
			}
			return sum
		}}
	}

	start := mat.NewVecDense(len(y0), append([]float64(nil), y0...))
	exact := func(x float64) numeric.Vector {
		var ax, e mat.Dense
		ax.Scale(x, a)
		e.Exp(&ax)

		var y mat.VecDense
		y.MulVec(&e, start)
		return numeric.Vector(mat.Col(nil, 0, &y))
	}

	return SystemProblem{
		Name:  "linear",
		Sys:   sys,
		X0:    0,
		XF:    xf,
		Y0:    append([]float64(nil), y0...),
		Exact: exact,
	}, nil
}

// Rotation is the 2×2 system y1' = y2, y2' = −y1 starting at (1, 0), whose
// solution is (cos x, −sin x).
func Rotation() SystemProblem {
	p, _ := LinearSystem(mat.NewDense(2, 2, []float64{0, 1, -1, 0}), []float64{1, 0}, 2*math.Pi)
	p.Name = "rotation"
	p.Energy = func(y numeric.Vector) float64 { return y[0]*y[0] + y[1]*y[1] }
	return p
}
