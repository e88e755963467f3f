package models

import (
	"math"

	"github.com/san-kum/numkit/internal/ode"
)

// Problem is a scalar initial-value problem y' = F(x, y), y(X0) = Y0,
// integrated up to XF.
type Problem struct {
	Name   string
	F      ode.Func
	X0, Y0 float64
	XF     float64
	// Exact is the closed-form solution, nil if none is known.
	Exact func(x float64) float64
}

func (p Problem) HasExact() bool { return p.Exact != nil }

// ExpGrowth is y' = y, y(0) = 1 on [0, 1], solved by e^x.
func ExpGrowth() Problem {
	return Problem{
		Name:  "exp",
		F:     func(_, y float64) float64 { return y },
		X0:    0,
		Y0:    1,
		XF:    1,
		Exact: math.Exp,
	}
}

// Polynomial is y' = −2x³ + 12x² − 20x + 8.5, y(0) = 1 on [0, 4].
func Polynomial() Problem {
	return Problem{
		Name: "poly",
		F: func(x, _ float64) float64 {
			return -2*x*x*x + 12*x*x - 20*x + 8.5
		},
		X0: 0,
		Y0: 1,
		XF: 4,
		Exact: func(x float64) float64 {
			return -0.5*x*x*x*x + 4*x*x*x - 10*x*x + 8.5*x + 1
		},
	}
}

// Decay is y' = −k·y with y(0) = 1 on [0, 2]. Large k makes it stiff for
// explicit steppers.
func Decay(k float64) Problem {
	return Problem{
		Name:  "decay",
		F:     func(_, y float64) float64 { return -k * y },
		X0:    0,
		Y0:    1,
		XF:    2,
		Exact: func(x float64) float64 { return math.Exp(-k * x) },
	}
}
