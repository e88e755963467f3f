package experiment

import (
	"math"

	"github.com/san-kum/numkit/internal/optim"
	"github.com/san-kum/numkit/internal/quad"
	"github.com/san-kum/numkit/internal/rootfind"
)

// Integral is a definite integral
//
//	∫_A^B F(x) dx
//
// with a known value.
type Integral struct {
	Name  string
	A, B  float64
	F     quad.Integrand
	Value float64
}

func referenceIntegrals() []Integral {
	return []Integral{
		{
			// High-curvature polynomial from the classic textbook examples.
			Name: "poly",
			A:    0,
			B:    0.8,
			F: func(x float64) float64 {
				return 0.2 + 25*x - 200*x*x + 675*x*x*x - 900*x*x*x*x + 400*x*x*x*x*x
			},
			Value: 1.640533333333333,
		},
		{Name: "sin", A: 0, B: math.Pi, F: math.Sin, Value: 2},
		{Name: "exp", A: 0, B: 1, F: math.Exp, Value: math.E - 1},
		{
			Name:  "peak",
			A:     -1,
			B:     1,
			F:     func(x float64) float64 { return 1 / (1e-2 + x*x) },
			Value: 20 * math.Atan(10),
		},
	}
}

// RootProblem is a scalar equation F(x) = 0 with its derivative, a
// bracket, a starting guess and a fixed-point form G with G(Root) = Root.
type RootProblem struct {
	Name   string
	F, DF  rootfind.Func
	G      rootfind.Func
	Lo, Hi float64
	X0     float64
	Root   float64
}

func referenceRoots() []RootProblem {
	return []RootProblem{
		{
			Name: "sqrt2",
			F:    func(x float64) float64 { return x*x - 2 },
			DF:   func(x float64) float64 { return 2 * x },
			G:    func(x float64) float64 { return (x + 2/x) / 2 },
			Lo:   1, Hi: 2, X0: 1,
			Root: math.Sqrt2,
		},
		{
			Name: "cos",
			F:    func(x float64) float64 { return math.Cos(x) - x },
			DF:   func(x float64) float64 { return -math.Sin(x) - 1 },
			G:    math.Cos,
			Lo:   0, Hi: 1, X0: 1,
			Root: 0.7390851332151607,
		},
		{
			Name: "cubic",
			F:    func(x float64) float64 { return x*x*x - x - 2 },
			DF:   func(x float64) float64 { return 3*x*x - 1 },
			G:    func(x float64) float64 { return math.Cbrt(x + 2) },
			Lo:   1, Hi: 2, X0: 1.5,
			Root: 1.5213797068045676,
		},
	}
}

// OptimProblem is an objective with its first two derivatives, a search
// bracket and the known extremum.
type OptimProblem struct {
	Name       string
	F, DF, DDF optim.Objective
	Mode       optim.Mode
	Lo, Hi     float64
	X0         float64
	X          float64
}

func referenceOptima() []OptimProblem {
	return []OptimProblem{
		{
			Name: "hill",
			F:    func(x float64) float64 { return -(x-2)*(x-2) + 5 },
			DF:   func(x float64) float64 { return -2 * (x - 2) },
			DDF:  func(float64) float64 { return -2 },
			Mode: optim.Max,
			Lo:   0, Hi: 4, X0: 1,
			X: 2,
		},
		{
			Name: "sine",
			F:    func(x float64) float64 { return 2*math.Sin(x) - x*x/10 },
			DF:   func(x float64) float64 { return 2*math.Cos(x) - x/5 },
			DDF:  func(x float64) float64 { return -2*math.Sin(x) - 0.2 },
			Mode: optim.Max,
			Lo:   0, Hi: 4, X0: 2.5,
			X: 1.4275517787645942,
		},
		{
			Name: "well",
			F:    func(x float64) float64 { return x*x*x*x - 3*x + 1 },
			DF:   func(x float64) float64 { return 4*x*x*x - 3 },
			DDF:  func(x float64) float64 { return 12 * x * x },
			Mode: optim.Min,
			Lo:   -1, Hi: 2, X0: 1,
			X: math.Cbrt(0.75),
		},
	}
}
