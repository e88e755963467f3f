package optim

import (
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

// goldenR is the golden-ratio fraction (√5 − 1)/2.
var goldenR = (math.Sqrt(5) - 1) / 2

// golden is the state of one golden-section search. It is a value threaded
// through the loop, never stored on a shared instance.
type golden struct {
	xl, xu float64
	x1, x2 float64
	f1, f2 float64
	d      float64
}

func (g golden) best(m Mode) (float64, float64) {
	if m.better(g.f1, g.f2) {
		return g.x1, g.f1
	}
	return g.x2, g.f2
}

// shrink discards the part of the bracket beyond the worse interior point
// and evaluates f at the one new interior point.
func (g golden) shrink(f Objective, m Mode) golden {
	g.d *= goldenR
	if m.better(g.f1, g.f2) {
		g.xl = g.x2
		g.x2, g.f2 = g.x1, g.f1
		g.x1 = g.xl + g.d
		g.f1 = f(g.x1)
	} else {
		g.xu = g.x1
		g.x1, g.f1 = g.x2, g.f2
		g.x2 = g.xu - g.d
		g.f2 = f(g.x2)
	}
	return g
}

// GoldenSection searches [xl, xu] for the extremum of a unimodal f. Each
// iteration keeps the sub-bracket holding the better interior point. The
// error estimate is (1−R)·|(xu−xl)/xopt|·100.
func GoldenSection(f Objective, xl, xu float64, opts Options) (Result, error) {
	if f == nil {
		return Result{}, numeric.ErrMissingFunc
	}
	if xl > xu {
		xl, xu = xu, xl
	}
	opts = opts.withDefaults()

	g := golden{xl: xl, xu: xu, d: goldenR * (xu - xl)}
	g.x1, g.x2 = xl+g.d, xu-g.d
	g.f1, g.f2 = f(g.x1), f(g.x2)

	res := Result{Estimate: math.Inf(1)}
	for i := 1; i <= opts.MaxIter; i++ {
		g = g.shrink(f, opts.Mode)

		xopt, fopt := g.best(opts.Mode)
		if !numeric.IsFinite(fopt) {
			return res, numeric.Wrap("optim.GoldenSection", i, xopt, numeric.ErrInvalidState)
		}

		ea, ok := opts.approxError((1-goldenR)*(g.xu-g.xl), xopt)
		res = Result{X: xopt, FX: fopt, Iterations: i, Estimate: ea, Converged: ok}
		if ok && !opts.FixedCount {
			break
		}
	}

	return res, nil
}
