package optim

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/numkit/internal/numeric"
)

// ErrWrongCurvature reports a parabola whose vertex is the opposite kind of
// extremum to the one requested, for example a minimum while maximising.
var ErrWrongCurvature = fmt.Errorf("%w: parabola curves the wrong way for the mode", numeric.ErrDegenerate)

// vertex returns the abscissa of the parabola through three points and the
// denominator of the closed-form expression.
func vertex(x0, x1, x2, f0, f1, f2 float64) (float64, float64) {
	num := f0*(x1*x1-x2*x2) + f1*(x2*x2-x0*x0) + f2*(x0*x0-x1*x1)
	den := 2*f0*(x1-x2) + 2*f1*(x2-x0) + 2*f2*(x0-x1)
	if den == 0 {
		return math.NaN(), 0
	}
	return num / den, den
}

// curvature is the second divided difference of three sorted points: negative
// when the parabola through them opens downwards.
func curvature(x0, x1, x2, f0, f1, f2 float64) float64 {
	return ((f2-f1)/(x2-x1) - (f1-f0)/(x1-x0)) / (x2 - x0)
}

func (m Mode) accepts(c float64) bool {
	if m == Min {
		return c > 0
	}
	return c < 0
}

// ParabolicInterpolation fits a parabola through three guesses, moves to its
// vertex and keeps the three points that bracket the better of the vertex
// and the current middle point. The error estimate is the relative change
// between successive vertices. Collinear points on the first iteration are
// reported as numeric.ErrDegenerate; later they end the search as converged.
// A parabola whose vertex is a minimum while maximising (or the reverse)
// returns ErrWrongCurvature.
func ParabolicInterpolation(f Objective, x0, x1, x2 float64, opts Options) (Result, error) {
	if f == nil {
		return Result{}, numeric.ErrMissingFunc
	}
	opts = opts.withDefaults()

	xs := []float64{x0, x1, x2}
	sort.Float64s(xs)
	x0, x1, x2 = xs[0], xs[1], xs[2]
	if x0 == x1 || x1 == x2 {
		return Result{}, numeric.Wrap("optim.ParabolicInterpolation", 0, x1, numeric.ErrDegenerate)
	}
	f0, f1, f2 := f(x0), f(x1), f(x2)

	res := Result{X: x1, FX: f1, Estimate: math.Inf(1)}
	var prevVertex float64
	for i := 1; i <= opts.MaxIter; i++ {
		x3, den := vertex(x0, x1, x2, f0, f1, f2)
		if den == 0 {
			if i == 1 {
				return res, numeric.Wrap("optim.ParabolicInterpolation", i, x1, numeric.ErrDegenerate)
			}
			res.Converged = true
			return res, nil
		}
		if !opts.Mode.accepts(curvature(x0, x1, x2, f0, f1, f2)) {
			return res, numeric.Wrap("optim.ParabolicInterpolation", i, x3, ErrWrongCurvature)
		}
		f3 := f(x3)
		if !numeric.IsFinite(x3) || !numeric.IsFinite(f3) {
			return res, numeric.Wrap("optim.ParabolicInterpolation", i, x3, numeric.ErrInvalidState)
		}

		if x3 == x1 {
			return Result{X: x1, FX: f1, Iterations: i, Converged: true}, nil
		}

		switch {
		case x3 > x1 && opts.Mode.better(f3, f1):
			x0, f0 = x1, f1
			x1, f1 = x3, f3
		case x3 > x1:
			x2, f2 = x3, f3
		case opts.Mode.better(f3, f1):
			x2, f2 = x1, f1
			x1, f1 = x3, f3
		default:
			x0, f0 = x3, f3
		}

		res = Result{X: x1, FX: f1, Iterations: i, Estimate: math.Inf(1)}
		if i > 1 {
			res.Estimate, res.Converged = opts.approxError(x3-prevVertex, x3)
		}
		if res.Converged && opts.Mode.better(f3, res.FX) {
			res.X, res.FX = x3, f3
		}
		prevVertex = x3
		if res.Converged && !opts.FixedCount {
			break
		}
	}

	return res, nil
}
