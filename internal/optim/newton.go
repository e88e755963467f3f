package optim

import (
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

// Newton applies x ← x − df(x)/ddf(x). With opts.FixedCount it runs exactly
// MaxIter updates; otherwise it stops once the relative change drops below
// Es. Use DefaultNewtonOptions for the fixed-count behaviour.
func Newton(df, ddf Objective, x0 float64, opts Options) (Result, error) {
	if df == nil || ddf == nil {
		return Result{}, numeric.ErrMissingFunc
	}
	opts = opts.withDefaults()

	x := x0
	res := Result{X: x, FX: df(x), Estimate: math.Inf(1)}
	for i := 1; i <= opts.MaxIter; i++ {
		curv := ddf(x)
		if curv == 0 {
			return res, numeric.Wrap("optim.Newton", i, x, numeric.ErrZeroDerivative)
		}

		next := x - df(x)/curv
		if !numeric.IsFinite(next) {
			return res, numeric.Wrap("optim.Newton", i, x, numeric.ErrInvalidState)
		}

		ea, ok := opts.approxError(next-x, next)
		x = next
		res = Result{X: x, FX: df(x), Iterations: i, Estimate: ea, Converged: ok}
		if ok && !opts.FixedCount {
			break
		}
	}

	return res, nil
}

// IsMaximum reports whether a stationary point found by Newton is a maximum.
func IsMaximum(ddf Objective, x float64) bool {
	return ddf(x) < 0
}
