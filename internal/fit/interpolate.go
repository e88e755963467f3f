package fit

import (
	"fmt"
	"sort"

	"github.com/san-kum/numkit/internal/numeric"
)

// LinearInterpolate evaluates the chord of f between x0 and x1 at x.
func LinearInterpolate(x0, x1 float64, f func(float64) float64, x float64) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	if x0 == x1 {
		return 0, fmt.Errorf("%w: coincident nodes", numeric.ErrDegenerate)
	}
	f0 := f(x0)
	return f0 + (f(x1)-f0)/(x1-x0)*(x-x0), nil
}

// NewtonInterpolate evaluates the divided-difference polynomial through the
// first n samples at x. The second value is the change contributed by the
// highest-order term, an estimate of the interpolation error of the
// polynomial through n−1 points.
func NewtonInterpolate(xs, ys []float64, x float64, n int) (float64, float64, error) {
	if err := checkPairs(xs, ys, n); err != nil {
		return 0, 0, err
	}
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 points, got %d", numeric.ErrInsufficientData, n)
	}

	// fdd[i][j] is the j-th divided difference starting at sample i.
	fdd := make([][]float64, n)
	for i := range fdd {
		fdd[i] = make([]float64, n-i)
		fdd[i][0] = ys[i]
	}
	for j := 1; j < n; j++ {
		for i := 0; i < n-j; i++ {
			den := xs[i+j] - xs[i]
			if den == 0 {
				return 0, 0, fmt.Errorf("%w: repeated node %g", numeric.ErrDegenerate, xs[i])
			}
			fdd[i][j] = (fdd[i+1][j-1] - fdd[i][j-1]) / den
		}
	}

	term := 1.0
	value, delta := fdd[0][0], 0.0
	for k := 1; k < n; k++ {
		term *= x - xs[k-1]
		delta = fdd[0][k] * term
		value += delta
	}
	return value, delta, nil
}

// LinearSpline evaluates the piecewise-linear interpolant of ascending xs
// at x.
func LinearSpline(xs, ys []float64, x float64) (float64, error) {
	if err := checkPairs(xs, ys, 2); err != nil {
		return 0, err
	}
	last := len(xs) - 1
	if x < xs[0] || x > xs[last] {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, x, xs[0], xs[last])
	}

	i := sort.SearchFloat64s(xs, x)
	if i == 0 {
		return ys[0], nil
	}
	if xs[i-1] == xs[i] {
		return ys[i], nil
	}
	m := (ys[i] - ys[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + m*(x-xs[i-1]), nil
}
