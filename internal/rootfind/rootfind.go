// Package rootfind locates zeros of scalar functions by bracketing and
// open iterative methods.
package rootfind

import (
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

const (
	DefaultTolerance = 1e-13
	DefaultMaxIter   = 1000
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Result reports where an iteration stopped. Estimate is the quantity the
// method compares against the tolerance. Converged is false when MaxIter ran
// out first; Root then holds the last iterate.
type Result struct {
	Root       float64
	FRoot      float64
	Iterations int
	Estimate   float64
	Converged  bool
}

// Finder holds a function, its optional derivative and stopping criteria.
// It carries no per-call state and may be shared between goroutines.
type Finder struct {
	f       Func
	df      Func
	tol     float64
	maxIter int
}

// Option configures a Finder.
type Option func(*Finder)

// WithDerivative supplies f', required by NewtonRaphson.
func WithDerivative(df Func) Option {
	return func(r *Finder) {
		r.df = df
	}
}

// WithTolerance overrides DefaultTolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(r *Finder) {
		if tol > 0 && numeric.IsFinite(tol) {
			r.tol = tol
		}
	}
}

// WithMaxIter overrides DefaultMaxIter. Non-positive values are ignored.
func WithMaxIter(n int) Option {
	return func(r *Finder) {
		if n > 0 {
			r.maxIter = n
		}
	}
}

func New(f Func, opts ...Option) *Finder {
	r := &Finder{
		f:       f,
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Finder) Tolerance() float64 { return r.tol }
func (r *Finder) MaxIter() int       { return r.maxIter }

func (r *Finder) result(x float64, iter int, est float64, ok bool) Result {
	return Result{Root: x, FRoot: r.f(x), Iterations: iter, Estimate: est, Converged: ok}
}

// Bisection halves [x0, x1], keeping the half whose endpoints still differ
// in sign. It stops when the endpoint values differ by less than the
// tolerance, when a midpoint is an exact root, or when the bracket cannot be
// split further. In the last case Converged still reflects the tolerance.
func (r *Finder) Bisection(x0, x1 float64) (Result, error) {
	if r.f == nil {
		return Result{}, numeric.ErrMissingFunc
	}

	f0, f1 := r.f(x0), r.f(x1)
	switch {
	case f0 == 0:
		return r.result(x0, 0, 0, true), nil
	case f1 == 0:
		return r.result(x1, 0, 0, true), nil
	case math.Signbit(f0) == math.Signbit(f1) || !numeric.IsFinite(f0) || !numeric.IsFinite(f1):
		return Result{}, numeric.ErrNoBracket
	}

	x2 := x0
	est := math.Abs(f0 - f1)
	for i := 1; i <= r.maxIter; i++ {
		x2 = x0 + (x1-x0)/2
		if x2 == x0 || x2 == x1 {
			return r.result(x2, i, est, est < r.tol), nil
		}

		f2 := r.f(x2)
		if f2 == 0 {
			return r.result(x2, i, 0, true), nil
		}
		if math.Signbit(f0) == math.Signbit(f2) {
			x0, f0 = x2, f2
		} else {
			x1, f1 = x2, f2
		}

		est = math.Abs(f0 - f1)
		if est < r.tol {
			return r.result(x2, i, est, true), nil
		}
	}

	return r.result(x2, r.maxIter, est, false), nil
}

// NewtonRaphson iterates x ← x − f(x)/f'(x) until successive function
// values differ by less than the tolerance.
func (r *Finder) NewtonRaphson(x0 float64) (Result, error) {
	if r.f == nil || r.df == nil {
		return Result{}, numeric.ErrMissingFunc
	}

	x := x0
	fx := r.f(x)
	est := math.Inf(1)
	for i := 1; i <= r.maxIter; i++ {
		d := r.df(x)
		if d == 0 {
			return r.result(x, i, est, false), numeric.Wrap("rootfind.NewtonRaphson", i, x, numeric.ErrZeroDerivative)
		}

		next := x - fx/d
		if !numeric.IsFinite(next) {
			return r.result(x, i, est, false), numeric.Wrap("rootfind.NewtonRaphson", i, x, numeric.ErrInvalidState)
		}
		fnext := r.f(next)

		est = math.Abs(fx - fnext)
		x, fx = next, fnext
		if est < r.tol || fx == 0 {
			return r.result(x, i, est, true), nil
		}
	}

	return r.result(x, r.maxIter, est, false), nil
}

// Secant replaces the derivative with the slope through the last two
// iterates. Convergence is measured on |f(x2)|.
func (r *Finder) Secant(x0, x1 float64) (Result, error) {
	if r.f == nil {
		return Result{}, numeric.ErrMissingFunc
	}

	f0, f1 := r.f(x0), r.f(x1)
	est := math.Abs(f1)
	for i := 1; i <= r.maxIter; i++ {
		denom := f1 - f0
		if denom == 0 {
			if f1 == 0 {
				return r.result(x1, i, 0, true), nil
			}
			return r.result(x1, i, est, false), numeric.Wrap("rootfind.Secant", i, x1, numeric.ErrDegenerate)
		}

		x2 := (x0*f1 - x1*f0) / denom
		if !numeric.IsFinite(x2) {
			return r.result(x1, i, est, false), numeric.Wrap("rootfind.Secant", i, x1, numeric.ErrInvalidState)
		}
		f2 := r.f(x2)

		est = math.Abs(f2)
		x0, f0 = x1, f1
		x1, f1 = x2, f2
		if est < r.tol {
			return r.result(x2, i, est, true), nil
		}
	}

	return r.result(x1, r.maxIter, est, false), nil
}

// FixedPoint iterates x ← f(x), so f here is the iteration function g with
// g(x*) = x*, not the function whose zero is wanted. Convergence is measured
// on |x_next − x|. A g that is not a contraction near the fixed point
// diverges; a NaN or Inf iterate is reported as numeric.ErrInvalidState.
func (r *Finder) FixedPoint(x0 float64) (Result, error) {
	if r.f == nil {
		return Result{}, numeric.ErrMissingFunc
	}

	x := x0
	est := math.Inf(1)
	for i := 1; i <= r.maxIter; i++ {
		next := r.f(x)
		if !numeric.IsFinite(next) {
			return Result{Root: x, FRoot: next, Iterations: i, Estimate: est}, numeric.Wrap("rootfind.FixedPoint", i, x, numeric.ErrInvalidState)
		}

		est = math.Abs(next - x)
		x = next
		if est < r.tol {
			return Result{Root: x, FRoot: r.f(x), Iterations: i, Estimate: est, Converged: true}, nil
		}
	}

	return Result{Root: x, FRoot: r.f(x), Iterations: r.maxIter, Estimate: est}, nil
}
