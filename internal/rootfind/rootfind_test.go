package rootfind

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/numkit/internal/numeric"
)

func sqrt2(x float64) float64  { return x*x - 2 }
func dsqrt2(x float64) float64 { return 2 * x }

func TestSqrt2(t *testing.T) {
	r := New(sqrt2, WithDerivative(dsqrt2))

	tests := []struct {
		name string
		run  func() (Result, error)
		tol  float64
	}{
		{"bisection", func() (Result, error) { return r.Bisection(1, 2) }, 1e-12},
		{"newton", func() (Result, error) { return r.NewtonRaphson(1) }, 1e-13},
		{"secant", func() (Result, error) { return r.Secant(1, 2) }, 1e-13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.run()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Converged {
				t.Errorf("did not converge after %d iterations", res.Iterations)
			}
			if math.Abs(res.Root-math.Sqrt2) > tt.tol {
				t.Errorf("root %.16f, want %.16f", res.Root, math.Sqrt2)
			}
			if res.Iterations < 1 {
				t.Errorf("expected at least one iteration, got %d", res.Iterations)
			}
		})
	}
}

func TestBisection_NoBracket(t *testing.T) {
	r := New(func(x float64) float64 { return x*x + 1 })

	for _, guess := range [][2]float64{{-1, 1}, {0, 5}, {-3, -2}} {
		_, err := r.Bisection(guess[0], guess[1])
		if !errors.Is(err, numeric.ErrNoBracket) {
			t.Errorf("%v: expected ErrNoBracket, got %v", guess, err)
		}
	}
}

func TestBisection_EndpointIsRoot(t *testing.T) {
	r := New(func(x float64) float64 { return x - 3 })

	res, err := r.Bisection(3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 3 || !res.Converged || res.Iterations != 0 {
		t.Errorf("expected immediate root at 3, got %+v", res)
	}
}

func TestBisection_ExactMidpoint(t *testing.T) {
	r := New(func(x float64) float64 { return x - 1 })

	res, err := r.Bisection(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != 1 || res.Iterations != 1 {
		t.Errorf("expected root 1 in one iteration, got %+v", res)
	}
}

func TestBisection_MaxIter(t *testing.T) {
	r := New(sqrt2, WithMaxIter(5))

	res, err := r.Bisection(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged {
		t.Error("five halvings cannot reach 1e-13")
	}
	if res.Iterations != 5 {
		t.Errorf("expected 5 iterations, got %d", res.Iterations)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1.0/32 {
		t.Errorf("last midpoint %g outside final bracket", res.Root)
	}
}

func TestBisection_UnsplittableBracket(t *testing.T) {
	// Neighbouring floats around √2 give values about 9e4 apart, so the
	// bracket collapses before the tolerance can be met.
	steep := func(x float64) float64 { return 1e20 * (x*x - 2) }
	r := New(steep)

	res, err := r.Bisection(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged {
		t.Errorf("converged with estimate %g above tolerance %g", res.Estimate, r.Tolerance())
	}
	if res.Estimate < r.Tolerance() {
		t.Errorf("estimate %g should stay above tolerance", res.Estimate)
	}
	if res.Iterations >= r.MaxIter() {
		t.Errorf("expected an early stop, ran %d iterations", res.Iterations)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-15 {
		t.Errorf("root %.17g, want %.17g", res.Root, math.Sqrt2)
	}
}

func TestMissingFunc(t *testing.T) {
	empty := New(nil)
	noDeriv := New(sqrt2)

	calls := map[string]func() error{
		"bisection":       func() error { _, err := empty.Bisection(1, 2); return err },
		"newton":          func() error { _, err := empty.NewtonRaphson(1); return err },
		"newton no deriv": func() error { _, err := noDeriv.NewtonRaphson(1); return err },
		"secant":          func() error { _, err := empty.Secant(1, 2); return err },
		"fixed point":     func() error { _, err := empty.FixedPoint(1); return err },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, numeric.ErrMissingFunc) {
			t.Errorf("%s: expected ErrMissingFunc, got %v", name, err)
		}
	}
}

func TestNewtonRaphson_ZeroDerivative(t *testing.T) {
	r := New(sqrt2, WithDerivative(dsqrt2))

	_, err := r.NewtonRaphson(0)
	if !errors.Is(err, numeric.ErrZeroDerivative) {
		t.Fatalf("expected ErrZeroDerivative, got %v", err)
	}

	var iterErr *numeric.IterationError
	if !errors.As(err, &iterErr) || iterErr.Iteration != 1 {
		t.Errorf("expected IterationError at iteration 1, got %v", err)
	}
}

func TestSecant_Degenerate(t *testing.T) {
	r := New(func(x float64) float64 { return 4 })

	_, err := r.Secant(0, 1)
	if !errors.Is(err, numeric.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
}

func TestFixedPoint(t *testing.T) {
	// Dottie number: the fixed point of cos.
	r := New(math.Cos)

	res, err := r.FixedPoint(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("did not converge: %+v", res)
	}
	if math.Abs(res.Root-0.7390851332151607) > 1e-12 {
		t.Errorf("got %.16f", res.Root)
	}

	babylonian := New(func(x float64) float64 { return (x + 2/x) / 2 })
	res, err = babylonian.FixedPoint(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-15 || res.Iterations > 10 {
		t.Errorf("babylonian iteration: %+v", res)
	}
}

func TestFixedPoint_Divergence(t *testing.T) {
	r := New(func(x float64) float64 { return x * x })

	res, err := r.FixedPoint(3)
	if !errors.Is(err, numeric.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if res.Converged {
		t.Error("diverged iteration reported as converged")
	}
}

func TestOptions(t *testing.T) {
	r := New(sqrt2, WithTolerance(1e-6), WithMaxIter(20))
	if r.Tolerance() != 1e-6 || r.MaxIter() != 20 {
		t.Errorf("options not applied: tol=%g maxIter=%d", r.Tolerance(), r.MaxIter())
	}

	r = New(sqrt2, WithTolerance(-1), WithMaxIter(0))
	if r.Tolerance() != DefaultTolerance || r.MaxIter() != DefaultMaxIter {
		t.Errorf("invalid options should be ignored: tol=%g maxIter=%d", r.Tolerance(), r.MaxIter())
	}

	loose := New(sqrt2, WithTolerance(1e-3))
	res, _ := loose.Bisection(1, 2)
	tight := New(sqrt2)
	res2, _ := tight.Bisection(1, 2)
	if res.Iterations >= res2.Iterations {
		t.Errorf("looser tolerance should stop earlier: %d vs %d", res.Iterations, res2.Iterations)
	}
}
