package ode

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/numkit/internal/numeric"
)

func growth(x, y float64) float64 { return y }

// polySlope has the closed form y = -0.5x⁴ + 4x³ - 10x² + 8.5x + 1.
func polySlope(x, _ float64) float64 {
	return -2*x*x*x + 12*x*x - 20*x + 8.5
}

func polyExact(x float64) float64 {
	return -0.5*x*x*x*x + 4*x*x*x - 10*x*x + 8.5*x + 1
}

func finalError(t *testing.T, s Stepper, h float64) float64 {
	t.Helper()
	traj, err := Solve(s, 0, 1, 1, h, growth)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	_, y := traj.Last()
	return math.Abs(y - math.E)
}

func TestConvergenceOrder(t *testing.T) {
	tests := []struct {
		name    string
		stepper Stepper
		order   float64
	}{
		{"euler", NewEuler(), 1},
		{"heun", NewHeun(), 2},
		{"midpoint", NewMidpoint(), 2},
		{"ralston", NewRalston(), 2},
		{"rk3", NewRK3(), 3},
		{"rk4", NewRK4(), 4},
		{"rk5", NewRK5(), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coarse := finalError(t, tt.stepper, 0.1)
			fine := finalError(t, tt.stepper, 0.05)
			observed := math.Log2(coarse / fine)
			if math.Abs(observed-tt.order) > 0.4 {
				t.Errorf("observed order %.3f, want ~%.0f (errors %.3e, %.3e)", observed, tt.order, coarse, fine)
			}
		})
	}
}

func TestHigherOrderIsMoreAccurate(t *testing.T) {
	steppers := []Stepper{NewEuler(), NewHeun(), NewRK3(), NewRK4(), NewRK5()}

	prev := math.Inf(1)
	for i, s := range steppers {
		e := finalError(t, s, 0.1)
		if e >= prev {
			t.Errorf("stepper %d: error %.3e not below previous %.3e", i, e, prev)
		}
		prev = e
	}
}

func TestSolve_TrajectoryInvariant(t *testing.T) {
	tests := []struct {
		xi, xf, h float64
	}{
		{0, 1, 0.1},
		{0, 1, 0.3},
		{0, 4, 0.5},
		{-2, 3.7, 0.25},
		{0, 1, 0.7},
		{0, 1, 2.0},
		{1e-3, 0.5, 1.0 / 3.0},
	}

	for _, tt := range tests {
		traj, err := Solve(NewRK4(), tt.xi, tt.xf, 1, tt.h, growth)
		if err != nil {
			t.Fatalf("(%g, %g, %g): %v", tt.xi, tt.xf, tt.h, err)
		}

		if traj.X[0] != tt.xi || traj.Y[0] != 1 {
			t.Errorf("(%g, %g, %g): first sample (%g, %g) is not the initial condition", tt.xi, tt.xf, tt.h, traj.X[0], traj.Y[0])
		}
		for i := 1; i < traj.Len(); i++ {
			if traj.X[i] <= traj.X[i-1] {
				t.Errorf("(%g, %g, %g): x not strictly increasing at %d", tt.xi, tt.xf, tt.h, i)
			}
		}
		if x, _ := traj.Last(); x != tt.xf {
			t.Errorf("(%g, %g, %g): last x = %.17g, want %g", tt.xi, tt.xf, tt.h, x, tt.xf)
		}
	}
}

func TestSolve_FinalStepTruncated(t *testing.T) {
	traj, err := Solve(NewEuler(), 0, 1, 0, 0.3, func(x, y float64) float64 { return 1 })
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	want := []float64{0, 0.3, 0.6, 0.9, 1.0}
	if traj.Len() != len(want) {
		t.Fatalf("expected %d samples, got %d: %v", len(want), traj.Len(), traj.X)
	}
	for i := range want {
		if math.Abs(traj.X[i]-want[i]) > 1e-12 {
			t.Errorf("x[%d] = %g, want %g", i, traj.X[i], want[i])
		}
		if math.Abs(traj.Y[i]-want[i]) > 1e-12 {
			t.Errorf("y[%d] = %g, want %g", i, traj.Y[i], want[i])
		}
	}
}

func TestSolve_NoSliverStep(t *testing.T) {
	traj, err := Solve(NewEuler(), 0, 1, 1, 0.1, growth)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if traj.Len() != 11 {
		t.Errorf("expected 11 samples, got %d", traj.Len())
	}
}

func TestSolve_EmptyInterval(t *testing.T) {
	for _, xf := range []float64{0, -1} {
		traj, err := Solve(NewRK4(), 0, xf, 2, 0.1, growth)
		if err != nil {
			t.Fatalf("xf=%g: %v", xf, err)
		}
		if traj.Len() != 1 || traj.Y[0] != 2 {
			t.Errorf("xf=%g: expected only the initial sample, got %v", xf, traj)
		}
	}
}

func TestSolve_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		s    Stepper
		h    float64
		f    Func
		want error
	}{
		{"zero step", NewEuler(), 0, growth, numeric.ErrInvalidStep},
		{"negative step", NewEuler(), -0.1, growth, numeric.ErrInvalidStep},
		{"nan step", NewEuler(), math.NaN(), growth, numeric.ErrInvalidStep},
		{"nil func", NewEuler(), 0.1, nil, numeric.ErrMissingFunc},
		{"nil stepper", nil, 0.1, growth, numeric.ErrMissingFunc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.s, 0, 1, 1, tt.h, tt.f)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSolve_Divergence(t *testing.T) {
	blowup := func(x, y float64) float64 { return y * y }

	traj, err := Solve(NewEuler(), 0, 10, 1, 0.5, blowup)
	if !errors.Is(err, numeric.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	var iterErr *numeric.IterationError
	if !errors.As(err, &iterErr) {
		t.Fatal("expected *IterationError")
	}
	if traj.Len() == 0 {
		t.Error("partial trajectory should be returned")
	}
}

func TestRK2_Variants(t *testing.T) {
	heun := NewRK2(0.5, 0.5, 1, 1)
	mid := NewRK2(0, 1, 0.5, 0.5)

	for x := 0.0; x < 2; x += 0.25 {
		y := 1 + x
		if got, want := heun.Step(polySlope, x, y, 0.1), NewHeun().Step(polySlope, x, y, 0.1); math.Abs(got-want) > 1e-14 {
			t.Errorf("RK2 heun coefficients: got %g, want %g", got, want)
		}
		if got, want := mid.Step(growth, x, y, 0.1), NewMidpoint().Step(growth, x, y, 0.1); math.Abs(got-want) > 1e-14 {
			t.Errorf("RK2 midpoint coefficients: got %g, want %g", got, want)
		}
	}
}

func TestPolynomialExactness(t *testing.T) {
	// When f depends on x only, RK3 and RK4 reduce to Simpson's rule and
	// RK5 to Boole's rule, so a cubic slope is integrated exactly.
	for name, s := range map[string]Stepper{"rk3": NewRK3(), "rk4": NewRK4(), "rk5": NewRK5()} {
		traj, err := Solve(s, 0, 4, 1, 0.5, polySlope)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i := range traj.X {
			if math.Abs(traj.Y[i]-polyExact(traj.X[i])) > 1e-10 {
				t.Errorf("%s: y(%g) = %.12f, want %.12f", name, traj.X[i], traj.Y[i], polyExact(traj.X[i]))
			}
		}
	}
}

func TestEuler_KnownValue(t *testing.T) {
	traj, err := Solve(NewEuler(), 0, 0.5, 1, 0.5, polySlope)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	_, y := traj.Last()
	if math.Abs(y-5.25) > 1e-12 {
		t.Errorf("expected 5.25, got %g", y)
	}
}
