package models

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/ode"
)

func TestScalarProblems_ExactSatisfiesODE(t *testing.T) {
	problems := []Problem{ExpGrowth(), Polynomial(), Decay(3)}

	for _, p := range problems {
		t.Run(p.Name, func(t *testing.T) {
			if got := p.Exact(p.X0); math.Abs(got-p.Y0) > 1e-12 {
				t.Errorf("exact(x0) = %g, want y0 = %g", got, p.Y0)
			}
			// Central difference of the exact solution against F.
			const d = 1e-5
			for _, x := range []float64{0.3, 1.1, 0.9 * p.XF} {
				slope := (p.Exact(x+d) - p.Exact(x-d)) / (2 * d)
				if want := p.F(x, p.Exact(x)); math.Abs(slope-want) > 1e-5*math.Max(1, math.Abs(want)) {
					t.Errorf("x=%g: exact slope %g, F = %g", x, slope, want)
				}
			}
		})
	}
}

func TestSpringMassDerivative_Equilibrium(t *testing.T) {
	p := NewSpringMass().Problem(0, 1)
	out := make(numeric.Vector, 2)
	p.Sys.Eval(ode.Args{0, 0, 0}, out)

	if out[0] != 0 || out[1] != 0 {
		t.Errorf("derivative at equilibrium should be zero, got %v", out)
	}
}

func TestSpringMassDerivative_Displaced(t *testing.T) {
	p := NewSpringMass().Problem(1, 1)
	out := make(numeric.Vector, 2)
	p.Sys.Eval(ode.Args{0, 1, 0}, out)

	if out[0] != 0 {
		t.Errorf("velocity should be 0, got %f", out[0])
	}
	expectedAcc := -DefaultStiffness * 1.0 / DefaultMass
	if math.Abs(out[1]-expectedAcc) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expectedAcc, out[1])
	}
}

func TestSpringMassEnergy(t *testing.T) {
	sm := NewSpringMass()

	e1 := sm.Energy(numeric.Vector{1, 0})
	e2 := sm.Energy(numeric.Vector{0, math.Sqrt(DefaultStiffness / DefaultMass)})
	if math.Abs(e1-e2) > 1e-12 {
		t.Errorf("potential %g and kinetic %g should match", e1, e2)
	}
}

func TestSpringMass_DampedDecay(t *testing.T) {
	sm := NewSpringMass()
	p := sm.Problem(1, 10)

	e0 := sm.Energy(p.Exact(0))
	e1 := sm.Energy(p.Exact(10))
	if e1 >= e0 {
		t.Errorf("damped energy should decrease: %g -> %g", e0, e1)
	}
}

func TestSpringMass_Params(t *testing.T) {
	var c Configurable = NewSpringMass()

	if err := c.SetParam("stiffness", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.GetParams()["stiffness"] != 4 {
		t.Error("stiffness not applied")
	}
	if err := c.SetParam("mass", 0); err == nil {
		t.Error("expected error for zero mass")
	}
	if err := c.SetParam("colour", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestLinearSystem_RotationExact(t *testing.T) {
	p := Rotation()

	for _, x := range []float64{0, 0.5, 1, 2, math.Pi} {
		y := p.Exact(x)
		if math.Abs(y[0]-math.Cos(x)) > 1e-12 || math.Abs(y[1]+math.Sin(x)) > 1e-12 {
			t.Errorf("x=%g: got %v, want (%g, %g)", x, y, math.Cos(x), -math.Sin(x))
		}
	}
}

func TestLinearSystem_DimensionMismatch(t *testing.T) {
	_, err := LinearSystem(mat.NewDense(2, 2, nil), []float64{1, 2, 3}, 1)
	if !errors.Is(err, numeric.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestLinearSystem_CopiesInputs(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{-1, 0, 0, -2})
	y0 := []float64{1, 1}
	p, err := LinearSystem(a, y0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Set(0, 0, 100)
	y0[0] = 100

	y := p.Exact(1)
	if math.Abs(y[0]-math.Exp(-1)) > 1e-12 || math.Abs(y[1]-math.Exp(-2)) > 1e-12 {
		t.Errorf("exact solution changed with caller's inputs: %v", y)
	}
}

func TestSystemRK4_MatchesMatrixExponential(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{-0.5, 1, -1, -0.5})
	p, err := LinearSystem(a, []float64{1, 2}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errAt := func(h float64) float64 {
		traj, err := ode.SolveSystem(ode.NewSystemRK4(), p.X0, p.XF, p.Y0, h, p.Sys)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		x, y := traj.Last()
		return y.Sub(p.Exact(x)).Norm()
	}

	coarse, fine := errAt(0.1), errAt(0.05)
	if coarse > 1e-5 {
		t.Errorf("RK4 error %g too large", coarse)
	}
	if order := math.Log2(coarse / fine); math.Abs(order-4) > 0.3 {
		t.Errorf("observed order %.2f, want ~4", order)
	}
}

func TestVanDerPol(t *testing.T) {
	v := NewVanDerPol()
	out := make(numeric.Vector, 2)
	v.System().Eval(ode.Args{0, 2, 0}, out)

	if out[0] != 0 || out[1] != -2 {
		t.Errorf("derivative at (2, 0) = %v, want (0, -2)", out)
	}

	p := v.Problem(20)
	if p.HasExact() {
		t.Error("van der pol has no closed form")
	}

	traj, err := ode.SolveSystem(ode.NewSystemRK4(), p.X0, p.XF, p.Y0, 0.01, p.Sys)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	// The limit cycle amplitude for mu = 1 is close to 2.
	peak := 0.0
	for _, y := range traj.Y[len(traj.Y)/2:] {
		peak = math.Max(peak, math.Abs(y[0]))
	}
	if math.Abs(peak-2) > 0.05 {
		t.Errorf("limit cycle amplitude %g, want ~2", peak)
	}
}
