package models

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/ode"
)

var ErrUnknownParam = errors.New("models: unknown parameter")

// Configurable is implemented by models whose parameters can be changed by
// name, for example from the command line.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultDamping   = 0.5
	DefaultMu        = 1.0
)

// SpringMass is a single damped mass on a spring.
// State: [x, v]
//
//	dx/dt = v
//	dv/dt = (−k·x − c·v)/m
type SpringMass struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	return &SpringMass{
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
	}
}

func (s *SpringMass) matrix() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-s.Stiffness / s.Mass, -s.Damping / s.Mass,
	})
}

// Problem returns the oscillator released from x0 at rest, integrated over
// [0, xf]. Being linear, it carries an exact solution.
func (s *SpringMass) Problem(x0, xf float64) SystemProblem {
	p, _ := LinearSystem(s.matrix(), []float64{x0, 0}, xf)
	p.Name = "spring"
	p.Energy = s.Energy
	return p
}

// Energy is the kinetic plus spring potential energy of state [x, v].
func (s *SpringMass) Energy(y numeric.Vector) float64 {
	x, v := y[0], y[1]
	return 0.5*s.Mass*v*v + 0.5*s.Stiffness*x*x
}

func (s *SpringMass) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *SpringMass) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return fmt.Errorf("models: mass must be positive, got %g", value)
		}
		s.Mass = value
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
//
//	dx/dt = y
//	dy/dt = μ(1 − x²)y − x
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: DefaultMu}
}

func (v *VanDerPol) System() ode.System {
	mu := v.Mu
	return ode.NewSystem(
		func(a ode.Args) float64 { return a.Y(1) },
		func(a ode.Args) float64 {
			x, y := a.Y(0), a.Y(1)
			return mu*(1-x*x)*y - x
		},
	)
}

// Problem starts on (2, 0), close to the μ = 1 limit cycle.
func (v *VanDerPol) Problem(xf float64) SystemProblem {
	return SystemProblem{
		Name: "vanderpol",
		Sys:  v.System(),
		X0:   0,
		XF:   xf,
		Y0:   []float64{2, 0},
	}
}

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.Mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	v.Mu = value
	return nil
}
