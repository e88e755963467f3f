// Package optim finds extrema of scalar functions of one variable.
package optim

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownMode = errors.New("optim: unknown mode")

// Objective is the function being maximised or minimised.
type Objective func(x float64) float64

// Mode selects whether larger or smaller objective values are better.
type Mode int

const (
	Max Mode = iota
	Min
)

func (m Mode) String() string {
	switch m {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "max" or "min" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize", "maximise":
		return Max, nil
	case "min", "minimize", "minimise":
		return Min, nil
	}
	return Max, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// better reports whether fa is preferable to fb.
func (m Mode) better(fa, fb float64) bool {
	if m == Min {
		return fa < fb
	}
	return fa > fb
}

// Options controls termination.
//
// Es is the approximate relative error, in percent, below which an iteration
// is considered converged. When the current estimate is exactly zero the
// absolute change is compared against Tol instead. With FixedCount set the
// methods always run MaxIter iterations and Converged only reports whether
// the final estimate met the tolerance.
type Options struct {
	Mode       Mode
	MaxIter    int
	Es         float64
	Tol        float64
	FixedCount bool
}

func DefaultOptions() Options {
	return Options{
		Mode:    Max,
		MaxIter: 100,
		Es:      1,
		Tol:     1e-10,
	}
}

// DefaultNewtonOptions runs a fixed number of Newton updates with no
// convergence check.
func DefaultNewtonOptions() Options {
	o := DefaultOptions()
	o.FixedCount = true
	return o
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	if o.Es <= 0 {
		o.Es = d.Es
	}
	if o.Tol <= 0 {
		o.Tol = d.Tol
	}
	return o
}

// approxError returns the percent error of a change delta relative to x,
// and whether it is within tolerance.
func (o Options) approxError(delta, x float64) (float64, bool) {
	if x == 0 {
		e := math.Abs(delta)
		return e, e < o.Tol
	}
	e := math.Abs(delta/x) * 100
	return e, e < o.Es
}

// Result reports the located extremum. For Newton, FX is the first
// derivative at X.
type Result struct {
	X          float64
	FX         float64
	Iterations int
	Estimate   float64
	Converged  bool
}
