package ode

import (
	"fmt"
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

// snap is the fraction of h below which the remaining interval is folded
// into the current step instead of producing a sliver step.
const snap = 1e-9

// Solve integrates f from xi to xf starting at y(xi) = yi with fixed step h.
//
// The returned trajectory starts with (xi, yi); x is strictly increasing and
// the final x equals xf exactly. When xf <= xi only the initial sample is
// returned. If the state becomes NaN or Inf the samples computed so far are
// returned together with an error wrapping numeric.ErrInvalidState.
func Solve(s Stepper, xi, xf, yi, h float64, f Func) (Trajectory, error) {
	if s == nil || f == nil {
		return Trajectory{}, numeric.ErrMissingFunc
	}
	if err := validateStep(h); err != nil {
		return Trajectory{}, err
	}

	traj := Trajectory{
		X: make([]float64, 0, capacity(xi, xf, h)),
		Y: make([]float64, 0, capacity(xi, xf, h)),
	}
	traj.append(xi, yi)

	x, y := xi, yi
	for i := 1; x < xf; i++ {
		step, last := clamp(x, xf, h)
		if !last && x+step == x {
			return traj, numeric.Wrap("ode.Solve", i, x, numeric.ErrInvalidStep)
		}

		y = s.Step(f, x, y, step)
		if last {
			x = xf
		} else {
			x += step
		}

		if !numeric.IsFinite(y) {
			return traj, numeric.Wrap("ode.Solve", i, x, numeric.ErrInvalidState)
		}
		traj.append(x, y)
	}

	return traj, nil
}

func validateStep(h float64) error {
	if h <= 0 || !numeric.IsFinite(h) {
		return fmt.Errorf("%w: h=%g", numeric.ErrInvalidStep, h)
	}
	return nil
}

// clamp returns the step to take from x and whether it lands on xf.
func clamp(x, xf, h float64) (float64, bool) {
	remaining := xf - x
	if remaining <= h*(1+snap) {
		return remaining, true
	}
	return h, false
}

func capacity(xi, xf, h float64) int {
	if xf <= xi {
		return 1
	}
	n := math.Ceil((xf - xi) / h)
	if n > 1<<20 {
		return 1 << 20
	}
	return int(n) + 1
}
