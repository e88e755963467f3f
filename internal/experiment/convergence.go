package experiment

import (
	"math"

	"github.com/san-kum/numkit/internal/metrics"
	"github.com/san-kum/numkit/internal/models"
	"github.com/san-kum/numkit/internal/ode"
)

// Level is one row of a convergence study.
type Level struct {
	H     float64
	Steps int
	// Error is the absolute (or, for systems, Euclidean-norm) error at the end of
	// the interval.
	Error float64
	// Order is log2(e_{k−1}/e_k); NaN on the first level or when either
	// error is zero.
	Order float64
}

// ConvergenceStudy solves p with step h0, h0/2, ... for levels levels and
// reports the final error and the observed order at each level. For a
// stepper of order p the observed order tends to p as h shrinks.
func ConvergenceStudy(s ode.Stepper, p models.Problem, h0 float64, levels int) ([]Level, error) {
	if !p.HasExact() {
		return nil, ErrNoExact
	}
	return study(h0, levels, func(h float64, final metrics.Metric) (*Result, error) {
		res := Run("", s, p, h, metrics.Set{final})
		return res, res.Err
	})
}

// SystemConvergenceStudy is ConvergenceStudy for coupled problems.
func SystemConvergenceStudy(s ode.SystemStepper, p models.SystemProblem, h0 float64, levels int) ([]Level, error) {
	if !p.HasExact() {
		return nil, ErrNoExact
	}
	return study(h0, levels, func(h float64, final metrics.Metric) (*Result, error) {
		res := RunSystem("", s, p, h, metrics.Set{final})
		return res, res.Err
	})
}

func study(h0 float64, levels int, run func(h float64, final metrics.Metric) (*Result, error)) ([]Level, error) {
	if err := checkStudy(h0, levels); err != nil {
		return nil, err
	}

	final := metrics.NewFinalError()
	out := make([]Level, 0, levels)
	h := h0
	for k := 0; k < levels; k++ {
		res, err := run(h, final)
		if err != nil {
			return out, err
		}

		lvl := Level{
			H:     h,
			Steps: res.Steps(),
			Error: final.Value(),
			Order: math.NaN(),
		}
		if k > 0 {
			prev := out[k-1].Error
			if prev > 0 && lvl.Error > 0 {
				lvl.Order = math.Log2(prev / lvl.Error)
			}
		}
		out = append(out, lvl)
		h /= 2
	}
	return out, nil
}
