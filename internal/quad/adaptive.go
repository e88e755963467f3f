package quad

import (
	"fmt"
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

const (
	DefaultAdaptiveTol      = 1e-6
	DefaultAdaptiveMaxDepth = 50
)

// AdaptiveOptions controls Adaptive. Zero fields fall back to the defaults.
type AdaptiveOptions struct {
	Tol      float64
	MaxDepth int
}

func DefaultAdaptiveOptions() AdaptiveOptions {
	return AdaptiveOptions{Tol: DefaultAdaptiveTol, MaxDepth: DefaultAdaptiveMaxDepth}
}

func (o AdaptiveOptions) withDefaults() AdaptiveOptions {
	if o.Tol <= 0 || !numeric.IsFinite(o.Tol) {
		o.Tol = DefaultAdaptiveTol
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultAdaptiveMaxDepth
	}
	return o
}

// Adaptive integrates f over [l, u] by recursive interval halving. On each
// interval a three-point and a five-point Simpson estimate are compared; when
// they agree within Tol the finer one is accepted with a Richardson
// correction, otherwise both halves are refined independently.
//
// If some interval still disagrees at MaxDepth its corrected estimate is used
// anyway, and the sum is returned with ErrToleranceUnreachable.
func Adaptive(l, u float64, f Integrand, opts AdaptiveOptions) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	opts = opts.withDefaults()

	q := adaptive{f: f, tol: opts.Tol, maxDepth: opts.MaxDepth}
	m := (l + u) / 2
	sum := q.step(l, u, f(l), f(m), f(u), 0)

	if q.capped > 0 {
		return sum, fmt.Errorf("%w: %d intervals at depth %d", numeric.ErrToleranceUnreachable, q.capped, opts.MaxDepth)
	}
	return sum, nil
}

type adaptive struct {
	f        Integrand
	tol      float64
	maxDepth int
	capped   int
}

func (q *adaptive) step(l, u, fl, fm, fu float64, depth int) float64 {
	m := (l + u) / 2
	fd := q.f((l + m) / 2)
	fe := q.f((m + u) / 2)

	coarse := (u - l) / 6 * (fl + 4*fm + fu)
	fine := (u - l) / 12 * (fl + 4*fd + 2*fm + 4*fe + fu)

	if math.Abs(fine-coarse) < q.tol {
		return fine + (fine-coarse)/15
	}
	if depth >= q.maxDepth {
		q.capped++
		return fine + (fine-coarse)/15
	}
	return q.step(l, m, fl, fd, fm, depth+1) + q.step(m, u, fm, fe, fu, depth+1)
}
