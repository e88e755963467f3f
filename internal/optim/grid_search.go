package optim

import (
	"fmt"

	"github.com/san-kum/numkit/internal/numeric"
)

// GridPoint is the best sample found by a grid scan.
type GridPoint struct {
	X, FX float64
	Index int
}

// GridSearch evaluates f at n+1 evenly spaced points of [lo, hi] and returns
// the best one under mode.
func GridSearch(f Objective, lo, hi float64, n int, mode Mode) (GridPoint, error) {
	if f == nil {
		return GridPoint{}, numeric.ErrMissingFunc
	}
	if n < 1 {
		return GridPoint{}, fmt.Errorf("%w: %d grid intervals", numeric.ErrInvalidStep, n)
	}

	h := (hi - lo) / float64(n)
	best := GridPoint{X: lo, FX: f(lo)}
	for i := 1; i <= n; i++ {
		x := lo + float64(i)*h
		if i == n {
			x = hi
		}
		fx := f(x)
		if !numeric.IsFinite(best.FX) || (numeric.IsFinite(fx) && mode.better(fx, best.FX)) {
			best = GridPoint{X: x, FX: fx, Index: i}
		}
	}
	return best, nil
}

// Bracket narrows [lo, hi] to the two grid intervals around the best grid
// sample. The result can seed GoldenSection when the objective is not
// unimodal over the full range.
func Bracket(f Objective, lo, hi float64, n int, mode Mode) (float64, float64, error) {
	if lo > hi {
		lo, hi = hi, lo
	}
	best, err := GridSearch(f, lo, hi, n, mode)
	if err != nil {
		return 0, 0, err
	}

	h := (hi - lo) / float64(n)
	a := lo + float64(best.Index-1)*h
	b := lo + float64(best.Index+1)*h
	if best.Index == 0 {
		a = lo
	}
	if best.Index >= n {
		b = hi
	}
	return a, b, nil
}
