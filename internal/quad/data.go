package quad

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/san-kum/numkit/internal/numeric"
)

// spacingTol is the relative deviation tolerated between sample spacings.
const spacingTol = 1e-9

func checkSamples(x, y []float64, need int) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x samples, %d y samples", numeric.ErrDimensionMismatch, len(x), len(y))
	}
	if len(x) < need {
		return fmt.Errorf("%w: need at least %d samples, got %d", numeric.ErrInsufficientData, need, len(x))
	}
	return nil
}

// uniformStep returns the common spacing of x, which must be strictly
// increasing and equally spaced.
func uniformStep(x []float64) (float64, error) {
	n := len(x) - 1
	h := (x[n] - x[0]) / float64(n)
	if !(h > 0) {
		return 0, fmt.Errorf("%w: samples must be strictly increasing", numeric.ErrInvalidStep)
	}
	for i := 1; i <= n; i++ {
		if math.Abs((x[i]-x[i-1])-h) > spacingTol*math.Max(1, math.Abs(h))*float64(n) {
			return 0, fmt.Errorf("%w: unequal spacing at sample %d", numeric.ErrInvalidStep, i)
		}
	}
	return h, nil
}

// TrapezoidData applies the composite trapezoid rule to equally spaced samples.
func TrapezoidData(x, y []float64) (float64, error) {
	if err := checkSamples(x, y, 2); err != nil {
		return 0, err
	}
	if _, err := uniformStep(x); err != nil {
		return 0, err
	}
	return trapezoidStride(x, y, 1), nil
}

// trapezoidStride applies the trapezoid rule to every stride-th sample.
// len(x)-1 must be a multiple of stride.
func trapezoidStride(x, y []float64, stride int) float64 {
	last := len(x) - 1
	panels := last / stride
	sum := 0.0
	for i := stride; i < last; i += stride {
		sum += y[i]
	}
	return (x[last] - x[0]) * (y[0] + 2*sum + y[last]) / float64(2*panels)
}

// TrapezoidUnequalData sums one trapezoid per consecutive sample pair; the
// spacing may vary. x must be non-decreasing.
func TrapezoidUnequalData(x, y []float64) (float64, error) {
	if err := checkSamples(x, y, 2); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 1; i < len(x); i++ {
		w := x[i] - x[i-1]
		if w < 0 {
			return 0, fmt.Errorf("%w: x decreases at sample %d", numeric.ErrInvalidStep, i)
		}
		sum += w * (y[i] + y[i-1]) / 2
	}
	return sum, nil
}

// SimpsonOneThirdData applies the composite Simpson 1/3 rule to an odd
// number (at least three) of equally spaced samples.
func SimpsonOneThirdData(x, y []float64) (float64, error) {
	if err := checkSamples(x, y, 3); err != nil {
		return 0, err
	}
	n := len(x) - 1
	if n%2 != 0 {
		return 0, fmt.Errorf("%w: simpson 1/3 needs an odd sample count, got %d", numeric.ErrInsufficientData, len(x))
	}
	if _, err := uniformStep(x); err != nil {
		return 0, err
	}

	odd, even := 0.0, 0.0
	for i := 1; i < n; i++ {
		if i%2 == 0 {
			even += y[i]
		} else {
			odd += y[i]
		}
	}
	return (x[n] - x[0]) * (y[0] + 4*odd + 2*even + y[n]) / float64(3*n), nil
}

// RombergData runs Romberg extrapolation over equally spaced samples. The
// finest row uses every sample and each coarser row every second sample of
// the row below, so the table has at most 1 + (number of times len(x)-1 is
// divisible by two) rows; maxIt caps it further. It returns the top corner
// and the number of rows used.
func RombergData(x, y []float64, maxIt int) (float64, int, error) {
	if err := checkSamples(x, y, 2); err != nil {
		return 0, 0, err
	}
	if maxIt <= 0 {
		return 0, 0, fmt.Errorf("%w: %d romberg levels", numeric.ErrInvalidStep, maxIt)
	}
	if _, err := uniformStep(x); err != nil {
		return 0, 0, err
	}

	rows := bits.TrailingZeros(uint(len(x)-1)) + 1
	if maxIt < rows {
		rows = maxIt
	}

	col := make([]float64, rows)
	for j := range col {
		col[j] = trapezoidStride(x, y, 1<<(rows-1-j))
	}
	table := richardson(col)
	return table[0][rows-1], rows, nil
}
