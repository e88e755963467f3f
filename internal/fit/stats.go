package fit

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/numkit/internal/numeric"
)

var (
	// ErrOutOfRange indicates an interpolation point outside the sampled range.
	ErrOutOfRange = errors.New("fit: point outside sampled range")

	// ErrDomain indicates data outside the domain of a linearising transform.
	ErrDomain = errors.New("fit: value outside transform domain")
)

func need(values []float64, n int) error {
	if len(values) < n {
		return fmt.Errorf("%w: need at least %d values, got %d", numeric.ErrInsufficientData, n, len(values))
	}
	return nil
}

// Mean is the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if err := need(values, 1); err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// Variance is the unbiased sample variance (n−1 denominator).
func Variance(values []float64) (float64, error) {
	if err := need(values, 2); err != nil {
		return 0, err
	}
	return stat.Variance(values, nil), nil
}

func StdDev(values []float64) (float64, error) {
	if err := need(values, 2); err != nil {
		return 0, err
	}
	return stat.StdDev(values, nil), nil
}

// CoefficientOfVariation is the standard deviation as a percentage of the mean.
func CoefficientOfVariation(values []float64) (float64, error) {
	sd, err := StdDev(values)
	if err != nil {
		return 0, err
	}
	mean := stat.Mean(values, nil)
	if mean == 0 {
		return 0, fmt.Errorf("%w: zero mean", numeric.ErrDegenerate)
	}
	return sd / mean * 100, nil
}
