package quad

import (
	"fmt"
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

// Integrand is the function being integrated.
type Integrand func(x float64) float64

func checkPanels(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d panels", numeric.ErrInvalidStep, n)
	}
	return nil
}

// Trapezoid applies the composite trapezoid rule with n equal panels.
func Trapezoid(l, u float64, n int, f Integrand) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	if err := checkPanels(n); err != nil {
		return 0, err
	}
	return trapezoid(l, u, n, f), nil
}

func trapezoid(l, u float64, n int, f Integrand) float64 {
	h := (u - l) / float64(n)
	sum := 0.0
	for i := 1; i < n; i++ {
		sum += f(l + float64(i)*h)
	}
	return (u - l) * (f(l) + 2*sum + f(u)) / float64(2*n)
}

// SimpsonOneThird applies the composite Simpson 1/3 rule. n must be even,
// except that n == 1 is accepted and evaluated as a single parabola through
// the endpoints and the midpoint.
func SimpsonOneThird(l, u float64, n int, f Integrand) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	if err := checkPanels(n); err != nil {
		return 0, err
	}
	if n == 1 {
		return (u - l) * (f(l) + 4*f((l+u)/2) + f(u)) / 6, nil
	}
	if n%2 != 0 {
		return 0, fmt.Errorf("%w: simpson 1/3 needs an even panel count, got %d", numeric.ErrInvalidStep, n)
	}

	h := (u - l) / float64(n)
	odd, even := 0.0, 0.0
	for i := 1; i < n; i++ {
		fx := f(l + float64(i)*h)
		if i%2 == 0 {
			even += fx
		} else {
			odd += fx
		}
	}
	return (u - l) * (f(l) + 4*odd + 2*even + f(u)) / float64(3*n), nil
}

// SimpsonThreeEighths fits a single cubic through four equally spaced points.
func SimpsonThreeEighths(l, u float64, f Integrand) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	w := u - l
	return w * (f(l) + 3*f(l+w/3) + 3*f(l+2*w/3) + f(u)) / 8, nil
}

var gaussNode = 1 / math.Sqrt(3)

// GaussLegendre2 is the two-point Gauss-Legendre rule on [-1, 1].
func GaussLegendre2(f Integrand) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	return f(-gaussNode) + f(gaussNode), nil
}

// GaussLegendre2On maps the two-point rule onto [l, u].
func GaussLegendre2On(l, u float64, f Integrand) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	mid, half := (u+l)/2, (u-l)/2
	return half * (f(mid-half*gaussNode) + f(mid+half*gaussNode)), nil
}

// TrapezoidUnequal sums one trapezoid per consecutive pair of abscissae.
// x must be non-decreasing.
func TrapezoidUnequal(x []float64, f Integrand) (float64, error) {
	if f == nil {
		return 0, numeric.ErrMissingFunc
	}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = f(xi)
	}
	return TrapezoidUnequalData(x, y)
}
