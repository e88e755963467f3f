package numeric

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrMissingFunc indicates a required callback was not supplied.
	ErrMissingFunc = errors.New("numeric: required function is nil")

	// ErrNoBracket indicates the initial guesses do not bracket a sign change.
	ErrNoBracket = errors.New("numeric: guesses do not bracket a root (f(x0)*f(x1) >= 0)")

	// ErrZeroDerivative indicates a Newton-type update divided by a vanishing derivative.
	ErrZeroDerivative = errors.New("numeric: derivative vanished")

	// ErrDegenerate indicates a zero denominator in an interpolating update.
	ErrDegenerate = errors.New("numeric: degenerate update (zero denominator)")

	// ErrToleranceUnreachable indicates adaptive refinement ran out of depth.
	ErrToleranceUnreachable = errors.New("numeric: tolerance unreachable within depth limit")

	// ErrInvalidStep indicates a non-positive or non-finite step or panel count.
	ErrInvalidStep = errors.New("numeric: invalid step size")

	// ErrDimensionMismatch indicates mismatched vector lengths.
	ErrDimensionMismatch = errors.New("numeric: dimension mismatch")

	// ErrInvalidState indicates a computed state contains NaN or Inf.
	ErrInvalidState = errors.New("numeric: invalid state (NaN or Inf detected)")

	// ErrInsufficientData indicates too few samples for the requested rule or fit.
	ErrInsufficientData = errors.New("numeric: insufficient data")
)

// IterationError wraps an error with the operation and iteration it came from.
type IterationError struct {
	Op        string
	Iteration int
	X         float64
	Wrapped   error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("%s: iteration %d (x=%.6g): %v", e.Op, e.Iteration, e.X, e.Wrapped)
}

func (e *IterationError) Unwrap() error {
	return e.Wrapped
}

// Wrap returns an *IterationError, or nil when err is nil.
func Wrap(op string, iteration int, x float64, err error) error {
	if err == nil {
		return nil
	}
	return &IterationError{Op: op, Iteration: iteration, X: x, Wrapped: err}
}
