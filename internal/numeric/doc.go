// Package numeric holds the primitives shared by the numkit solvers.
//
// The package defines:
//
//   - [Vector]: a dense state vector used by the coupled-system steppers
//   - the error taxonomy returned by every solver (see [ErrMissingFunc] and friends)
//   - [IterationError]: wraps a failure with the iteration it happened on
//
// Solvers never log and never panic on bad numeric input; everything a
// caller needs to branch on is returned as an error that works with
// [errors.Is] and [errors.As].
package numeric
