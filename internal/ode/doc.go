// Package ode provides fixed-step initial-value solvers for ordinary
// differential equations.
//
// Scalar problems dy/dx = f(x, y) are advanced by a [Stepper] (Euler, Heun,
// Midpoint, the generalised second-order [RK2], and the classical [RK3],
// [RK4], [RK5] formulas) driven by [Solve]. Coupled problems are described
// as a [System] of equations sharing one argument vector [x, y1, y2, ...]
// and are advanced by a [SystemStepper] driven by [SolveSystem].
//
// # Example
//
//	f := func(x, y float64) float64 { return y }
//	traj, err := ode.Solve(ode.NewRK4(), 0, 1, 1, 0.1, f)
//	x, y := traj.Last() // y ≈ e
//
// The final step is truncated so the last abscissa equals the requested
// upper bound exactly. Steppers hold no mutable state and are safe to share
// between goroutines.
package ode
