// Package models provides reference initial-value problems.
//
// Scalar problems are described by [Problem] and coupled systems by
// [SystemProblem]. Where a closed-form solution exists it is attached as
// Exact so solvers can be checked against it:
//
//   - [ExpGrowth]: y' = y
//   - [Polynomial]: y' = −2x³ + 12x² − 20x + 8.5
//   - [LinearSystem]: Y' = A·Y, exact via the matrix exponential
//   - [SpringMass]: damped spring-mass oscillator, a linear system
//   - [VanDerPol]: nonlinear limit-cycle oscillator, no closed form
package models
