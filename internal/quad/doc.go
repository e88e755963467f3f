// Package quad approximates definite integrals.
//
// Callback-driven rules evaluate an Integrand at the nodes they need:
// composite trapezoid and Simpson rules, Romberg extrapolation, adaptive
// Simpson quadrature and two-point Gauss-Legendre. The *Data variants apply
// the same combination formulas to caller-supplied samples.
//
// All routines are pure functions; nothing is cached between calls.
package quad
