// Package fit holds the curve-fitting collaborators used alongside the
// solvers: sample statistics, least-squares regression and interpolation.
// Statistics delegate to gonum/stat; regression normal equations are solved
// with gonum/mat.
package fit
