package ode

// Euler is the explicit first-order method y += f(x, y)·h.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f Func, x, y, h float64) float64 {
	return y + f(x, y)*h
}

// Heun is the predictor-corrector method: an Euler predictor followed by a
// trapezoidal corrector.
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (he *Heun) Step(f Func, x, y, h float64) float64 {
	k1 := f(x, y)
	predictor := y + k1*h
	k2 := f(x+h, predictor)
	return y + (k1+k2)/2*h
}

// Midpoint uses the slope at the Euler-predicted half step for the full step.
type Midpoint struct{}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Step(f Func, x, y, h float64) float64 {
	yHalf := y + f(x, y)*h/2
	return y + f(x+h/2, yHalf)*h
}
