package ode

// RK2 is the generalised second-order Runge-Kutta method
//
//	k1 = f(x, y)
//	k2 = f(x + p1·h, y + q11·k1·h)
//	y += (a1·k1 + a2·k2)·h
//
// Second-order accuracy requires a1+a2 = 1 and a2·p1 = a2·q11 = 1/2.
// The constraint is not checked.
type RK2 struct {
	A1, A2, P1, Q11 float64
}

func NewRK2(a1, a2, p1, q11 float64) *RK2 {
	return &RK2{A1: a1, A2: a2, P1: p1, Q11: q11}
}

// NewRalston returns the RK2 variant with a2 = 2/3, which minimises the
// truncation error bound.
func NewRalston() *RK2 {
	return NewRK2(1.0/3.0, 2.0/3.0, 0.75, 0.75)
}

func (r *RK2) Step(f Func, x, y, h float64) float64 {
	k1 := f(x, y)
	k2 := f(x+r.P1*h, y+r.Q11*k1*h)
	return y + (r.A1*k1+r.A2*k2)*h
}

// RK3 is Kutta's classical third-order method.
type RK3 struct{}

func NewRK3() *RK3 {
	return &RK3{}
}

func (r *RK3) Step(f Func, x, y, h float64) float64 {
	k1 := f(x, y)
	k2 := f(x+h/2, y+k1*h/2)
	k3 := f(x+h, y-k1*h+2*k2*h)
	return y + (k1+4*k2+k3)*h/6
}

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f Func, x, y, h float64) float64 {
	k1 := f(x, y)
	k2 := f(x+h/2, y+k1*h/2)
	k3 := f(x+h/2, y+k2*h/2)
	k4 := f(x+h, y+k3*h)
	return y + (k1+2*k2+2*k3+k4)*h/6
}

// Butcher's six-stage fifth-order coefficients.
var (
	rk5c2 = 1.0 / 4.0
	rk5c4 = 1.0 / 2.0
	rk5c5 = 3.0 / 4.0

	rk5b21 = 1.0 / 4.0
	rk5b31 = 1.0 / 8.0
	rk5b32 = 1.0 / 8.0
	rk5b42 = -1.0 / 2.0
	rk5b43 = 1.0
	rk5b51 = 3.0 / 16.0
	rk5b54 = 9.0 / 16.0
	rk5b61 = -3.0 / 7.0
	rk5b62 = 2.0 / 7.0
	rk5b63 = 12.0 / 7.0
	rk5b64 = -12.0 / 7.0
	rk5b65 = 8.0 / 7.0
)

// RK5 is Butcher's fifth-order Runge-Kutta method.
type RK5 struct{}

func NewRK5() *RK5 {
	return &RK5{}
}

func (r *RK5) Step(f Func, x, y, h float64) float64 {
	k1 := f(x, y)
	k2 := f(x+rk5c2*h, y+rk5b21*k1*h)
	k3 := f(x+rk5c2*h, y+(rk5b31*k1+rk5b32*k2)*h)
	k4 := f(x+rk5c4*h, y+(rk5b42*k2+rk5b43*k3)*h)
	k5 := f(x+rk5c5*h, y+(rk5b51*k1+rk5b54*k4)*h)
	k6 := f(x+h, y+(rk5b61*k1+rk5b62*k2+rk5b63*k3+rk5b64*k4+rk5b65*k5)*h)
	return y + (7*k1+32*k3+12*k4+32*k5+7*k6)*h/90
}
