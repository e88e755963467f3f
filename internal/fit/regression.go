package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/numkit/internal/numeric"
)

// Line is a least-squares straight line y = A0 + A1·x.
type Line struct {
	A0, A1 float64
	// R is the correlation coefficient.
	R float64
	// Syx is the standard error of the estimate; zero for two points.
	Syx float64
}

func (l Line) At(x float64) float64 { return l.A0 + l.A1*x }

func checkPairs(x, y []float64, n int) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x values, %d y values", numeric.ErrDimensionMismatch, len(x), len(y))
	}
	return need(x, n)
}

// LinearRegression fits a straight line by least squares.
func LinearRegression(x, y []float64) (Line, error) {
	if err := checkPairs(x, y, 2); err != nil {
		return Line{}, err
	}
	if stat.Variance(x, nil) == 0 {
		return Line{}, fmt.Errorf("%w: all x values equal", numeric.ErrDegenerate)
	}

	a0, a1 := stat.LinearRegression(x, y, nil, false)
	line := Line{A0: a0, A1: a1, R: stat.Correlation(x, y, nil)}

	if n := len(x); n > 2 {
		sr := 0.0
		for i := range x {
			e := y[i] - line.At(x[i])
			sr += e * e
		}
		line.Syx = math.Sqrt(sr / float64(n-2))
	}
	return line, nil
}

// solveNormal solves (ZᵀZ)·a = Zᵀy for the least-squares coefficients.
func solveNormal(z *mat.Dense, y []float64) ([]float64, error) {
	_, cols := z.Dims()

	var ata mat.Dense
	ata.Mul(z.T(), z)

	var aty mat.VecDense
	aty.MulVec(z.T(), mat.NewVecDense(len(y), y))

	var a mat.VecDense
	if err := a.SolveVec(&ata, &aty); err != nil {
		return nil, fmt.Errorf("%w: %v", numeric.ErrDegenerate, err)
	}

	out := make([]float64, cols)
	for i := range out {
		out[i] = a.AtVec(i)
	}
	return out, nil
}

// PolynomialRegression returns a0..am of y = a0 + a1·x + … + am·x^m.
func PolynomialRegression(x, y []float64, order int) ([]float64, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: order %d", numeric.ErrInvalidStep, order)
	}
	if err := checkPairs(x, y, order+1); err != nil {
		return nil, err
	}

	z := mat.NewDense(len(x), order+1, nil)
	for i, xi := range x {
		p := 1.0
		for j := 0; j <= order; j++ {
			z.Set(i, j, p)
			p *= xi
		}
	}
	return solveNormal(z, y)
}

// MultipleLinearRegression fits y = a0 + Σ a_k·xs[k]. Each xs[k] holds the
// samples of one predictor.
func MultipleLinearRegression(xs [][]float64, y []float64) ([]float64, error) {
	m := len(xs)
	if err := need(y, m+1); err != nil {
		return nil, err
	}

	z := mat.NewDense(len(y), m+1, nil)
	for i := range y {
		z.Set(i, 0, 1)
	}
	for k, col := range xs {
		if len(col) != len(y) {
			return nil, fmt.Errorf("%w: predictor %d has %d samples, want %d", numeric.ErrDimensionMismatch, k, len(col), len(y))
		}
		for i, v := range col {
			z.Set(i, k+1, v)
		}
	}
	return solveNormal(z, y)
}

// ExpMode selects the model linearised by ExponentialRegression.
type ExpMode int

const (
	// ModeExp is y = A·e^(B·x).
	ModeExp ExpMode = iota
	// ModePow is y = A·B^x.
	ModePow
)

// ExponentialRegression fits a straight line to ln(y) and maps it back to
// the model selected by mode. Every y must be positive.
func ExponentialRegression(x, y []float64, mode ExpMode) (a, b float64, err error) {
	if err := checkPairs(x, y, 2); err != nil {
		return 0, 0, err
	}

	logY := make([]float64, len(y))
	for i, v := range y {
		if v <= 0 {
			return 0, 0, fmt.Errorf("%w: y[%d] = %g is not positive", ErrDomain, i, v)
		}
		logY[i] = math.Log(v)
	}

	line, err := LinearRegression(x, logY)
	if err != nil {
		return 0, 0, err
	}

	a = math.Exp(line.A0)
	if mode == ModePow {
		return a, math.Exp(line.A1), nil
	}
	return a, line.A1, nil
}
