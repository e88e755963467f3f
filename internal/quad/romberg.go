package quad

import (
	"fmt"

	"github.com/san-kum/numkit/internal/numeric"
)

// MaxRombergLevels bounds the table height; row j evaluates f at 2^j+1
// points.
const MaxRombergLevels = 30

// Romberg returns the most extrapolated entry of a Romberg table with maxIt
// rows. Row j of column 0 is the trapezoid estimate with 2^j panels.
func Romberg(l, u float64, maxIt int, f Integrand) (float64, error) {
	table, err := RombergTable(l, u, maxIt, f)
	if err != nil {
		return 0, err
	}
	return table[0][maxIt-1], nil
}

// RombergTable returns the full triangular table. table[j][k] combines
// table[j][k-1] and table[j+1][k-1]; row j has maxIt-j entries.
func RombergTable(l, u float64, maxIt int, f Integrand) ([][]float64, error) {
	if f == nil {
		return nil, numeric.ErrMissingFunc
	}
	if maxIt <= 0 || maxIt > MaxRombergLevels {
		return nil, fmt.Errorf("%w: %d romberg levels (want 1..%d)", numeric.ErrInvalidStep, maxIt, MaxRombergLevels)
	}

	col := make([]float64, maxIt)
	for j := range col {
		col[j] = trapezoid(l, u, 1<<j, f)
	}
	return richardson(col), nil
}

// richardson builds the Romberg triangle over column-zero estimates ordered
// coarse to fine, each with half the step of the previous.
func richardson(col []float64) [][]float64 {
	n := len(col)
	table := make([][]float64, n)
	for j := range table {
		table[j] = make([]float64, n-j)
		table[j][0] = col[j]
	}

	for k := 1; k < n; k++ {
		p := float64(int64(1) << (2 * k))
		for j := 0; j+k < n; j++ {
			table[j][k] = (p*table[j+1][k-1] - table[j][k-1]) / (p - 1)
		}
	}
	return table
}
