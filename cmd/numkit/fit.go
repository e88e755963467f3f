package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/fit"
	"github.com/san-kum/numkit/internal/viz"
)

// readPairs reads x,y rows. Fields may be separated by commas or
// whitespace; lines starting with # are skipped.
func readPairs(r io.Reader) ([]float64, []float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var xs, ys []float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(rec) == 1 {
			rec = strings.Fields(rec[0])
		}
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("line %d: want two columns, got %d", line, len(rec))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

func runFit(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	xs, ys, err := readPairs(r)
	if err != nil {
		return err
	}
	sortPairs(xs, ys)

	fmt.Printf("%s  %d samples\n\n", heading("data"), len(xs))

	mean, err := fit.Mean(ys)
	if err != nil {
		return err
	}
	fmt.Printf("  %s %.6g\n", viz.Label.Render("mean y  "), mean)
	if sd, err := fit.StdDev(ys); err == nil {
		fmt.Printf("  %s %.6g\n", viz.Label.Render("stddev y"), sd)
	}
	if cv, err := fit.CoefficientOfVariation(ys); err == nil {
		fmt.Printf("  %s %.4g%%\n", viz.Label.Render("c.v.    "), cv)
	}

	fmt.Printf("\n%s\n", heading("least squares"))
	line, err := fit.LinearRegression(xs, ys)
	if err != nil {
		return err
	}
	fmt.Printf("  line        y = %.6g + %.6g·x   r=%.5f  s_y/x=%.5g\n", line.A0, line.A1, line.R, line.Syx)

	if coef, err := fit.PolynomialRegression(xs, ys, order); err == nil {
		terms := make([]string, len(coef))
		for i, c := range coef {
			terms[i] = fmt.Sprintf("%.6g·x^%d", c, i)
		}
		fmt.Printf("  order %d     y = %s\n", order, strings.Join(terms, " + "))
	} else {
		fmt.Printf("  order %d     %s\n", order, viz.Bad.Render(err.Error()))
	}

	if expFit {
		if a, b, err := fit.ExponentialRegression(xs, ys, fit.ModeExp); err == nil {
			fmt.Printf("  exponential y = %.6g·e^(%.6g·x)\n", a, b)
		} else {
			fmt.Printf("  exponential %s\n", viz.Bad.Render(err.Error()))
		}
		if a, b, err := fit.ExponentialRegression(xs, ys, fit.ModePow); err == nil {
			fmt.Printf("  power       y = %.6g·%.6g^x\n", a, b)
		}
	}

	if cmd.Flags().Changed("at") {
		fmt.Printf("\n%s at x=%g\n", heading("interpolation"), at)
		if v, err := fit.LinearSpline(xs, ys, at); err == nil {
			fmt.Printf("  linear spline  %.10g\n", v)
		} else {
			fmt.Printf("  linear spline  %s\n", viz.Bad.Render(err.Error()))
		}
		n := min(len(xs), order+1)
		if v, delta, err := fit.NewtonInterpolate(xs, ys, at, n); err == nil {
			fmt.Printf("  newton (%d pts) %.10g  (last term %.3e)\n", n, v, delta)
		} else {
			fmt.Printf("  newton (%d pts) %s\n", n, viz.Bad.Render(err.Error()))
		}
		fmt.Printf("  least squares  %.10g\n", line.At(at))
	}
	return nil
}

// sortPairs orders the samples by ascending x.
func sortPairs(xs, ys []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	for i, j := range idx {
		sx[i], sy[i] = xs[j], ys[j]
	}
	copy(xs, sx)
	copy(ys, sy)
}
