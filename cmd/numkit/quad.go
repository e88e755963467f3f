package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/experiment"
	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/quad"
	"github.com/san-kum/numkit/internal/viz"
)

type estimate struct {
	rule  string
	value float64
	err   error
}

func runQuad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	in, err := reg.GetIntegral(args[0])
	if err != nil {
		return err
	}
	n := cfg.Quad.Panels
	levels := cfg.Quad.RombergLevels

	var rows []estimate
	add := func(rule string, v float64, err error) {
		rows = append(rows, estimate{rule: rule, value: v, err: err})
	}

	v, err := quad.Trapezoid(in.A, in.B, n, in.F)
	add(fmt.Sprintf("trapezoid (n=%d)", n), v, err)
	// Simpson's 1/3 rule needs an even panel count.
	sn := n + n%2
	v, err = quad.SimpsonOneThird(in.A, in.B, sn, in.F)
	add(fmt.Sprintf("simpson 1/3 (n=%d)", sn), v, err)
	v, err = quad.SimpsonThreeEighths(in.A, in.B, in.F)
	add("simpson 3/8", v, err)
	v, err = quad.GaussLegendre2On(in.A, in.B, in.F)
	add("gauss-legendre 2", v, err)
	v, err = quad.Romberg(in.A, in.B, levels, in.F)
	add(fmt.Sprintf("romberg (%d levels)", levels), v, err)
	opts := cfg.Quad.AdaptiveOptions()
	v, err = quad.Adaptive(in.A, in.B, in.F, opts)
	add(fmt.Sprintf("adaptive (tol=%g)", opts.Tol), v, err)

	if fromData {
		x, y := sample(in, n)
		v, err = quad.TrapezoidData(x, y)
		add(fmt.Sprintf("trapezoid data (%d pts)", len(x)), v, err)
		if len(x)%2 == 1 {
			v, err = quad.SimpsonOneThirdData(x, y)
			add(fmt.Sprintf("simpson 1/3 data (%d pts)", len(x)), v, err)
		}
		v, used, err := quad.RombergData(x, y, levels)
		add(fmt.Sprintf("romberg data (%d rows)", used), v, err)
	}

	fmt.Printf("%s  ∫[%g, %g]  exact %.12g\n\n", heading(in.Name), in.A, in.B, in.Value)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "rule\testimate\tabs_error\tstatus")
	for _, r := range rows {
		status := viz.Good.Render("ok")
		switch {
		case errors.Is(r.err, numeric.ErrToleranceUnreachable):
			status = viz.Warn.Render("depth cap reached")
		case r.err != nil:
			fmt.Fprintf(w, "%s\t-\t-\t%s\n", r.rule, viz.Bad.Render(r.err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s\t%.12g\t%.3e\t%s\n", r.rule, r.value, math.Abs(r.value-in.Value), status)
	}
	w.Flush()

	if table {
		t, err := quad.RombergTable(in.A, in.B, levels, in.F)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", heading("romberg table"))
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, row := range t {
			cells := make([]string, len(row))
			for k, v := range row {
				cells[k] = fmt.Sprintf("%.10g", v)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		tw.Flush()
	}
	return nil
}

// sample evaluates the integrand at n+1 equally spaced points.
func sample(in experiment.Integral, n int) ([]float64, []float64) {
	x := make([]float64, n+1)
	y := make([]float64, n+1)
	for i := range x {
		x[i] = in.A + (in.B-in.A)*float64(i)/float64(n)
		y[i] = in.F(x[i])
	}
	return x, y
}
