package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/experiment"
	"github.com/san-kum/numkit/internal/optim"
	"github.com/san-kum/numkit/internal/viz"
)

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	p, err := reg.GetOptimum(args[0])
	if err != nil {
		return err
	}
	opts, err := cfg.Optim.Options()
	if err != nil {
		return err
	}
	// The problem knows whether it is a maximum unless --mode says otherwise.
	if !cmd.Flags().Changed("mode") {
		opts.Mode = p.Mode
	}

	type attempt struct {
		method string
		res    optim.Result
		err    error
	}
	var attempts []attempt

	lo, hi := p.Lo, p.Hi
	if scan > 0 {
		lo, hi, err = optim.Bracket(p.F, p.Lo, p.Hi, scan, opts.Mode)
		if err != nil {
			return err
		}
		log.Debug("bracket narrowed", slog.Float64("lo", lo), slog.Float64("hi", hi), slog.Int("grid", scan))
	}
	res, err := optim.GoldenSection(p.F, lo, hi, opts)
	attempts = append(attempts, attempt{fmt.Sprintf("golden section [%.4g, %.4g]", lo, hi), res, err})
	res, err = optim.ParabolicInterpolation(p.F, p.Lo, p.X0, p.Hi, opts)
	attempts = append(attempts, attempt{fmt.Sprintf("parabolic %g, %g, %g", p.Lo, p.X0, p.Hi), res, err})

	newtonOpts := opts
	if !cmd.Flags().Changed("fixed-count") && !cfg.Optim.FixedCount {
		newtonOpts.FixedCount = optim.DefaultNewtonOptions().FixedCount
	}
	res, err = optim.Newton(p.DF, p.DDF, p.X0, newtonOpts)
	stationary, newtonOK := res.X, err == nil
	if newtonOK {
		// Newton reports f'(x); show f(x) like the others.
		res.FX = p.F(res.X)
	}
	attempts = append(attempts, attempt{fmt.Sprintf("newton x0=%g", p.X0), res, err})

	fmt.Printf("%s  %s at x=%.12g  (es=%g%%, max_iter=%d)\n\n", heading(p.Name), opts.Mode, p.X, opts.Es, opts.MaxIter)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "method\tx\tf(x)\titerations\testimate_%\tstatus")
	for _, a := range attempts {
		if a.err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t%d\t-\t%s\n", a.method, a.res.Iterations, viz.Bad.Render(a.err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s\t%.12g\t%.12g\t%d\t%.3e\t%s\n",
			a.method, a.res.X, a.res.FX, a.res.Iterations, a.res.Estimate, viz.Status(a.res.Converged))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if newtonOK {
		kind := "minimum"
		if optim.IsMaximum(p.DDF, stationary) {
			kind = "maximum"
		}
		fmt.Printf("\nnewton's stationary point is a %s\n", kind)
	}
	return nil
}
