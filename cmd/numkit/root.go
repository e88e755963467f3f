package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/experiment"
	"github.com/san-kum/numkit/internal/rootfind"
	"github.com/san-kum/numkit/internal/viz"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	p, err := reg.GetRoot(args[0])
	if err != nil {
		return err
	}
	opts := cfg.Root.Options()
	finder := rootfind.New(p.F, append(opts, rootfind.WithDerivative(p.DF))...)
	fixed := rootfind.New(p.G, opts...)

	type attempt struct {
		method string
		res    rootfind.Result
		err    error
	}
	var attempts []attempt
	res, err := finder.Bisection(p.Lo, p.Hi)
	attempts = append(attempts, attempt{fmt.Sprintf("bisection [%g, %g]", p.Lo, p.Hi), res, err})
	res, err = finder.NewtonRaphson(p.X0)
	attempts = append(attempts, attempt{fmt.Sprintf("newton-raphson x0=%g", p.X0), res, err})
	res, err = finder.Secant(p.Lo, p.Hi)
	attempts = append(attempts, attempt{fmt.Sprintf("secant %g, %g", p.Lo, p.Hi), res, err})
	res, err = fixed.FixedPoint(p.X0)
	attempts = append(attempts, attempt{fmt.Sprintf("fixed point x0=%g", p.X0), res, err})

	fmt.Printf("%s  root %.15g  (tol=%g, max_iter=%d)\n\n", heading(p.Name), p.Root, finder.Tolerance(), finder.MaxIter())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "method\troot\tf(root)\titerations\testimate\tstatus")
	for _, a := range attempts {
		if a.err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t%d\t-\t%s\n", a.method, a.res.Iterations, viz.Bad.Render(a.err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s\t%.15g\t%.3e\t%d\t%.3e\t%s\n",
			a.method, a.res.Root, a.res.FRoot, a.res.Iterations, a.res.Estimate, viz.Status(a.res.Converged))
	}
	return w.Flush()
}
