package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/experiment"
	"github.com/san-kum/numkit/internal/models"
	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/store"
	"github.com/san-kum/numkit/internal/viz"
)

// problem is either a scalar or a coupled initial-value problem.
type problem struct {
	scalar *models.Problem
	system *models.SystemProblem
}

func (p problem) name() string {
	if p.scalar != nil {
		return p.scalar.Name
	}
	return p.system.Name
}

func (p problem) interval() (float64, float64) {
	if p.scalar != nil {
		return p.scalar.X0, p.scalar.XF
	}
	return p.system.X0, p.system.XF
}

func lookupProblem(cmd *cobra.Command, reg *experiment.Registry, name string) (problem, error) {
	ps, err := parseParams(params)
	if err != nil {
		return problem{}, err
	}

	var p problem
	if sp, err := reg.GetProblem(name); err == nil {
		if len(ps) > 0 {
			return problem{}, fmt.Errorf("%w: %s takes no parameters", models.ErrUnknownParam, name)
		}
		p.scalar = &sp
	} else {
		sys, err := reg.GetSystemWithParams(name, ps)
		if errors.Is(err, experiment.ErrUnknown) {
			return problem{}, fmt.Errorf("%w: problem %q (scalar: %v, systems: %v)",
				experiment.ErrUnknown, name, reg.ListProblems(), reg.ListSystems())
		}
		if err != nil {
			return problem{}, err
		}
		p.system = &sys
	}

	if cmd.Flags().Changed("to") {
		if p.scalar != nil {
			p.scalar.XF = to
		} else {
			p.system.XF = to
		}
	}
	return p, nil
}

func run(reg *experiment.Registry, p problem, name string, h float64) (*experiment.Result, error) {
	if p.scalar != nil {
		s, err := reg.GetStepper(name)
		if err != nil {
			return nil, err
		}
		return experiment.Run(name, s, *p.scalar, h, nil), nil
	}
	s, err := reg.GetSystemStepper(name)
	if err != nil {
		return nil, err
	}
	return experiment.RunSystem(name, s, *p.system, h, nil), nil
}

func (p problem) exact(x float64) numeric.Vector {
	switch {
	case p.scalar != nil && p.scalar.HasExact():
		return numeric.Vector{p.scalar.Exact(x)}
	case p.system != nil && p.system.HasExact():
		return p.system.Exact(x)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	p, err := lookupProblem(cmd, reg, args[0])
	if err != nil {
		return err
	}
	res, err := run(reg, p, cfg.ODE.Stepper, cfg.ODE.Step)
	if err != nil {
		return err
	}
	log.Debug("solved", slog.String("problem", p.name()), slog.String("stepper", res.Stepper),
		slog.Int("steps", res.Steps()), slog.Duration("elapsed", res.Elapsed))

	xi, xf := p.interval()
	fmt.Printf("%s with %s (h=%g, x in [%g, %g])\n\n", heading(p.name()), res.Stepper, res.H, xi, xf)

	traj := res.Trajectory
	stride := every
	if stride <= 0 {
		stride = max(traj.Len()/10, 1)
	}
	hasExact := p.exact(xi) != nil

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	cols := []string{"x"}
	dim := 1
	if traj.Len() > 0 {
		dim = len(traj.Y[0])
	}
	for i := 1; i <= dim; i++ {
		cols = append(cols, fmt.Sprintf("y%d", i))
	}
	if hasExact {
		cols = append(cols, "exact_y1", "error")
	}
	fmt.Fprintln(w, strings.Join(cols, "\t")+"\t")

	for i := 0; i < traj.Len(); i++ {
		if i%stride != 0 && i != traj.Len()-1 {
			continue
		}
		row := []string{fmt.Sprintf("%.6g", traj.X[i])}
		for _, v := range traj.Y[i] {
			row = append(row, fmt.Sprintf("%.10g", v))
		}
		if hasExact {
			ref := p.exact(traj.X[i])
			row = append(row, fmt.Sprintf("%.10g", ref[0]), fmt.Sprintf("%.3e", maxDiff(traj.Y[i], ref)))
		}
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}
	w.Flush()

	fmt.Println()
	printMetrics(res.Metrics)

	if plot {
		series := make([][]float64, 0, dim+1)
		for i := 0; i < dim; i++ {
			series = append(series, traj.Component(i))
		}
		if hasExact && dim == 1 {
			ref := make([]float64, traj.Len())
			for i, x := range traj.X {
				ref[i] = p.exact(x)[0]
			}
			series = append(series, ref)
		}
		fmt.Println()
		fmt.Println(viz.PlotMany(series, fmt.Sprintf("%s: y against step index", p.name())))
	}

	if exportFile != "" {
		if err := store.Save(exportFile, store.NewRecord(p.name(), res)); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info("exported run", slog.String("file", exportFile))
	}

	if res.Err != nil {
		return fmt.Errorf("%s stopped after %d steps: %w", res.Stepper, res.Steps(), res.Err)
	}
	return nil
}

func maxDiff(a, b numeric.Vector) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %s %s\n", viz.Label.Render(fmt.Sprintf("%-14s", name)), viz.Value.Render(fmt.Sprintf("%.4e", values[name])))
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	p, err := lookupProblem(cmd, reg, args[0])
	if err != nil {
		return err
	}
	h := cfg.ODE.Step

	fmt.Printf("comparing steppers on %s (h=%g)\n\n", heading(p.name()), h)

	var results []*experiment.Result
	metricSet := map[string]bool{}
	for _, name := range args[1:] {
		res, err := run(reg, p, name, h)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}
		results = append(results, res)
		for m := range res.Metrics {
			metricSet[m] = true
		}
	}
	if len(results) == 0 {
		return errors.New("no stepper ran")
	}

	metricNames := make([]string, 0, len(metricSet))
	for m := range metricSet {
		metricNames = append(metricNames, m)
	}
	sort.Strings(metricNames)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "stepper\tsteps\t%s\ttime_ms\tstatus\n", strings.Join(metricNames, "\t"))
	for _, res := range results {
		row := []string{res.Stepper, fmt.Sprint(res.Steps())}
		for _, m := range metricNames {
			if v, ok := res.Metrics[m]; ok {
				row = append(row, fmt.Sprintf("%.3e", v))
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, fmt.Sprintf("%.3f", float64(res.Elapsed.Microseconds())/1000))
		if res.Err != nil {
			row = append(row, viz.Bad.Render(res.Err.Error()))
		} else {
			row = append(row, viz.Good.Render("ok"))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	if plot {
		series := make([][]float64, len(results))
		for i, res := range results {
			series[i] = res.Trajectory.Component(0)
		}
		fmt.Println()
		fmt.Println(viz.PlotMany(series, "y1 per stepper, in argument order"))
	}
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	p, err := lookupProblem(cmd, reg, args[0])
	if err != nil {
		return err
	}
	name := args[1]
	h0 := cfg.ODE.Step

	var study []experiment.Level
	if p.scalar != nil {
		s, lookupErr := reg.GetStepper(name)
		if lookupErr != nil {
			return lookupErr
		}
		study, err = experiment.ConvergenceStudy(s, *p.scalar, h0, levels)
	} else {
		s, lookupErr := reg.GetSystemStepper(name)
		if lookupErr != nil {
			return lookupErr
		}
		study, err = experiment.SystemConvergenceStudy(s, *p.system, h0, levels)
	}
	if err != nil && len(study) == 0 {
		return err
	}

	fmt.Printf("convergence of %s on %s\n\n", name, heading(p.name()))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "h\tsteps\terror\torder")
	errs := make([]float64, len(study))
	for i, lvl := range study {
		order := "-"
		if !math.IsNaN(lvl.Order) {
			order = fmt.Sprintf("%.3f", lvl.Order)
		}
		fmt.Fprintf(w, "%g\t%d\t%.4e\t%s\n", lvl.H, lvl.Steps, lvl.Error, order)
		errs[i] = lvl.Error
	}
	w.Flush()

	if plot {
		fmt.Println()
		fmt.Println(viz.Plot(viz.Log10(errs), "log10 error per halving"))
	}
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := baseConfig()
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)
	name := args[0]

	defaults, err := reg.SystemParams(name)
	if err != nil {
		return err
	}
	overrides, err := parseParams(params)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		defaults[k] = v
	}

	s, err := reg.GetSystemStepper(watchStepper)
	if err != nil {
		return err
	}
	build := func(ps map[string]float64) (models.SystemProblem, error) {
		return reg.GetSystemWithParams(name, ps)
	}

	m, err := viz.NewModel(name, build, s, defaults, watchStep, frameSteps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
