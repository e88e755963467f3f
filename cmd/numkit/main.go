package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/config"
	"github.com/san-kum/numkit/internal/experiment"
	"github.com/san-kum/numkit/internal/logging"
)

var (
	configFile string
	preset     string
	verbose    bool

	stepper    string
	step       float64
	to         float64
	params     []string
	plot       bool
	every      int
	levels     int
	frameSteps int

	watchStepper string
	watchStep    float64

	panels   int
	romberg  int
	tol      float64
	maxDepth int
	fromData bool
	table    bool

	rootTol  float64
	rootIter int

	mode       string
	es         float64
	optimIter  int
	fixedCount bool
	scan       int

	order  int
	expFit bool
	at     float64

	outFile    string
	exportFile string
)

var log = logging.NewNop()

// main registers the commands and flags and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "numkit",
		Short:         "numerical methods workbench",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.New(logging.Level(verbose))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "solver profile ("+strings.Join(config.ListPresets(), ", ")+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	solveCmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "integrate an initial-value problem",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	odeFlags(solveCmd)
	solveCmd.Flags().StringVar(&stepper, "stepper", config.DefaultStepper, "stepper")
	solveCmd.Flags().IntVar(&every, "every", 0, "print every n-th sample (0 picks about 10 rows)")
	solveCmd.Flags().StringVar(&exportFile, "export", "", "write the full trajectory and metrics to a .json, .csv or .svg file")

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [stepper1] [stepper2] ...",
		Short: "compare steppers on the same problem",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCompare,
	}
	odeFlags(compareCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [problem] [stepper]",
		Short: "measure the observed order of a stepper",
		Args:  cobra.ExactArgs(2),
		RunE:  runConverge,
	}
	odeFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&levels, "levels", 5, "number of step halvings")

	watchCmd := &cobra.Command{
		Use:   "watch [system]",
		Short: "step a coupled problem interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&watchStepper, "stepper", "rk4", "system stepper")
	watchCmd.Flags().Float64Var(&watchStep, "step", 0.01, "step size h")
	watchCmd.Flags().StringArrayVar(&params, "param", nil, "model parameter name=value (repeatable)")
	watchCmd.Flags().IntVar(&frameSteps, "steps-per-frame", 2, "solver steps per frame")

	quadCmd := &cobra.Command{
		Use:   "quad [integral]",
		Short: "evaluate a reference integral with every rule",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuad,
	}
	quadCmd.Flags().IntVar(&panels, "panels", config.DefaultPanels, "panels for composite rules")
	quadCmd.Flags().IntVar(&romberg, "romberg", config.DefaultRombergLevels, "romberg levels")
	quadCmd.Flags().Float64Var(&tol, "tol", 0, "adaptive tolerance")
	quadCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "adaptive recursion cap")
	quadCmd.Flags().BoolVar(&fromData, "data", false, "also integrate sampled data")
	quadCmd.Flags().BoolVar(&table, "table", false, "print the romberg table")

	findCmd := &cobra.Command{
		Use:   "root [problem]",
		Short: "solve a reference equation with every root finder",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoot,
	}
	findCmd.Flags().Float64Var(&rootTol, "tol", 0, "convergence tolerance")
	findCmd.Flags().IntVar(&rootIter, "max-iter", 0, "iteration cap")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [problem]",
		Short: "locate a reference extremum with every 1-D optimiser",
		Args:  cobra.ExactArgs(1),
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().StringVar(&mode, "mode", "", "max or min (default: the problem's)")
	optimizeCmd.Flags().Float64Var(&es, "es", 0, "stopping error in percent")
	optimizeCmd.Flags().IntVar(&optimIter, "max-iter", 0, "iteration cap")
	optimizeCmd.Flags().BoolVar(&fixedCount, "fixed-count", false, "always run max-iter iterations")
	optimizeCmd.Flags().IntVar(&scan, "scan", 0, "grid points used to narrow the golden-section bracket")

	fitCmd := &cobra.Command{
		Use:   "fit [file]",
		Short: "regress two-column data (csv or whitespace separated, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runFit,
	}
	fitCmd.Flags().IntVar(&order, "order", 2, "polynomial order")
	fitCmd.Flags().BoolVar(&expFit, "exp", false, "also fit y = a·e^(bx) and y = a·b^x")
	fitCmd.Flags().Float64Var(&at, "at", 0, "interpolate at this x")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list solver profiles and rk2 coefficient sets",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list registered steppers and problems",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	rootCmd.AddCommand(solveCmd, compareCmd, convergeCmd, watchCmd, quadCmd, findCmd, optimizeCmd, fitCmd, presetsCmd, configCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func odeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "step size h")
	cmd.Flags().Float64Var(&to, "to", 0, "end of the interval (default: the problem's)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "model parameter name=value (repeatable)")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot the result")
}

// baseConfig resolves the preset and then the config file, the latter taking
// precedence.
func baseConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

// loadConfig applies the explicitly set flags of cmd over baseConfig.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := baseConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("stepper") {
		cfg.ODE.Stepper = stepper
	}
	if flags.Changed("step") {
		cfg.ODE.Step = step
	}
	if flags.Changed("panels") {
		cfg.Quad.Panels = panels
	}
	if flags.Changed("romberg") {
		cfg.Quad.RombergLevels = romberg
	}
	if flags.Changed("tol") && cmd.Name() == "quad" {
		cfg.Quad.AdaptiveTol = tol
	}
	if flags.Changed("max-depth") {
		cfg.Quad.MaxDepth = maxDepth
	}
	if flags.Changed("tol") && cmd.Name() == "root" {
		cfg.Root.Tolerance = rootTol
	}
	if flags.Changed("max-iter") && cmd.Name() == "root" {
		cfg.Root.MaxIter = rootIter
	}
	if flags.Changed("mode") {
		cfg.Optim.Mode = mode
	}
	if flags.Changed("es") {
		cfg.Optim.Es = es
	}
	if flags.Changed("max-iter") && cmd.Name() == "optimize" {
		cfg.Optim.MaxIter = optimIter
	}
	if flags.Changed("fixed-count") {
		cfg.Optim.FixedCount = fixedCount
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("config resolved",
		slog.String("preset", preset),
		slog.String("file", configFile),
		slog.String("stepper", cfg.ODE.Stepper),
		slog.Float64("step", cfg.ODE.Step))
	return cfg, nil
}

// parseParams turns repeated name=value flags into a map.
func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", kv, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry(cfg)

	sections := map[string][]string{
		"steppers":        reg.ListSteppers(),
		"system steppers": reg.ListSystemSteppers(),
		"problems":        reg.ListProblems(),
		"systems":         reg.ListSystems(),
		"integrals":       reg.ListIntegrals(),
		"roots":           reg.ListRoots(),
		"optima":          reg.ListOptima(),
	}
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\n  %s\n", heading(name), strings.Join(sections[name], "  "))
	}
	return nil
}
