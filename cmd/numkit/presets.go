package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/numkit/internal/config"
)

func runPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(heading("solver profiles"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tstepper\tstep\tpanels\tromberg\tadaptive_tol\troot_tol\toptim_es")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%d\t%g\t%g\t%g\n",
			name, c.ODE.Stepper, c.ODE.Step, c.Quad.Panels, c.Quad.RombergLevels,
			c.Quad.AdaptiveTol, c.Root.Tolerance, c.Optim.Es)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(heading("rk2 coefficients"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\ta1\ta2\tp1\tq11")
	for _, name := range config.ListRK2Presets() {
		k := config.RK2Presets[name]
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.4g\n", name, k.A1, k.A2, k.P1, k.Q11)
	}
	return w.Flush()
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		log.Info("config written", "path", outFile)
		return nil
	}
	return config.Encode(os.Stdout, cfg)
}
