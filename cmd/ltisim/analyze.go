package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/ltisim/internal/analysis"
	"github.com/san-kum/ltisim/internal/automation"
	"github.com/san-kum/ltisim/internal/experiment"
	"github.com/san-kum/ltisim/internal/plot"
	"github.com/san-kum/ltisim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	convergeDts      []float64
	convergeDuration float64
	sweepParam       string
	sweepMin         float64
	sweepMax         float64
	sweepSteps       int
	sweepWorkers     int
	sweepMetric      string
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same system",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSystemFlags(cmd)
	return cmd
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.TransferFunction()
	if err != nil {
		return err
	}
	input, err := cfg.Inputs()
	if err != nil {
		return err
	}

	cmp, err := analysis.CompareIntegrators(cmd.Context(), tf, input, cfg.Dt, args)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on H(s) =\n%s\n\n", tf)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INTEGRATOR\tFINAL\tPEAK\tMAX DIFF vs %s\n", args[0])

	fig := figures.NewFigure()
	fig.Title = "integrator comparison"
	fig.XLabel = "t [s]"
	for _, c := range cmp {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.3e\n",
			c.Integrator,
			c.Result.Metrics["final_value"],
			c.Result.Metrics["peak"],
			c.MaxDiff,
		)
		if err := fig.Line(c.Result.Times, c.Result.Outputs, c.Integrator); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(plot.RenderASCII(fig, 80, 12))
	return nil
}

func newConvergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "measure integration error and observed order against a fine-step reference",
		Args:  cobra.NoArgs,
		RunE:  convergence,
	}
	addSystemFlags(cmd)
	cmd.Flags().Float64SliceVar(&convergeDts, "dts", []float64{0.1, 0.05, 0.025, 0.0125}, "step sizes to test")
	cmd.Flags().Float64Var(&convergeDuration, "duration", 5, "simulated seconds")
	return cmd
}

func convergence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.TransferFunction()
	if err != nil {
		return err
	}

	rows, err := analysis.Convergence(cmd.Context(), tf, analysis.Hold(cfg.Input.Amplitude), convergeDuration, convergeDts, cfg.Integrator)
	if err != nil {
		return err
	}

	fmt.Printf("%s step response, %gs, integrator %s\n\n", tf.String(), convergeDuration, cfg.Integrator)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSAMPLES\tMAX ERROR\tRMS ERROR\tORDER")
	for _, r := range rows {
		order := "-"
		if !math.IsNaN(r.Order) {
			order = fmt.Sprintf("%.2f", r.Order)
		}
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3e\t%s\n", r.Dt, r.Samples, r.MaxError, r.RMSError, order)
	}
	return w.Flush()
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}

			results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), st, logger)
			for i, r := range results {
				saved := ""
				if r.RunID != "" {
					saved = " -> " + r.RunID
				}
				fmt.Printf("step %d %s: %d samples, final %.6g%s\n",
					i+1, r.Name, len(r.Result.Outputs), r.Result.Metrics["final_value"], saved)
			}
			return err
		},
	}
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a parameter sweep in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSystemFlags(cmd)
	cmd.Flags().StringVar(&sweepParam, "param", "cutoff", "parameter (cutoff, mass, damping, stiffness, dt, amplitude, num.<i>, den.<i>)")
	cmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	cmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	cmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	cmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&sweepMetric, "metric", "settling_time", "metric to chart")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	points, err := automation.RunSweep(cmd.Context(), automation.Sweep{
		Base:    cfg,
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Workers: sweepWorkers,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}
	logger.Info("sweep complete", "param", sweepParam, "points", len(points))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK\tFINAL\tOVERSHOOT %%\tSETTLING\n", sweepParam)
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.4g\t%.6g\t%.6g\t%.3g\t%.4g\n", p.Value,
			p.Metrics["peak"], p.Metrics["final_value"], p.Metrics["overshoot_pct"], p.Metrics["settling_time"])
		xs[i], ys[i] = p.Value, p.Metrics[sweepMetric]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(points) > 1 {
		fig := figures.NewFigure()
		fig.Title = fmt.Sprintf("%s vs %s", sweepMetric, sweepParam)
		fig.XLabel = sweepParam
		if err := fig.Line(xs, ys, sweepMetric); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(plot.RenderASCII(fig, 60, 10))
	}
	return nil
}
