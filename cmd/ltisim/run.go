package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ltisim/internal/config"
	"github.com/san-kum/ltisim/internal/experiment"
	"github.com/san-kum/ltisim/internal/format"
	"github.com/san-kum/ltisim/internal/signal"
	"github.com/san-kum/ltisim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	runName    string
	model      string
	num        []float64
	den        []float64
	cutoff     float64
	mass       float64
	damping    float64
	stiffness  float64
	dt         float64
	integrator string
	inputKind  string
	samples    int
	amplitude  float64
	frequency  float64
	inputSeed  uint64
	noSave     bool
	printOut   bool
)

// addSystemFlags registers the flags that describe a simulation.
func addSystemFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&runName, "name", "", "run name")
	f.StringVar(&model, "model", config.ModelTransferFunction, "system model ("+strings.Join(config.Models(), ", ")+")")
	f.Float64SliceVar(&num, "num", nil, "numerator coefficients, highest power first")
	f.Float64SliceVar(&den, "den", nil, "denominator coefficients, highest power first")
	f.Float64Var(&cutoff, "cutoff", 0, "filter cutoff (rad/s)")
	f.Float64Var(&mass, "mass", 0, "mass (mass_spring_damper)")
	f.Float64Var(&damping, "damping", 0, "damping (mass_spring_damper)")
	f.Float64Var(&stiffness, "stiffness", 0, "stiffness (mass_spring_damper)")
	f.Float64Var(&dt, "dt", config.DefaultDt, "sample interval")
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(experiment.NewRegistry().ListIntegrators(), ", ")+")")
	f.StringVar(&inputKind, "input", "step", "input kind ("+strings.Join(signal.Kinds(), ", ")+")")
	f.IntVar(&samples, "samples", config.DefaultSamples, "number of input samples")
	f.Float64Var(&amplitude, "amplitude", 1, "input amplitude (slope for ramp, sigma for noise)")
	f.Float64Var(&frequency, "frequency", 1, "input frequency (Hz)")
	f.Uint64Var(&inputSeed, "seed", 1, "noise seed")
}

// resolveConfig starts from the default, a preset, or a config file (in
// increasing precedence) and applies flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		logger.Debug("preset applied", "preset", preset)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "path", configFile)
	}

	fl := cmd.Flags()
	if fl.Changed("name") {
		cfg.Name = runName
	}
	if fl.Changed("model") {
		cfg.Model = model
	}
	if fl.Changed("num") {
		cfg.System.Num = num
	}
	if fl.Changed("den") {
		cfg.System.Den = den
	}
	if fl.Changed("cutoff") {
		cfg.System.Cutoff = cutoff
	}
	if fl.Changed("mass") {
		cfg.System.Mass = mass
	}
	if fl.Changed("damping") {
		cfg.System.Damping = damping
	}
	if fl.Changed("stiffness") {
		cfg.System.Stiffness = stiffness
	}
	if fl.Changed("dt") {
		cfg.Dt = dt
	}
	if fl.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if fl.Changed("input") {
		cfg.Input.Kind = inputKind
	}
	if fl.Changed("samples") {
		cfg.Input.Samples = samples
	}
	if fl.Changed("amplitude") {
		cfg.Input.Amplitude = amplitude
		cfg.Input.Slope = amplitude
	}
	if fl.Changed("frequency") {
		cfg.Input.Frequency = frequency
	}
	if fl.Changed("seed") {
		cfg.Input.Seed = inputSeed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "model", cfg.Model, "dt", cfg.Dt, "integrator", cfg.Integrator, "input", cfg.Input.Kind)
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSystemFlags(cmd)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().BoolVar(&printOut, "print", false, "print the output sequence")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	tf := exp.TransferFunction()
	fmt.Printf("simulating H(s) =\n%s\n\n", tf)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("run complete", "samples", len(result.Outputs), "elapsed", elapsed)

	if printOut {
		if err := format.Print(os.Stdout, result.Outputs); err != nil {
			return err
		}
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(), result)
		if err != nil {
			return err
		}
		logger.Info("run saved", "run", runID, "dir", dataDir)
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d (%.4gs)\n", len(result.Outputs), result.Duration())
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSAMPLES\tDT\tINPUT\tINTEG\tORDER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4gs\t%s\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Dt,
			run.Input,
			run.Integrator,
			len(run.Den)-1,
		)
	}

	return w.Flush()
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id] [path]",
		Short: "print run metadata, or one field by path (e.g. metrics.peak)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			path := "@this"
			if len(args) == 2 {
				path = args[1]
			}
			v, err := st.Lookup(args[0], path)
			if err != nil {
				return err
			}
			if !v.Exists() {
				return fmt.Errorf("no field %q in run %s", path, args[0])
			}
			fmt.Println(v.String())
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run_id]...",
		Short: "delete stored runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			for _, id := range args {
				if err := st.Delete(id); err != nil {
					return err
				}
				logger.Info("run deleted", "run", id)
			}
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tMODEL\tINPUT\tSAMPLES\tDT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\n", name, p.Model, p.Input.Kind, p.Input.Samples, p.Dt)
			}
			return w.Flush()
		},
	}
}
