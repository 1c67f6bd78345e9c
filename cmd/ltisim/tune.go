package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/ltisim/internal/experiment"
	"github.com/san-kum/ltisim/internal/optim"
	"github.com/spf13/cobra"
)

var (
	tuneGrid    []string
	tuneMetric  string
	tuneWorkers int
	tuneTop     int
)

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search parameters minimizing a metric",
		Example: `  ltisim tune --preset mass_spring_damper --grid damping=1,5,20,40 --metric overshoot_pct
  ltisim tune --model lowpass --grid cutoff=2,5,10 --grid dt=0.01,0.001 --metric settling_time`,
		Args: cobra.NoArgs,
		RunE: runTune,
	}
	addSystemFlags(cmd)
	cmd.Flags().StringArrayVar(&tuneGrid, "grid", nil, "parameter values as name=v1,v2,... (repeatable)")
	cmd.Flags().StringVar(&tuneMetric, "metric", "settling_time", "metric to minimize")
	cmd.Flags().IntVar(&tuneWorkers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&tuneTop, "top", 5, "candidates to list")
	return cmd
}

func parseGrid(specs []string) ([]string, [][]float64, error) {
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("at least one --grid is required")
	}
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("bad --grid %q, want name=v1,v2,...", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in --grid %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(tuneGrid)
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(cfg, names, ranges, tuneMetric)
	gs.Workers = tuneWorkers
	out, err := gs.Search(cmd.Context(), experiment.NewRegistry())
	if err != nil {
		return err
	}
	logger.Info("tune complete", "candidates", len(out.Trials), "skipped", out.Skipped)

	trials := slices.Clone(out.Trials)
	slices.SortStableFunc(trials, func(a, b optim.Trial) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
	if tuneTop > 0 && len(trials) > tuneTop {
		trials = trials[:tuneTop]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(tuneMetric))
	for _, t := range trials {
		row := make([]string, len(names))
		for i, n := range names {
			row[i] = strconv.FormatFloat(t.Params[n], 'g', -1, 64)
		}
		fmt.Fprintf(w, "%s\t%.6g\n", strings.Join(row, "\t"), t.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if out.Skipped > 0 {
		fmt.Printf("\n%d invalid combinations skipped\n", out.Skipped)
	}
	return nil
}
