package main

import (
	"fmt"
	"io"
	"os"

	"github.com/san-kum/ltisim/internal/analysis"
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/plot"
	"github.com/san-kum/ltisim/internal/storage"
	"github.com/san-kum/ltisim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	plotWidth   int
	plotHeight  int
	phaseWidth  int
	phaseHeight int
	showStates  bool
	plotInput   bool
	viewInput   bool
	imageInput  bool
	gridLines   bool
	xAxis       int
	yAxis       int
	outPath     string

	figures = plot.NewSession()
)

func loadRun(runID string) (*storage.RunMetadata, *dynamo.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	res, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, res, nil
}

// responseFigure plots the output of a run, with its input when asked.
func responseFigure(meta *storage.RunMetadata, res *dynamo.Result, withInput bool) (*plot.Figure, error) {
	fig := figures.NewFigure()
	fig.Title = fmt.Sprintf("%s (%s, dt=%g)", meta.ID, meta.Integrator, meta.Dt)
	fig.XLabel = "t [s]"
	fig.YLabel = "amplitude"
	fig.Grid = gridLines

	if err := fig.Line(res.Times, res.Outputs, "output"); err != nil {
		return nil, err
	}
	if withInput {
		if err := fig.Line(res.Times, res.Inputs, "input"); err != nil {
			return nil, err
		}
	}
	return fig, nil
}

func stateFigure(meta *storage.RunMetadata, res *dynamo.Result, idx int) (*plot.Figure, error) {
	fig := figures.NewFigure()
	fig.Title = fmt.Sprintf("%s x%d", meta.ID, idx)
	fig.XLabel = "t [s]"
	ys := make([]float64, len(res.States))
	for i, x := range res.States {
		ys[i] = x[idx]
	}
	return fig, fig.Line(res.Times, ys, fmt.Sprintf("x%d", idx))
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	cmd.Flags().BoolVar(&plotInput, "input", false, "overlay the input")
	cmd.Flags().BoolVar(&showStates, "states", false, "also plot each state variable")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  num=%v den=%v\n", meta.Model, meta.Num, meta.Den)
	fmt.Printf("samples: %d\n\n", len(res.Times))

	fig, err := responseFigure(meta, res, plotInput)
	if err != nil {
		return err
	}
	fmt.Println(plot.RenderASCII(fig, plotWidth, plotHeight))

	if !showStates {
		return nil
	}
	const maxPlots = 6
	for i := 0; i < min(len(res.States[0]), maxPlots); i++ {
		fig, err := stateFigure(meta, res, i)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(plot.RenderASCII(fig, plotWidth, plotHeight/2+2))
	}
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "interactive plot viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, res, err := loadRun(args[0])
			if err != nil {
				return err
			}
			fig, err := responseFigure(meta, res, viewInput)
			if err != nil {
				return err
			}
			return viz.Run(fig)
		},
	}
	cmd.Flags().BoolVar(&viewInput, "input", true, "overlay the input")
	cmd.Flags().BoolVar(&gridLines, "grid", true, "start with grid lines")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	cmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	cmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	cmd.Flags().IntVar(&phaseWidth, "width", 60, "plot width")
	cmd.Flags().IntVar(&phaseHeight, "height", 20, "plot height")
	return cmd
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait, err := analysis.PhasePortrait(res, xAxis, yAxis)
	if err != nil {
		return fmt.Errorf("run %s: %w", meta.ID, err)
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, phaseWidth, phaseHeight))
	return nil
}

// output opens outPath, or stdout when it is empty.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newExportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := loadRun(args[0])
			if err != nil {
				return err
			}
			w, err := output()
			if err != nil {
				return err
			}
			if err := storage.WriteCSV(w, res); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, res, err := loadRun(args[0])
			if err != nil {
				return err
			}
			w, err := output()
			if err != nil {
				return err
			}
			if err := storage.ExportJSON(w, *meta, res); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newExportImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-png [run_id] [path]",
		Short: "save the response plot as an image (.png, .svg or .pdf)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, res, err := loadRun(args[0])
			if err != nil {
				return err
			}
			fig, err := responseFigure(meta, res, imageInput)
			if err != nil {
				return err
			}
			if err := plot.Save(fig, args[1]); err != nil {
				return err
			}
			logger.Info("figure saved", "run", meta.ID, "path", args[1])
			fmt.Printf("saved %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&imageInput, "input", true, "include the input")
	cmd.Flags().BoolVar(&gridLines, "grid", true, "draw grid lines")
	return cmd
}
