package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/ltisim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFile   string
	logFormat string

	logger    = logging.Discard()
	logCloser io.Closer
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ltisim",
		Short:         "transfer function simulator",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logging.PresetConfigStderr
			cfg.Filename = logFile
			cfg.Level = logLevel
			cfg.Format = logFormat
			l, c, err := logging.New(cfg)
			if err != nil {
				return err
			}
			logger, logCloser = l, c
			slog.SetDefault(l)
			logger.Debug("command start", "cmd", cmd.CommandPath())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ltisim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (empty for stderr, - for stdout)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newShowCmd(),
		newDeleteCmd(),
		newPresetsCmd(),
		newPlotCmd(),
		newViewCmd(),
		newPhaseCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportImageCmd(),
		newCompareCmd(),
		newConvergeCmd(),
		newScenarioCmd(),
		newSweepCmd(),
		newTuneCmd(),
	)

	return rootCmd
}

// execute runs one command line and closes the log file afterwards.
func execute(ctx context.Context, args []string) error {
	defer closeLog()
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// closeLog flushes the log file. It runs after every command, including
// failed ones, which skip cobra's post-run hooks.
func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}
