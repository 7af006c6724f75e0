// Package cli implements the solvebatch command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/me/solvebatch/internal/config"
	"github.com/me/solvebatch/internal/logging"
)

var (
	flagConfig    string
	flagJobDir    string
	flagSolver    string
	flagNiceness  int
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the solvebatch CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "solvebatch",
		Short: "solvebatch runs the hand solver over a job directory, one job at a time",
		Long: `solvebatch runs the external hand solver over every pending job in a
job directory, one low-priority process at a time, classifies each job by
the presence of its result artifact, and signals batch completion with a
sentinel file that the quiz-content pipeline polls for.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if flagConfig != "" {
				cfg, err = config.Load(flagConfig)
				if err != nil {
					return err
				}
			} else {
				cfg = config.Default()
			}

			// Flags beat the config file, but only when actually set.
			if cmd.Flags().Changed("job-dir") {
				cfg.JobDir = flagJobDir
			}
			if cmd.Flags().Changed("solver") {
				cfg.SolverPath = flagSolver
			}
			if cmd.Flags().Changed("niceness") {
				cfg.Niceness = flagNiceness
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = flagDB
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}

			cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = logging.New(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	root.PersistentFlags().StringVar(&flagJobDir, "job-dir", "", "Job directory with q<id>_input.txt files")
	root.PersistentFlags().StringVar(&flagSolver, "solver", "", "Path to the solver binary")
	root.PersistentFlags().IntVar(&flagNiceness, "niceness", 19, "nice(1) level for solver processes (0 disables)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "Outcome journal path (default <job-dir>/solvebatch.db)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Shorthand for --log-level=debug")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newRetryCmd(),
		newJobsCmd(),
		newStatusCmd(),
		newServeCmd(),
	)

	return root
}
