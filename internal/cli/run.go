package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/me/solvebatch/internal/store"
)

func newRunCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the solver for every pending job in the job directory",
		Long: `Enumerates q<id>_input.txt files in the job directory and runs the
solver for each, strictly one process at a time at reduced priority.
Jobs whose result artifact already exists are skipped unless --force is
given. The full-run sentinel is written once every job was attempted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if force {
				cfg.SkipSolved = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// The journal is a convenience record; a batch must not be
			// blocked by it.
			var journal store.Store
			if j, err := openJournal(ctx); err != nil {
				logger.Warn("running without journal", "error", err)
			} else {
				journal = j
				defer j.Close()
			}

			report, err := newRunner(journal).RunAll(ctx)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-solve jobs whose result artifact already exists")
	return cmd
}
