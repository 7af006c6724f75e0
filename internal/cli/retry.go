package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/me/solvebatch/internal/store"
)

func newRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id> [id...]",
		Short: "Re-run the solver for an explicit list of job ids",
		Long: `Re-runs exactly the named jobs through the same executor and
classification path as a full run, writing to the retry log and retry
sentinel. The full-run artifacts are never touched. Ids can be given as
separate arguments or comma-separated ("18 25 42" or "18,25,42").

The id list is yours to curate, typically the failed ids printed at the
end of a full run. Nothing is retried automatically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var journal store.Store
			if j, err := openJournal(ctx); err != nil {
				logger.Warn("running without journal", "error", err)
			} else {
				journal = j
				defer j.Close()
			}

			report, err := newRunner(journal).Retry(ctx, ids)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
}
