package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/solvebatch/internal/batch"
)

func newStatusCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sentinel state and recent runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Full-run sentinel:  %s (%s)\n", cfg.RunSentinel, presence(cfg.RunSentinel))
			fmt.Printf("Retry-run sentinel: %s (%s)\n", cfg.RetrySentinel, presence(cfg.RetrySentinel))

			journal, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer journal.Close()

			runs, err := journal.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("\nNo recorded runs.")
				return nil
			}

			fmt.Printf("\n%-36s  %-6s  %-20s  %5s  %5s  %6s\n", "RUN", "MODE", "STARTED", "TOTAL", "OK", "FAILED")
			fmt.Printf("%-36s  %-6s  %-20s  %5s  %5s  %6s\n", "---", "----", "-------", "-----", "--", "------")
			for _, run := range runs {
				fmt.Printf("%-36s  %-6s  %-20s  %5d  %5d  %6d\n",
					run.RunID, run.Mode, run.StartedAt.Local().Format(time.DateTime),
					run.Total, run.Succeeded, run.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}

func presence(path string) string {
	if batch.SentinelExists(path) {
		return "present"
	}
	return "absent"
}
