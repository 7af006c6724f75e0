package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/solvebatch/internal/jobdir"
)

func newJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List jobs in the job directory and their artifact state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := jobdir.Scan(cfg.JobDir, logger)
			if err != nil {
				return err
			}

			if len(specs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Printf("%-6s  %-8s  %s\n", "ID", "SOLVED", "INPUT")
			fmt.Printf("%-6s  %-8s  %s\n", "--", "------", "-----")
			for _, spec := range specs {
				solved := "no"
				if _, err := os.Stat(spec.ResultPath); err == nil {
					solved = "yes"
				}
				fmt.Printf("%-6d  %-8s  %s\n", spec.ID, solved, spec.InputPath)
			}
			return nil
		},
	}
}
