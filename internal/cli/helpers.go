package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/me/solvebatch/internal/batch"
	"github.com/me/solvebatch/internal/executor"
	"github.com/me/solvebatch/internal/store"
	"github.com/me/solvebatch/pkg/model"
)

// openJournal opens and migrates the outcome journal.
func openJournal(ctx context.Context) (*store.SQLiteStore, error) {
	journal, err := store.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := journal.Migrate(ctx); err != nil {
		journal.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return journal, nil
}

// newRunner wires a batch runner. journal may be nil.
func newRunner(journal store.Store) *batch.Runner {
	return batch.NewRunner(cfg, executor.New(cfg.SolverPath, cfg.Niceness, logger), journal, logger)
}

// parseIDs accepts ids as separate args or comma-separated lists
// ("18 25 42" and "18,25,42" both work).
func parseIDs(args []string) ([]int, error) {
	var ids []int
	seen := make(map[int]bool)
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid job id %q", part)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no job ids given")
	}
	return ids, nil
}

// printReport writes the human summary of a finished run to stdout.
func printReport(report *model.RunReport) {
	fmt.Printf("Run %s (%s): %d jobs, %d succeeded, %d failed\n",
		report.RunID, report.Mode, len(report.Outcomes), report.Succeeded(), report.Failed())

	var failed []string
	for _, o := range report.Outcomes {
		if o.Status == model.JobFailed {
			failed = append(failed, strconv.Itoa(o.JobID))
		}
	}
	if len(failed) > 0 {
		fmt.Printf("Failed jobs (retry with 'solvebatch retry %s')\n", strings.Join(failed, ","))
	}
}
