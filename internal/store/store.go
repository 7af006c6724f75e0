package store

import (
	"context"

	"github.com/me/solvebatch/pkg/model"
)

// Store is the outcome journal: a durable record of what each invocation
// did, backing the status command and the status API.
//
// It is strictly observational. The retry path never reads it; retry ids
// are operator input, and collaborators signal on the sentinel files, not
// on journal rows.
type Store interface {
	RecordRun(ctx context.Context, report *model.RunReport) error
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	GetRun(ctx context.Context, runID string) (*model.RunReport, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
