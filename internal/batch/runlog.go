package batch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/me/solvebatch/pkg/model"
)

const logTimeFormat = "2006-01-02 15:04:05"

// RunLog is the human-readable record of one invocation. Jobs never
// interleave because execution is strictly sequential, so each job's
// output sits between its start and completion markers.
//
// The file is truncated on open in both run modes; cross-invocation
// history lives in the outcome journal, not here. Collaborators must not
// parse this file; completion is signalled by the sentinel alone.
type RunLog struct {
	f *os.File
}

// OpenRunLog creates (or truncates) the log at path.
func OpenRunLog(path string) (*RunLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create run log %s: %w", path, err)
	}
	return &RunLog{f: f}, nil
}

// Close closes the underlying file.
func (l *RunLog) Close() error {
	return l.f.Close()
}

// Writer exposes the raw stream so solver output lands between the job
// markers.
func (l *RunLog) Writer() io.Writer {
	return l.f
}

// Start writes the start marker for a job.
func (l *RunLog) Start(id int, at time.Time) error {
	_, err := fmt.Fprintf(l.f, "=== job %d started %s\n", id, at.Format(logTimeFormat))
	return err
}

// Finish writes the completion line with the job's classification.
func (l *RunLog) Finish(o model.Outcome) error {
	var err error
	switch {
	case o.Skipped:
		_, err = fmt.Fprintf(l.f, "--- job %d SUCCESS (already solved, skipped) %s\n",
			o.JobID, o.FinishedAt.Format(logTimeFormat))
	case o.Status == model.JobSucceeded:
		_, err = fmt.Fprintf(l.f, "--- job %d SUCCESS %s\n",
			o.JobID, o.FinishedAt.Format(logTimeFormat))
	default:
		_, err = fmt.Fprintf(l.f, "--- job %d FAILED (no result file) %s\n",
			o.JobID, o.FinishedAt.Format(logTimeFormat))
	}
	return err
}
