package model

import "time"

// RunMode distinguishes the two orchestration entry points. Each mode owns
// its own log file and sentinel so a retry can never be mistaken for a
// finished full batch.
type RunMode string

const (
	RunModeFull  RunMode = "full"
	RunModeRetry RunMode = "retry"
)

// String returns the string representation of the run mode.
func (m RunMode) String() string {
	return string(m)
}

// JobSpec identifies one solver invocation: a numeric id, the input file
// fed to the solver on stdin, and the result artifact whose existence
// decides success.
type JobSpec struct {
	ID         int
	InputPath  string
	ResultPath string
}

// Outcome records a single attempt of one job. Exactly one Outcome is
// produced per attempt; Status is always terminal.
type Outcome struct {
	JobID      int       `json:"job_id"`
	Status     JobStatus `json:"status"`
	Skipped    bool      `json:"skipped,omitempty"`
	ExitCode   int       `json:"exit_code"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Output     string    `json:"output,omitempty"`
}

// RunReport summarizes one orchestrator invocation: every job attempted,
// in execution order.
type RunReport struct {
	RunID      string    `json:"run_id"`
	Mode       RunMode   `json:"mode"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Succeeded returns the number of jobs classified SUCCESS, skipped jobs
// included.
func (r *RunReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == JobSucceeded {
			n++
		}
	}
	return n
}

// Failed returns the number of jobs classified FAILED.
func (r *RunReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == JobFailed {
			n++
		}
	}
	return n
}

// RunSummary is the journal's view of a run without per-job output.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Mode       RunMode   `json:"mode"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
}

// Summary collapses a report into its journal row.
func (r *RunReport) Summary() RunSummary {
	return RunSummary{
		RunID:      r.RunID,
		Mode:       r.Mode,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Total:      len(r.Outcomes),
		Succeeded:  r.Succeeded(),
		Failed:     r.Failed(),
	}
}
