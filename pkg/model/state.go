package model

// JobStatus represents the lifecycle state of a job within one run.
type JobStatus string

const (
	JobPending   JobStatus = "PENDING"
	JobRunning   JobStatus = "RUNNING"
	JobSucceeded JobStatus = "SUCCESS"
	JobFailed    JobStatus = "FAILED"
)

// String returns the string representation of the job status.
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the job reached a final classification.
func (s JobStatus) IsTerminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// ValidJobTransitions defines the allowed status transitions. FAILED jobs
// re-enter RUNNING only through an explicit retry invocation naming their
// id; nothing ever moves a job back to PENDING.
var ValidJobTransitions = map[JobStatus][]JobStatus{
	JobPending: {JobRunning},
	JobRunning: {JobSucceeded, JobFailed},
	JobFailed:  {JobRunning},
}

// CanTransitionTo returns true if moving from the current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range ValidJobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
