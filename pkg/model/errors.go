package model

import "fmt"

// LaunchError reports that the solver process could not be started at all
// (missing or non-executable binary). It is fatal to the invocation: the
// remaining jobs are aborted and no sentinel is written.
//
// A process that started but produced no result artifact is not an error;
// that job is simply recorded FAILED and the batch continues.
type LaunchError struct {
	JobID int
	Path  string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("job %d: launch solver %s: %v", e.JobID, e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
