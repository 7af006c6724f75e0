package model

import "testing"

func TestJobStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobPending, false},
		{JobRunning, false},
		{JobSucceeded, true},
		{JobFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("JobStatus(%q).IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestJobStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from  JobStatus
		to    JobStatus
		valid bool
	}{
		// Valid transitions
		{JobPending, JobRunning, true},
		{JobRunning, JobSucceeded, true},
		{JobRunning, JobFailed, true},
		{JobFailed, JobRunning, true}, // explicit retry only

		// Invalid transitions
		{JobPending, JobSucceeded, false},
		{JobPending, JobFailed, false},
		{JobSucceeded, JobRunning, false},
		{JobSucceeded, JobPending, false},
		{JobFailed, JobPending, false},
		{JobRunning, JobPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Errorf("JobStatus(%q).CanTransitionTo(%q) = %v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}
