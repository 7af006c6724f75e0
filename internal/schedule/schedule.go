// Package schedule triggers full batch runs on a cron expression, for
// deployments where the solver backlog is reprocessed nightly instead of
// by hand.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/me/solvebatch/internal/batch"
)

// Scheduler owns the cron loop. A tick that fires while a batch is still
// running is skipped outright: two concurrent solvers would defeat the
// CPU capping the orchestrator exists for.
type Scheduler struct {
	spec    string
	runner  *batch.Runner
	logger  *slog.Logger
	cron    *cron.Cron
	running atomic.Bool
}

// New creates a Scheduler for the given cron spec (standard 5-field
// syntax).
func New(spec string, runner *batch.Runner, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		spec:   spec,
		runner: runner,
		logger: logger.With("component", "schedule"),
	}
}

// Start validates the spec and begins firing ticks. It does not block.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("parse cron spec %q: %w", s.spec, err)
	}
	s.cron = c
	c.Start()
	s.logger.Info("schedule started", "spec", s.spec)
	return nil
}

// Stop halts the cron loop and waits for an in-flight tick to return.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("schedule stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous batch still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	report, err := s.runner.RunAll(ctx)
	if err != nil {
		s.logger.Error("scheduled batch failed", "error", err)
		return
	}
	s.logger.Info("scheduled batch finished",
		"run_id", report.RunID,
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
	)
}
