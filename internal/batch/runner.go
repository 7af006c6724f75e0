// Package batch orchestrates solver runs: enumerate (or take) a job list,
// run each job through the executor strictly one at a time, classify it by
// result-artifact presence, log it, and signal completion with a sentinel
// file once every job in scope has been attempted.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/me/solvebatch/internal/config"
	"github.com/me/solvebatch/internal/executor"
	"github.com/me/solvebatch/internal/jobdir"
	"github.com/me/solvebatch/internal/store"
	"github.com/me/solvebatch/pkg/model"
)

// Runner drives full and retry runs. It is not safe for concurrent use;
// one invocation at a time is the whole point.
type Runner struct {
	cfg         config.Config
	exec        *executor.Executor
	journal     store.Store // nil disables journaling
	logger      *slog.Logger
	completions chan model.RunReport
}

// NewRunner wires a Runner. journal may be nil.
func NewRunner(cfg config.Config, exec *executor.Executor, journal store.Store, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:         cfg,
		exec:        exec,
		journal:     journal,
		logger:      logger.With("component", "runner"),
		completions: make(chan model.RunReport, 1),
	}
}

// Completions delivers each finished run's report to in-process
// collaborators. The filesystem sentinel stays the signal for
// out-of-process consumers; this channel supplements it. Sends never
// block, so an absent listener cannot stall a batch.
func (r *Runner) Completions() <-chan model.RunReport {
	return r.completions
}

// RunAll enumerates the job directory and attempts every pending job in
// numeric id order.
func (r *Runner) RunAll(ctx context.Context) (*model.RunReport, error) {
	specs, err := jobdir.Scan(r.cfg.JobDir, r.logger)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, model.RunModeFull, specs, r.cfg.RunLog, r.cfg.RunSentinel)
}

// Retry attempts exactly the listed job ids, in the given order. The list
// is operator-curated; nothing here consults prior outcomes. Retry runs
// write their own log and sentinel and never touch the full-run artifacts.
func (r *Runner) Retry(ctx context.Context, ids []int) (*model.RunReport, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("retry: no job ids given")
	}
	return r.run(ctx, model.RunModeRetry, jobdir.Specs(r.cfg.JobDir, ids), r.cfg.RetryLog, r.cfg.RetrySentinel)
}

func (r *Runner) run(ctx context.Context, mode model.RunMode, specs []model.JobSpec, logPath, sentinelPath string) (*model.RunReport, error) {
	report := &model.RunReport{
		RunID:     uuid.New().String(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}

	if err := ClearSentinel(sentinelPath); err != nil {
		return nil, err
	}

	rl, err := OpenRunLog(logPath)
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	r.logger.Info("batch started", "run_id", report.RunID, "mode", mode, "jobs", len(specs))

	for _, job := range specs {
		if ctx.Err() != nil {
			r.logger.Warn("batch cancelled", "run_id", report.RunID, "job_id", job.ID)
			return nil, ctx.Err()
		}

		outcome, err := r.attempt(ctx, mode, job, rl)
		if err != nil {
			// Launch failures abort the invocation. The sentinel stays
			// absent so nothing downstream reads a half-finished batch as
			// complete.
			r.logger.Error("batch aborted", "run_id", report.RunID, "job_id", job.ID, "error", err)
			return nil, err
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.FinishedAt = time.Now().UTC()

	// Sentinel creation is strictly the last per-job-visible step: a kill
	// anywhere above leaves it absent.
	if err := WriteSentinel(sentinelPath); err != nil {
		return nil, err
	}

	if r.journal != nil {
		if err := r.journal.RecordRun(ctx, report); err != nil {
			// The journal is observational; a failed write must not fail a
			// batch whose sentinel already exists.
			r.logger.Warn("journal write failed", "run_id", report.RunID, "error", err)
		}
	}

	r.logger.Info("batch finished",
		"run_id", report.RunID,
		"mode", mode,
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
	)

	select {
	case r.completions <- *report:
	default:
	}

	return report, nil
}

// attempt runs one job through executor, detector and logger, producing
// exactly one Outcome. The returned error is non-nil only for launch
// failures.
func (r *Runner) attempt(ctx context.Context, mode model.RunMode, job model.JobSpec, rl *RunLog) (model.Outcome, error) {
	outcome := model.Outcome{JobID: job.ID, StartedAt: time.Now().UTC()}

	// A result left by an earlier run counts as done: the solver is
	// deterministic, so re-solving only burns CPU. Full runs only; a
	// retry names its ids precisely to re-solve them.
	if mode == model.RunModeFull && r.cfg.SkipSolved {
		if _, err := os.Stat(job.ResultPath); err == nil {
			outcome.Status = model.JobSucceeded
			outcome.Skipped = true
			outcome.FinishedAt = outcome.StartedAt
			if err := rl.Start(job.ID, outcome.StartedAt); err != nil {
				return outcome, err
			}
			if err := rl.Finish(outcome); err != nil {
				return outcome, err
			}
			r.logger.Info("job skipped", "job_id", job.ID, "result", job.ResultPath)
			return outcome, nil
		}
	}

	if err := rl.Start(job.ID, outcome.StartedAt); err != nil {
		return outcome, err
	}

	// A retry id whose input never existed cannot produce an artifact, so
	// it is a per-job failure, not an abort. Full runs enumerated the
	// input file moments ago.
	if _, err := os.Stat(job.InputPath); err != nil {
		fmt.Fprintf(rl.Writer(), "input file missing: %s\n", job.InputPath)
		outcome.Status = model.JobFailed
		outcome.FinishedAt = time.Now().UTC()
		if err := rl.Finish(outcome); err != nil {
			return outcome, err
		}
		r.logger.Warn("job input missing", "job_id", job.ID, "input", job.InputPath)
		return outcome, nil
	}

	res, err := r.exec.Run(ctx, job, rl.Writer())
	if err != nil {
		return outcome, err
	}

	outcome.ExitCode = res.ExitCode
	outcome.Output = res.Output
	outcome.FinishedAt = time.Now().UTC()

	// Classification is artifact presence and nothing else; the solver's
	// exit codes are not trusted as ground truth.
	if _, err := os.Stat(job.ResultPath); err == nil {
		outcome.Status = model.JobSucceeded
	} else {
		outcome.Status = model.JobFailed
	}

	if err := rl.Finish(outcome); err != nil {
		return outcome, err
	}

	r.logger.Info("job finished",
		"job_id", job.ID,
		"status", outcome.Status,
		"exit_code", outcome.ExitCode,
		"duration", outcome.FinishedAt.Sub(outcome.StartedAt).Round(time.Millisecond),
	)
	return outcome, nil
}
