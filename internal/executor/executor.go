// Package executor runs the external solver as a subprocess, one job at a
// time, at reduced OS scheduling priority so co-located services are not
// starved.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/me/solvebatch/pkg/model"
)

// Executor launches one solver process per job, synchronously.
type Executor struct {
	solverPath string
	niceness   int
	logger     *slog.Logger
}

// New creates an Executor for the given solver binary. niceness is the
// nice(1) level; 0 runs the solver at normal priority.
func New(solverPath string, niceness int, logger *slog.Logger) *Executor {
	return &Executor{
		solverPath: solverPath,
		niceness:   niceness,
		logger:     logger.With("component", "executor"),
	}
}

// Result carries what a single solver run produced. It says nothing about
// success: classification happens on the result artifact, not here.
type Result struct {
	ExitCode int
	Output   string
}

// Run executes the solver for one job, feeding the job's input file on
// stdin and copying combined stdout/stderr to sink as it is produced. It
// blocks until the process exits; there is deliberately no timeout, so a
// hung solver must be killed out of band (which cancels ctx via signal
// handling in main).
//
// A non-zero exit is not an error. The returned error is non-nil only for
// a LaunchError, which aborts the whole invocation.
func (e *Executor) Run(ctx context.Context, job model.JobSpec, sink io.Writer) (*Result, error) {
	// nice(1) would report a missing solver as plain exit 127, which the
	// artifact check cannot tell from a solver that ran and failed. Check
	// launchability up front so the missing-binary case stays fatal.
	if err := e.checkSolver(); err != nil {
		return nil, &model.LaunchError{JobID: job.ID, Path: e.solverPath, Err: err}
	}

	stdin, err := os.Open(job.InputPath)
	if err != nil {
		return nil, &model.LaunchError{JobID: job.ID, Path: e.solverPath, Err: fmt.Errorf("open input: %w", err)}
	}
	defer stdin.Close()

	var buf bytes.Buffer
	out := io.MultiWriter(sink, &buf)

	cmd := e.command(ctx)
	cmd.Stdin = stdin
	cmd.Stdout = out
	cmd.Stderr = out

	e.logger.Debug("starting solver", "job_id", job.ID, "input", job.InputPath, "niceness", e.niceness)

	runErr := cmd.Run()

	res := &Result{Output: buf.String()}
	switch err := runErr.(type) {
	case nil:
	case *exec.ExitError:
		res.ExitCode = err.ExitCode()
	default:
		// Out-of-band cancellation killed the child; report that rather
		// than a launch failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &model.LaunchError{JobID: job.ID, Path: e.solverPath, Err: runErr}
	}

	e.logger.Debug("solver exited", "job_id", job.ID, "exit_code", res.ExitCode)
	return res, nil
}

// command builds the solver command line. Anything but niceness 0 goes
// through nice(1): os/exec offers no portable way to lower the priority of
// a child before it starts.
func (e *Executor) command(ctx context.Context) *exec.Cmd {
	if e.niceness == 0 {
		return exec.CommandContext(ctx, e.solverPath)
	}
	return exec.CommandContext(ctx, "nice", "-n", strconv.Itoa(e.niceness), e.solverPath)
}

func (e *Executor) checkSolver() error {
	if _, err := exec.LookPath(e.solverPath); err != nil {
		return err
	}
	return nil
}
