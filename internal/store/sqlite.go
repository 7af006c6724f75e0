package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/solvebatch/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath. Use
// ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL lets the status API read while a batch writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// RecordRun inserts the run row and its outcomes in one transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, report *model.RunReport) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", report.RunID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, started_at, finished_at, total, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, string(report.Mode),
		report.StartedAt.Format(time.RFC3339Nano), report.FinishedAt.Format(time.RFC3339Nano),
		len(report.Outcomes), report.Succeeded(), report.Failed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, o := range report.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, job_id, status, skipped, exit_code, started_at, finished_at, output)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID, o.JobID, string(o.Status), boolInt(o.Skipped), o.ExitCode,
			o.StartedAt.Format(time.RFC3339Nano), o.FinishedAt.Format(time.RFC3339Nano),
			o.Output,
		)
		if err != nil {
			return fmt.Errorf("insert outcome job %d: %w", o.JobID, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means 50.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	s.logger.Debug("sql", "op", "select", "table", "runs", "limit", limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, started_at, finished_at, total, succeeded, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []model.RunSummary
	for rows.Next() {
		sum, err := scanRunSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetRun returns one run with its outcomes in execution order, or nil if
// the id is unknown.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.RunReport, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", runID)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, mode, started_at, finished_at FROM runs WHERE id = ?`, runID)

	var report model.RunReport
	var mode, started, finished string
	if err := row.Scan(&report.RunID, &mode, &started, &finished); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	report.Mode = model.RunMode(mode)
	report.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	report.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)

	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, status, skipped, exit_code, started_at, finished_at, output
		 FROM outcomes WHERE run_id = ? ORDER BY started_at, job_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("get outcomes %s: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o model.Outcome
		var status, ostarted, ofinished string
		var skipped int
		if err := rows.Scan(&o.JobID, &status, &skipped, &o.ExitCode, &ostarted, &ofinished, &o.Output); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Status = model.JobStatus(status)
		o.Skipped = skipped != 0
		o.StartedAt, _ = time.Parse(time.RFC3339Nano, ostarted)
		o.FinishedAt, _ = time.Parse(time.RFC3339Nano, ofinished)
		report.Outcomes = append(report.Outcomes, o)
	}
	return &report, rows.Err()
}

func scanRunSummary(rows *sql.Rows) (model.RunSummary, error) {
	var sum model.RunSummary
	var mode, started, finished string
	if err := rows.Scan(&sum.RunID, &mode, &started, &finished, &sum.Total, &sum.Succeeded, &sum.Failed); err != nil {
		return sum, fmt.Errorf("scan run: %w", err)
	}
	sum.Mode = model.RunMode(mode)
	sum.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	sum.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	return sum, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
