package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the journal tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		mode        TEXT NOT NULL,
		started_at  TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		total       INTEGER NOT NULL,
		succeeded   INTEGER NOT NULL,
		failed      INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS outcomes (
		run_id      TEXT NOT NULL REFERENCES runs(id),
		job_id      INTEGER NOT NULL,
		status      TEXT NOT NULL,
		skipped     INTEGER NOT NULL DEFAULT 0,
		exit_code   INTEGER NOT NULL DEFAULT 0,
		started_at  TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		output      TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, job_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_outcomes_job ON outcomes(job_id)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
