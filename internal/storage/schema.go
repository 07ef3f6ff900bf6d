package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS task_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day TEXT NOT NULL,
			task_name TEXT NOT NULL,
			frequency TEXT NOT NULL DEFAULT '',
			week_number INTEGER NOT NULL,
			week_label TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS measure_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			week_number INTEGER NOT NULL,
			score REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS sync_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			task_rows INTEGER NOT NULL,
			measure_rows INTEGER NOT NULL,
			task_records INTEGER NOT NULL,
			measure_records INTEGER NOT NULL,
			dropped INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_task_records_task_week ON task_records(task_name, week_number);`,
		`CREATE INDEX IF NOT EXISTS idx_measure_records_category_week ON measure_records(category, week_number);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
