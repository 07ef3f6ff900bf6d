package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SyncRepo struct {
	db DBTX
}

func NewSyncRepo(db DBTX) *SyncRepo {
	return &SyncRepo{db: db}
}

func (r *SyncRepo) Insert(ctx context.Context, run SyncRun) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_runs (started_at, finished_at, task_rows, measure_rows, task_records, measure_records, dropped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339),
		run.TaskRows, run.MeasureRows, run.TaskRecords, run.MeasureRecords, run.Dropped)
	if err != nil {
		return 0, fmt.Errorf("sync run insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sync run last insert id: %w", err)
	}
	return id, nil
}

// Last returns the most recent sync run, or nil when the snapshot was never synced.
func (r *SyncRepo) Last(ctx context.Context) (*SyncRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, task_rows, measure_rows, task_records, measure_records, dropped
		FROM sync_runs
		ORDER BY id DESC
		LIMIT 1
	`)
	var (
		run               SyncRun
		started, finished string
	)
	if err := row.Scan(&run.ID, &started, &finished, &run.TaskRows, &run.MeasureRows, &run.TaskRecords, &run.MeasureRecords, &run.Dropped); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sync run last: %w", err)
	}
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return nil, fmt.Errorf("sync run started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
		return nil, fmt.Errorf("sync run finished_at: %w", err)
	}
	return &run, nil
}
