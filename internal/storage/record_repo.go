package storage

import (
	"context"
	"fmt"
	"time"
)

type RecordRepo struct {
	db DBTX
}

func NewRecordRepo(db DBTX) *RecordRepo {
	return &RecordRepo{db: db}
}

func (r *RecordRepo) Insert(ctx context.Context, rec TaskRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task_records (day, task_name, frequency, week_number, week_label, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Day.Format(DayLayout), rec.TaskName, rec.Frequency, rec.WeekNumber, rec.WeekLabel, boolToInt(rec.Completed))
	if err != nil {
		return 0, fmt.Errorf("task record insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task record last insert id: %w", err)
	}
	return id, nil
}

// ReplaceAll swaps the stored task records for recs. Run it inside WithTx
// so readers never see a half-written snapshot.
func (r *RecordRepo) ReplaceAll(ctx context.Context, recs []TaskRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_records`); err != nil {
		return fmt.Errorf("task record clear: %w", err)
	}
	for _, rec := range recs {
		if _, err := r.Insert(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *RecordRepo) ListAll(ctx context.Context) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, day, task_name, frequency, week_number, week_label, completed
		FROM task_records
		ORDER BY day ASC, task_name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task record list: %w", err)
	}
	defer rows.Close()

	var out []TaskRecord
	for rows.Next() {
		var (
			rec       TaskRecord
			day       string
			completed int
		)
		if err := rows.Scan(&rec.ID, &day, &rec.TaskName, &rec.Frequency, &rec.WeekNumber, &rec.WeekLabel, &completed); err != nil {
			return nil, fmt.Errorf("task record scan: %w", err)
		}
		rec.Day, err = time.Parse(DayLayout, day)
		if err != nil {
			return nil, fmt.Errorf("task record %d day %q: %w", rec.ID, day, err)
		}
		rec.Completed = completed != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task record rows: %w", err)
	}
	return out, nil
}

func (r *RecordRepo) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_records`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("task record count: %w", err)
	}
	return n, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
