package storage

import (
	"context"
	"fmt"
)

type MeasureRepo struct {
	db DBTX
}

func NewMeasureRepo(db DBTX) *MeasureRepo {
	return &MeasureRepo{db: db}
}

func (r *MeasureRepo) ReplaceAll(ctx context.Context, recs []MeasureRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM measure_records`); err != nil {
		return fmt.Errorf("measure clear: %w", err)
	}
	for _, rec := range recs {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO measure_records (name, category, week_number, score)
			VALUES (?, ?, ?, ?)
		`, rec.Name, rec.Category, rec.WeekNumber, rec.Score)
		if err != nil {
			return fmt.Errorf("measure insert: %w", err)
		}
	}
	return nil
}

func (r *MeasureRepo) ListAll(ctx context.Context) ([]MeasureRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, week_number, score
		FROM measure_records
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("measure list: %w", err)
	}
	defer rows.Close()

	var out []MeasureRecord
	for rows.Next() {
		var m MeasureRecord
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.WeekNumber, &m.Score); err != nil {
			return nil, fmt.Errorf("measure scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("measure rows: %w", err)
	}
	return out, nil
}
