package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func day(s string) time.Time {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOpenMigratesTwice(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestRecordRepoReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepo(openTestDB(t))

	first := []TaskRecord{
		{Day: day("2025-10-28"), TaskName: "👟 Workout", Frequency: "daily", WeekNumber: 1, WeekLabel: "Week 1", Completed: true},
		{Day: day("2025-10-27"), TaskName: "👟 Workout", Frequency: "daily", WeekNumber: 1, WeekLabel: "Week 1", Completed: false},
	}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day("2025-10-27"), got[0].Day)
	assert.False(t, got[0].Completed)
	assert.True(t, got[1].Completed)
	assert.Equal(t, "Week 1", got[1].WeekLabel)

	require.NoError(t, repo.ReplaceAll(ctx, first[:1]))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMeasureRepoReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasureRepo(openTestDB(t))

	recs := []MeasureRecord{
		{Name: "Gym check", Category: "Gym", WeekNumber: 2, Score: 80},
		{Name: "Gym check", Category: "Gym", WeekNumber: 2, Score: 90.5},
	}
	require.NoError(t, repo.ReplaceAll(ctx, recs))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 90.5, got[1].Score)
	assert.Equal(t, "Gym", got[0].Category)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, NewRecordRepo(db).ReplaceAll(ctx, []TaskRecord{
		{Day: day("2025-10-27"), TaskName: "keep", WeekNumber: 1},
	}))

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := NewRecordRepo(tx).ReplaceAll(ctx, nil); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := NewRecordRepo(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSyncRepoLast(t *testing.T) {
	ctx := context.Background()
	repo := NewSyncRepo(openTestDB(t))

	last, err := repo.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	started := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 2; i++ {
		_, err := repo.Insert(ctx, SyncRun{
			StartedAt:   started,
			FinishedAt:  started.Add(time.Duration(i) * time.Second),
			TaskRows:    10 * i,
			MeasureRows: i,
			Dropped:     i - 1,
		})
		require.NoError(t, err)
	}

	last, err = repo.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 20, last.TaskRows)
	assert.Equal(t, 1, last.Dropped)
	assert.True(t, last.FinishedAt.Equal(started.Add(2*time.Second)))
}

func TestChartWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	w := NewChartWriter(dir)

	path, err := w.WriteJSON("doc.json", map[string][]int{"weeks": {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back map[string][]int
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []int{1, 2}, back["weeks"])
	assert.NoFileExists(t, path+".tmp")
}
