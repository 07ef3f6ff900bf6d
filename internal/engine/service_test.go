package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habitchart/internal/storage"
)

type fakeSource struct {
	tasks    []Row
	measures []Row
	err      error
}

func (f *fakeSource) FetchTasks(ctx context.Context) ([]Row, error) {
	return f.tasks, f.err
}

func (f *fakeSource) FetchMeasures(ctx context.Context) ([]Row, error) {
	return f.measures, f.err
}

func taskRow(name, freq, week string, days ...bool) Row {
	row := Row{"Name": Text(name), "Frequency": Text(freq), "week": Text(week)}
	for i, d := range days {
		row[DefaultFields().Days[i]] = Bool(d)
	}
	return row
}

func measureRow(name, category, week string, score float64) Row {
	return Row{"Name": Text(name), "Description": Text(category), "Week": Text(week), "Score": Number(score)}
}

func newTestService(t *testing.T, src Source) *Service {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cal := testCalendar(t)
	svc := NewService(db, src, NewNormalizer(cal, DefaultFields()), NewScorer(cal, DefaultCategories()), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC) }
	return svc
}

func sampleSource() *fakeSource {
	return &fakeSource{
		tasks: []Row{
			taskRow("👟 Workout", "daily", "Week 1", true, true, true, true, true, false, false),
			taskRow("👟 Workout (2)", "daily", "Week 2", true, false, true),
			taskRow("💊 Nutrition/supplements", "3 times a week", "Week 1", true, false, true, false, true),
			taskRow("Post on Twitter", "sometimes", "Week 1", true, true),
			taskRow("Short workout", "2 times a week", "Week 3", false, true),
			taskRow("broken", "daily", "5", true),
		},
		measures: []Row{
			measureRow("Gym check", "Gym", "Week 1", 80),
			measureRow("Gym check", "Gym", "Week 1", 90),
			measureRow("Business check", "Business", "Week 3", 60),
			{"Name": Text("untagged"), "Week": Text("Week 1"), "Score": Number(10)},
		},
	}
}

func TestServiceSyncAndBuild(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, sampleSource())

	last, err := svc.LastSync(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	res, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Run.TaskRows)
	assert.Equal(t, 4, res.Run.MeasureRows)
	assert.Equal(t, 7+3+5+2+2, res.Run.TaskRecords)
	assert.Equal(t, 3, res.Run.MeasureRecords)
	assert.Len(t, res.Drops, 2)

	last, err = svc.LastSync(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, res.Run.ID, last.ID)
	assert.Equal(t, 2, last.Dropped)

	n, err := svc.RecordCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Run.TaskRecords, n)

	stored, err := svc.Build(ctx, false)
	require.NoError(t, err)
	live, err := svc.Build(ctx, true)
	require.NoError(t, err)
	if diff := cmp.Diff(documentsJSON(t, live), documentsJSON(t, stored)); diff != "" {
		t.Fatalf("snapshot build differs from live build (-live +stored):\n%s", diff)
	}

	gym1 := stored.WeeklyScore("Gym", 1)
	require.True(t, gym1.Valid)
	assert.Equal(t, (Goal(7).Percent(5)+100)/2, gym1.Value)
	assert.Equal(t, Some(Goal(7).Percent(2)), stored.WeeklyScore("Gym", 2))
	assert.Equal(t, Some(50), stored.WeeklyScore("Business", 3))
	assert.Equal(t, Missing, stored.WeeklyScore("Business", 1))

	assert.Equal(t, []string{"Week 1", "Week 2", "Week 3"}, stored.Combined.Weeks)
	_, ok := stored.Tasks.Task("Post on Twitter")
	assert.False(t, ok)
}

func TestServiceSyncReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	src := sampleSource()
	svc := newTestService(t, src)

	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	src.tasks = src.tasks[:1]
	src.measures = nil
	_, err = svc.Sync(ctx)
	require.NoError(t, err)

	tasks, measures, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 7)
	assert.Empty(t, measures)
}

func TestServiceSourceErrors(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, nil)
	_, err := svc.Sync(ctx)
	assert.ErrorIs(t, err, ErrNoSource)
	_, err = svc.Build(ctx, true)
	assert.ErrorIs(t, err, ErrNoSource)

	charts, err := svc.Build(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, charts.Weekly)

	boom := errors.New("boom")
	svc = newTestService(t, &fakeSource{err: boom})
	_, err = svc.Sync(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestServiceExport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, sampleSource())
	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	charts, err := svc.Build(ctx, false)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "data")
	paths, err := svc.Export(charts, storage.NewChartWriter(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, CombinedFile),
		filepath.Join(dir, DailyFile),
		filepath.Join(dir, TasksFile),
	}, paths)

	raw, err := os.ReadFile(filepath.Join(dir, CombinedFile))
	require.NoError(t, err)
	var combined map[string]any
	require.NoError(t, json.Unmarshal(raw, &combined))
	assert.Equal(t, []any{"Week 1", "Week 2", "Week 3"}, combined["weeks"])
	assert.Equal(t, []any{nil, nil, 50.0}, combined["businessTaskScores"])
	assert.Equal(t, []any{map[string]any{"week": "Week 1", "score": 85.0}}, combined["gymMeasures"])

	raw, err = os.ReadFile(filepath.Join(dir, DailyFile))
	require.NoError(t, err)
	var daily map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &daily))
	assert.Contains(t, daily, "week_1")
	assert.Nil(t, daily["week_2"]["gymMeasureScore"])
	assert.Equal(t, 60.0, daily["week_3"]["businessMeasureScore"])
}

func TestServiceReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, sampleSource())
	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	reports, err := svc.Report(ctx, 3)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, ReportRow{Category: "Business", TaskScore: Some(50), MeasureScore: Some(60)}, reports[0].Rows[1])
}
