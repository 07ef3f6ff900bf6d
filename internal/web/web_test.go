package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habitchart/internal/engine"
)

type stubBuilder struct {
	charts *engine.Charts
	err    error
	calls  int
}

func (s *stubBuilder) Build(ctx context.Context, live bool) (*engine.Charts, error) {
	s.calls++
	if live {
		return nil, errors.New("live build not expected")
	}
	return s.charts, s.err
}

func testCharts(t *testing.T) *engine.Charts {
	t.Helper()
	anchor := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	cal := engine.NewCalendar(anchor)
	s := engine.NewScorer(cal, engine.DefaultCategories())

	var tasks []engine.TaskRecord
	for day := 0; day < engine.DaysPerWeek; day++ {
		tasks = append(tasks, engine.TaskRecord{
			Date:       cal.Date(2, day),
			TaskName:   "💊 Nutrition/supplements",
			Frequency:  "3 times a week",
			WeekNumber: 2,
			WeekLabel:  "Week 2",
			Completed:  day < 3,
		})
	}
	measures := []engine.MeasureRecord{{Name: "Gym check", Category: "Gym", WeekNumber: 2, Score: 70}}
	return s.Compute(tasks, measures)
}

func newTestRouter(t *testing.T, b Builder, dataDir string) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	return Routes(NewHandler(b, logger), dataDir, logger)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	b := &stubBuilder{charts: testCharts(t)}
	h := newTestRouter(t, b, "")

	tests := []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/api/combined", http.StatusOK},
		{"/api/daily", http.StatusOK},
		{"/api/daily/2", http.StatusOK},
		{"/api/daily/week_2", http.StatusOK},
		{"/api/daily/9", http.StatusNotFound},
		{"/api/daily/abc", http.StatusBadRequest},
		{"/api/tasks", http.StatusOK},
		{"/api/tasks/" + url.PathEscape("💊 Nutrition/supplements"), http.StatusOK},
		{"/api/tasks/nobody", http.StatusNotFound},
		{"/data/combined-chart-data.json", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCombinedBody(t *testing.T) {
	h := newTestRouter(t, &stubBuilder{charts: testCharts(t)}, "")
	rec := get(t, h, "/api/combined")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []any{"Week 2"}, body["weeks"])
	assert.Equal(t, []any{100.0}, body["gymTaskScores"])
	assert.Equal(t, []any{nil}, body["businessTaskScores"])
}

func TestDailyWeekBody(t *testing.T) {
	h := newTestRouter(t, &stubBuilder{charts: testCharts(t)}, "")
	rec := get(t, h, "/api/daily/week_2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2.0, body["weekNumber"])
	assert.Equal(t, 70.0, body["gymMeasureScore"])
	assert.Nil(t, body["businessMeasureScore"])
}

func TestTaskBody(t *testing.T) {
	h := newTestRouter(t, &stubBuilder{charts: testCharts(t)}, "")
	rec := get(t, h, "/api/tasks/"+url.PathEscape("💊 Nutrition/supplements"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]engine.TaskWeekChart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	week := body["💊 Nutrition/supplements"]["week_2"]
	assert.Equal(t, 3, week.Goal)
	assert.Equal(t, 100.0, week.Scores[engine.DaysPerWeek-1])
}

func TestBuildError(t *testing.T) {
	b := &stubBuilder{err: errors.New("db gone")}
	h := newTestRouter(t, b, "")
	rec := get(t, h, "/api/tasks")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to compute charts"}`, rec.Body.String())
	assert.Equal(t, 1, b.calls)
}

func TestDataFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, engine.CombinedFile), []byte(`{"weeks":[]}`), 0o644))

	h := newTestRouter(t, &stubBuilder{charts: testCharts(t)}, dir)
	rec := get(t, h, "/data/"+engine.CombinedFile)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"weeks":[]}`, rec.Body.String())
}

func TestServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())
	}()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
