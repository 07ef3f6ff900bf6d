// Package web serves the computed chart documents over HTTP.
//
// Endpoints:
//   - GET /api/combined         - weekly category scores and measures
//   - GET /api/daily            - every week's daily bundle, keyed "week_{n}"
//   - GET /api/daily/{week}     - one week's bundle; {week} is "3" or "week_3"
//   - GET /api/tasks            - per-task progress for every task
//   - GET /api/tasks/{name}     - one task's weeks; the name may contain slashes
//   - GET /healthz              - liveness
//   - GET /data/*               - the exported JSON files
//
// Charts are recomputed from the stored snapshot on every request.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"habitchart/internal/engine"
)

// Builder computes charts; live=false reads the stored snapshot.
type Builder interface {
	Build(ctx context.Context, live bool) (*engine.Charts, error)
}

type Handler struct {
	builder Builder
	logger  *zap.Logger
}

func NewHandler(builder Builder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{builder: builder, logger: logger}
}

func (h *Handler) charts(w http.ResponseWriter, r *http.Request) (*engine.Charts, bool) {
	charts, err := h.builder.Build(r.Context(), false)
	if err != nil {
		h.logger.Error("build charts", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute charts")
		return nil, false
	}
	return charts, true
}

func (h *Handler) Combined(w http.ResponseWriter, r *http.Request) {
	charts, ok := h.charts(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, charts.Combined)
}

func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	charts, ok := h.charts(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, charts.DailyCharts)
}

func (h *Handler) DailyWeek(w http.ResponseWriter, r *http.Request) {
	week, ok := engine.ParseWeekKey(chi.URLParam(r, "week"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}
	charts, ok := h.charts(w, r)
	if !ok {
		return
	}
	bundle, found := charts.DailyCharts.Week(week)
	if !found {
		writeError(w, http.StatusNotFound, "no daily scores for "+engine.WeekLabel(week))
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	charts, ok := h.charts(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, charts.Tasks)
}

func (h *Handler) Task(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task name")
		return
	}
	charts, ok := h.charts(w, r)
	if !ok {
		return
	}
	task, found := charts.Tasks.Task(name)
	if !found {
		writeError(w, http.StatusNotFound, "unknown task")
		return
	}
	// Encode through TaskCharts so the week keys match the tasks document.
	writeJSON(w, http.StatusOK, engine.TaskCharts{task})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
