package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"habitchart/internal/storage"
)

// ErrNoSource is returned when a live fetch is requested without a configured source.
var ErrNoSource = errors.New("no data source configured")

// Source yields the raw rows of the task and measure databases.
type Source interface {
	FetchTasks(ctx context.Context) ([]Row, error)
	FetchMeasures(ctx context.Context) ([]Row, error)
}

type Service struct {
	db         *sql.DB
	records    *storage.RecordRepo
	measures   *storage.MeasureRepo
	syncs      *storage.SyncRepo
	source     Source
	normalizer *Normalizer
	scorer     *Scorer
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires the snapshot store, the source and the scorer. source may be nil
// when only the stored snapshot is used.
func NewService(db *sql.DB, source Source, normalizer *Normalizer, scorer *Scorer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:         db,
		records:    storage.NewRecordRepo(db),
		measures:   storage.NewMeasureRepo(db),
		syncs:      storage.NewSyncRepo(db),
		source:     source,
		normalizer: normalizer,
		scorer:     scorer,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) Scorer() *Scorer { return s.scorer }

type fetched struct {
	taskRows    int
	measureRows int
	tasks       []TaskRecord
	measures    []MeasureRecord
	report      DropReport
}

func (s *Service) fetch(ctx context.Context) (*fetched, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	taskRows, err := s.source.FetchTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	measureRows, err := s.source.FetchMeasures(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch measures: %w", err)
	}

	f := &fetched{taskRows: len(taskRows), measureRows: len(measureRows)}
	f.tasks = s.normalizer.Tasks(taskRows, &f.report)
	f.measures = s.normalizer.Measures(measureRows, &f.report)
	for _, d := range f.report.Drops {
		s.logger.Debug("row dropped",
			zap.String("kind", d.Kind),
			zap.Int("row", d.Row),
			zap.String("reason", d.Reason))
	}
	s.logger.Info("source fetched",
		zap.Int("task_rows", f.taskRows),
		zap.Int("measure_rows", f.measureRows),
		zap.Int("task_records", len(f.tasks)),
		zap.Int("measure_records", len(f.measures)),
		zap.Int("dropped", f.report.Len()))
	return f, nil
}

type SyncResult struct {
	Run   storage.SyncRun
	Drops []Drop
}

// Sync fetches both databases and replaces the stored snapshot in one transaction.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	started := s.now()
	f, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	run := storage.SyncRun{
		StartedAt:      started,
		TaskRows:       f.taskRows,
		MeasureRows:    f.measureRows,
		TaskRecords:    len(f.tasks),
		MeasureRecords: len(f.measures),
		Dropped:        f.report.Len(),
	}
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewRecordRepo(tx).ReplaceAll(ctx, toStoredTasks(f.tasks)); err != nil {
			return err
		}
		if err := storage.NewMeasureRepo(tx).ReplaceAll(ctx, toStoredMeasures(f.measures)); err != nil {
			return err
		}
		run.FinishedAt = s.now()
		id, err := storage.NewSyncRepo(tx).Insert(ctx, run)
		if err != nil {
			return err
		}
		run.ID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	s.logger.Info("snapshot stored", zap.Int64("sync_id", run.ID))
	return &SyncResult{Run: run, Drops: f.report.Drops}, nil
}

// Load reads the stored snapshot.
func (s *Service) Load(ctx context.Context) ([]TaskRecord, []MeasureRecord, error) {
	storedTasks, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	storedMeasures, err := s.measures.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return fromStoredTasks(storedTasks), fromStoredMeasures(storedMeasures), nil
}

// Build computes every chart, from a live fetch or from the stored snapshot.
func (s *Service) Build(ctx context.Context, live bool) (*Charts, error) {
	var (
		tasks    []TaskRecord
		measures []MeasureRecord
	)
	if live {
		f, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		tasks, measures = f.tasks, f.measures
	} else {
		var err error
		tasks, measures, err = s.Load(ctx)
		if err != nil {
			return nil, err
		}
	}

	charts := s.scorer.Compute(tasks, measures)
	if len(charts.Weekly) == 0 {
		s.logger.Warn("no category scores; check category task names and frequencies")
	}
	s.logger.Info("charts computed",
		zap.Int("weeks", len(charts.Combined.Weeks)),
		zap.Int("daily_weeks", len(charts.DailyCharts)),
		zap.Int("tasks", len(charts.Tasks)))
	return charts, nil
}

// Export writes the chart documents and returns the written paths in a fixed order.
func (s *Service) Export(charts *Charts, w *storage.ChartWriter) ([]string, error) {
	docs := charts.Documents()
	var paths []string
	for _, name := range []string{CombinedFile, DailyFile, TasksFile} {
		path, err := w.WriteJSON(name, docs[name])
		if err != nil {
			return paths, err
		}
		s.logger.Info("chart written", zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// Report computes charts from the snapshot and returns the weekly report; week 0 means all weeks.
func (s *Service) Report(ctx context.Context, week int) ([]WeekReport, error) {
	charts, err := s.Build(ctx, false)
	if err != nil {
		return nil, err
	}
	return charts.Report(s.scorer.Categories(), week), nil
}

func (s *Service) LastSync(ctx context.Context) (*storage.SyncRun, error) {
	return s.syncs.Last(ctx)
}

// RecordCount is the number of task records in the stored snapshot.
func (s *Service) RecordCount(ctx context.Context) (int, error) {
	return s.records.Count(ctx)
}

func toStoredTasks(recs []TaskRecord) []storage.TaskRecord {
	out := make([]storage.TaskRecord, len(recs))
	for i, r := range recs {
		out[i] = storage.TaskRecord{
			Day:        r.Date,
			TaskName:   r.TaskName,
			Frequency:  r.Frequency,
			WeekNumber: r.WeekNumber,
			WeekLabel:  r.WeekLabel,
			Completed:  r.Completed,
		}
	}
	return out
}

func fromStoredTasks(recs []storage.TaskRecord) []TaskRecord {
	out := make([]TaskRecord, len(recs))
	for i, r := range recs {
		out[i] = TaskRecord{
			Date:       r.Day,
			TaskName:   r.TaskName,
			Frequency:  r.Frequency,
			WeekNumber: r.WeekNumber,
			WeekLabel:  r.WeekLabel,
			Completed:  r.Completed,
		}
	}
	return out
}

func toStoredMeasures(recs []MeasureRecord) []storage.MeasureRecord {
	out := make([]storage.MeasureRecord, len(recs))
	for i, r := range recs {
		out[i] = storage.MeasureRecord{Name: r.Name, Category: r.Category, WeekNumber: r.WeekNumber, Score: r.Score}
	}
	return out
}

func fromStoredMeasures(recs []storage.MeasureRecord) []MeasureRecord {
	out := make([]MeasureRecord, len(recs))
	for i, r := range recs {
		out[i] = MeasureRecord{Name: r.Name, Category: r.Category, WeekNumber: r.WeekNumber, Score: r.Score}
	}
	return out
}
