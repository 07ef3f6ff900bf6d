package storage

import "time"

// DayLayout is how calendar days are stored.
const DayLayout = "2006-01-02"

type TaskRecord struct {
	ID         int64
	Day        time.Time
	TaskName   string
	Frequency  string
	WeekNumber int
	WeekLabel  string
	Completed  bool
}

type MeasureRecord struct {
	ID         int64
	Name       string
	Category   string
	WeekNumber int
	Score      float64
}

// SyncRun records one snapshot refresh.
type SyncRun struct {
	ID             int64
	StartedAt      time.Time
	FinishedAt     time.Time
	TaskRows       int
	MeasureRows    int
	TaskRecords    int
	MeasureRecords int
	Dropped        int
}
