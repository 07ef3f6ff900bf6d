package engine

import (
	"testing"
	"time"
)

const (
	workout   = "👟 Workout"
	nutrition = "💊 Nutrition/supplements"
	twitter   = "Post on Twitter"
	project   = "Work on project 1 hours a day"
)

func testCalendar(t *testing.T) Calendar {
	t.Helper()
	anchor, err := time.Parse("2006-01-02", "2025-10-27")
	if err != nil {
		t.Fatalf("parse anchor: %v", err)
	}
	return NewCalendar(anchor)
}

func testScorer(t *testing.T) *Scorer {
	t.Helper()
	return NewScorer(testCalendar(t), DefaultCategories())
}

// rec builds a record for the given weekday (0 = Monday) of week.
func rec(cal Calendar, task, freq string, week, day int, done bool) TaskRecord {
	return TaskRecord{
		Date:       cal.Date(week, day),
		TaskName:   task,
		Frequency:  freq,
		WeekNumber: week,
		WeekLabel:  WeekLabel(week),
		Completed:  done,
	}
}

// weekOf builds one record per day of week; done[i] is Monday+i.
func weekOf(cal Calendar, task, freq string, week int, done ...bool) []TaskRecord {
	out := make([]TaskRecord, 0, len(done))
	for day, d := range done {
		out = append(out, rec(cal, task, freq, week, day, d))
	}
	return out
}

// sampleRecords is a small snapshot: two gym tasks over weeks 1 and 3 plus
// business tasks, one of which has no goal.
func sampleRecords(cal Calendar) []TaskRecord {
	var out []TaskRecord
	out = append(out, weekOf(cal, workout, "daily", 3, true, true, true, true, true, false, false)...)
	out = append(out, weekOf(cal, workout, "daily", 1, true, false, true, false, false, false, false)...)
	out = append(out, weekOf(cal, nutrition, "3 times a week", 3, true, false, true, false, true, false, false)...)
	out = append(out, weekOf(cal, project, "5 times a week", 3, true, true, false, false, true, false, false)...)
	out = append(out, weekOf(cal, twitter, "sometimes", 3, true, true, true, true, true, true, true)...)
	return out
}
