package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DaysPerWeek = 7

// DayLabels are the short weekday names used on chart axes, Monday first.
var DayLabels = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var (
	parenSuffix      = regexp.MustCompile(`\s*\(\d+\)\s*$`)
	underscoreSuffix = regexp.MustCompile(`_+\d+\s*$`)
)

// CleanName strips the duplicate markers Notion appends to copied pages,
// "Workout (2)" and "Workout_2", and trims the result.
func CleanName(name string) string {
	for {
		next := parenSuffix.ReplaceAllString(name, "")
		next = underscoreSuffix.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == name {
			return next
		}
		name = next
	}
}

type WeekErrorReason string

const (
	WeekMissingToken WeekErrorReason = "missing week token"
	WeekNotNumeric   WeekErrorReason = "non-numeric week"
	WeekOutOfRange   WeekErrorReason = "week out of range"
)

// WeekError reports why a week label could not be turned into a week number.
type WeekError struct {
	Label  string
	Reason WeekErrorReason
}

func (e *WeekError) Error() string {
	return fmt.Sprintf("week label %q: %s", e.Label, e.Reason)
}

// ParseWeek extracts the week number from labels such as "Week 5".
// The label must contain "Week" and end with an integer token.
func ParseWeek(label string) (int, error) {
	if !strings.Contains(label, "Week") {
		return 0, &WeekError{Label: label, Reason: WeekMissingToken}
	}
	fields := strings.Fields(label)
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, &WeekError{Label: label, Reason: WeekNotNumeric}
	}
	if n < 1 {
		return 0, &WeekError{Label: label, Reason: WeekOutOfRange}
	}
	return n, nil
}

func WeekLabel(week int) string { return fmt.Sprintf("Week %d", week) }

// Calendar maps week numbers onto dates. Week 1 starts on Anchor.
type Calendar struct {
	Anchor time.Time
}

func NewCalendar(anchor time.Time) Calendar {
	y, m, d := anchor.Date()
	return Calendar{Anchor: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (c Calendar) WeekStart(week int) time.Time {
	return c.Anchor.AddDate(0, 0, (week-1)*DaysPerWeek)
}

func (c Calendar) Date(week, dayOffset int) time.Time {
	return c.WeekStart(week).AddDate(0, 0, dayOffset)
}

// Fields names the source properties the normalizer reads.
type Fields struct {
	Name        string              `yaml:"name" json:"name"`
	Frequency   string              `yaml:"frequency" json:"frequency"`
	TaskWeek    string              `yaml:"task_week" json:"task_week"`
	MeasureWeek string              `yaml:"measure_week" json:"measure_week"`
	Description string              `yaml:"description" json:"description"`
	Score       string              `yaml:"score" json:"score"`
	Days        [DaysPerWeek]string `yaml:"days" json:"days"`
}

func DefaultFields() Fields {
	return Fields{
		Name:        "Name",
		Frequency:   "Frequency",
		TaskWeek:    "week",
		MeasureWeek: "Week",
		Description: "Description",
		Score:       "Score",
		Days:        [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	}
}

// Drop describes a source row that was left out of the computation.
type Drop struct {
	Row    int
	Kind   string
	Reason string
}

// DropReport collects the rows excluded during normalization.
type DropReport struct {
	Drops []Drop
}

func (d *DropReport) add(row int, kind, reason string) {
	if d == nil {
		return
	}
	d.Drops = append(d.Drops, Drop{Row: row, Kind: kind, Reason: reason})
}

func (d *DropReport) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Drops)
}

const (
	DropKindTask    = "task"
	DropKindMeasure = "measure"

	reasonNoDescription = "missing description"
)

type Normalizer struct {
	cal    Calendar
	fields Fields
}

func NewNormalizer(cal Calendar, fields Fields) *Normalizer {
	return &Normalizer{cal: cal, fields: fields}
}

// Tasks expands each task row into one record per weekday that carries a checkbox.
// Rows without a parseable week are dropped and noted in report (which may be nil).
func (n *Normalizer) Tasks(rows []Row, report *DropReport) []TaskRecord {
	var out []TaskRecord
	for i, row := range rows {
		label := row.TextOf(n.fields.TaskWeek)
		week, err := ParseWeek(label)
		if err != nil {
			report.add(i, DropKindTask, dropReason(err))
			continue
		}
		name := CleanName(row.TextOf(n.fields.Name))
		freq := row.TextOf(n.fields.Frequency)
		for offset, day := range n.fields.Days {
			done, ok := row[day].Bool()
			if !ok {
				continue
			}
			out = append(out, TaskRecord{
				Date:       n.cal.Date(week, offset),
				TaskName:   name,
				Frequency:  freq,
				WeekNumber: week,
				WeekLabel:  label,
				Completed:  done,
			})
		}
	}
	return out
}

// Measures keeps the rows that carry a description and a parseable week.
func (n *Normalizer) Measures(rows []Row, report *DropReport) []MeasureRecord {
	var out []MeasureRecord
	for i, row := range rows {
		category := row.TextOf(n.fields.Description)
		if category == "" {
			report.add(i, DropKindMeasure, reasonNoDescription)
			continue
		}
		week, err := ParseWeek(row.TextOf(n.fields.MeasureWeek))
		if err != nil {
			report.add(i, DropKindMeasure, dropReason(err))
			continue
		}
		score, _ := row[n.fields.Score].Number()
		out = append(out, MeasureRecord{
			Name:       CleanName(row.TextOf(n.fields.Name)),
			Category:   category,
			WeekNumber: week,
			Score:      score,
		})
	}
	return out
}

func dropReason(err error) string {
	var we *WeekError
	if errors.As(err, &we) {
		return string(we.Reason)
	}
	return err.Error()
}
