package engine

import (
	"encoding/json"
	"time"
)

type valueKind int

const (
	kindAbsent valueKind = iota
	kindText
	kindNumber
	kindBool
)

// Value is one decoded property of a source row: text, number, boolean or absent.
type Value struct {
	kind   valueKind
	text   string
	number float64
	flag   bool
}

func Text(s string) Value { return Value{kind: kindText, text: s} }
func Number(f float64) Value { return Value{kind: kindNumber, number: f} }
func Bool(b bool) Value { return Value{kind: kindBool, flag: b} }
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

func (v Value) Text() (string, bool) {
	if v.kind != kindText {
		return "", false
	}
	return v.text, true
}

func (v Value) Number() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.number, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != kindBool {
		return false, false
	}
	return v.flag, true
}

// Row is the property bag of one source database row, keyed by property name.
type Row map[string]Value

// TextOf returns the text of a property, or "" when missing or not text.
func (r Row) TextOf(field string) string {
	s, _ := r[field].Text()
	return s
}

// TaskRecord is one task checkbox for one calendar day.
type TaskRecord struct {
	Date       time.Time
	TaskName   string
	Frequency  string
	WeekNumber int
	WeekLabel  string
	Completed  bool
}

// MeasureRecord is a self-rated score for a category and week.
type MeasureRecord struct {
	Name       string
	Category   string
	WeekNumber int
	Score      float64
}

type WeeklyCategoryScore struct {
	Category   string
	WeekNumber int
	Score      float64
}

type DailyCategoryScore struct {
	Category   string
	WeekNumber int
	DayOffset  int
	Score      float64
}

// TaskWeekProgress is the cumulative score curve of one task over one week.
type TaskWeekProgress struct {
	TaskName   string
	WeekNumber int
	Goal       Goal
	Frequency  string
	Scores     [DaysPerWeek]float64
}

// Score is an optional number. A missing score means "no data" and encodes as null;
// it is never the same thing as a score of zero.
type Score struct {
	Value float64
	Valid bool
}

func Some(v float64) Score { return Score{Value: v, Valid: true} }

var Missing = Score{}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}
