package engine

import (
	"sort"
	"time"
)

// Scorer computes completion scores from task records.
type Scorer struct {
	cal        Calendar
	categories Categories
}

func NewScorer(cal Calendar, categories Categories) *Scorer {
	return &Scorer{cal: cal, categories: categories}
}

func (s *Scorer) Calendar() Calendar { return s.cal }
func (s *Scorer) Categories() Categories { return s.categories }

type taskWeek struct {
	task string
	week int
}

type taskFrequency struct {
	text string
	date time.Time
	goal Goal
	ok   bool
}

// earlier reports whether r should replace cur as the record a frequency is read from.
// Ties between duplicate rows go to the lexically smaller label so input order never matters.
func (cur taskFrequency) earlier(r TaskRecord) bool {
	return r.Date.Before(cur.date) || (r.Date.Equal(cur.date) && r.Frequency < cur.text)
}

// taskIndex groups records by task and by (task, week).
type taskIndex struct {
	records  map[taskWeek][]TaskRecord
	weeks    map[string][]int
	freq     map[string]taskFrequency
	weekFreq map[taskWeek]taskFrequency
}

func indexRecords(records []TaskRecord) *taskIndex {
	idx := &taskIndex{
		records:  map[taskWeek][]TaskRecord{},
		weeks:    map[string][]int{},
		freq:     map[string]taskFrequency{},
		weekFreq: map[taskWeek]taskFrequency{},
	}
	for _, r := range records {
		key := taskWeek{task: r.TaskName, week: r.WeekNumber}
		if _, ok := idx.records[key]; !ok {
			idx.weeks[r.TaskName] = append(idx.weeks[r.TaskName], r.WeekNumber)
		}
		idx.records[key] = append(idx.records[key], r)

		// A task's frequency is read from its earliest record, overall and per week.
		next := taskFrequency{text: r.Frequency, date: r.Date}
		if cur, seen := idx.freq[r.TaskName]; !seen || cur.earlier(r) {
			idx.freq[r.TaskName] = next
		}
		if cur, seen := idx.weekFreq[key]; !seen || cur.earlier(r) {
			idx.weekFreq[key] = next
		}
	}
	for task, f := range idx.freq {
		f.goal, f.ok = ResolveGoal(f.text)
		idx.freq[task] = f
	}
	for key, f := range idx.weekFreq {
		f.goal, f.ok = ResolveGoal(f.text)
		idx.weekFreq[key] = f
	}
	for task := range idx.weeks {
		sort.Ints(idx.weeks[task])
	}
	return idx
}

func (idx *taskIndex) goal(task string) (Goal, bool) {
	f, ok := idx.freq[task]
	if !ok || !f.ok {
		return 0, false
	}
	return f.goal, true
}

// weekGoal is the goal read from the task's earliest record in week.
func (idx *taskIndex) weekGoal(task string, week int) (Goal, bool) {
	f, ok := idx.weekFreq[taskWeek{task: task, week: week}]
	if !ok || !f.ok {
		return 0, false
	}
	return f.goal, true
}

func (idx *taskIndex) tasks() []string {
	out := make([]string, 0, len(idx.weeks))
	for t := range idx.weeks {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func completedCount(records []TaskRecord) int {
	n := 0
	for _, r := range records {
		if r.Completed {
			n++
		}
	}
	return n
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sortedWeeks returns the keys of a week set in ascending order.
func sortedWeeks(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}
