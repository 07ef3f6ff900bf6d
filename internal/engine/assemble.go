package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func WeekKey(week int) string { return fmt.Sprintf("week_%d", week) }

// ParseWeekKey is the inverse of WeekKey; it also accepts a bare number.
func ParseWeekKey(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "week_"))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

type MeasurePoint struct {
	Week  string  `json:"week"`
	Score float64 `json:"score"`
}

type CombinedSeries struct {
	Category   string
	Key        string
	TaskScores []Score
	Measures   []MeasurePoint
}

// CombinedChart lines up every category's weekly score on one week axis.
type CombinedChart struct {
	WeekNumbers []int
	Weeks       []string
	Series      []CombinedSeries
}

func (c CombinedChart) MarshalJSON() ([]byte, error) {
	o := orderedmap.New[string, any]()
	o.Set("weeks", nonNil(c.Weeks))
	for _, s := range c.Series {
		o.Set(s.Key+"TaskScores", nonNil(s.TaskScores))
	}
	for _, s := range c.Series {
		o.Set(s.Key+"Measures", nonNil(s.Measures))
	}
	return json.Marshal(o)
}

// AssembleCombined aligns weekly category scores on the union of their weeks.
// A week a category has no score for holds a missing value, not zero.
// measures must already be aggregated.
func AssembleCombined(weekly []WeeklyCategoryScore, measures []MeasureRecord, cats Categories) CombinedChart {
	weekSet := map[int]bool{}
	byCat := map[string]map[int]float64{}
	for _, w := range weekly {
		weekSet[w.WeekNumber] = true
		if byCat[w.Category] == nil {
			byCat[w.Category] = map[int]float64{}
		}
		byCat[w.Category][w.WeekNumber] = w.Score
	}

	chart := CombinedChart{WeekNumbers: sortedWeeks(weekSet)}
	for _, w := range chart.WeekNumbers {
		chart.Weeks = append(chart.Weeks, WeekLabel(w))
	}

	lookup := lookupMeasures(measures)
	for _, cat := range cats {
		series := CombinedSeries{
			Category:   cat.Name,
			Key:        cat.Key,
			TaskScores: make([]Score, len(chart.WeekNumbers)),
			Measures:   []MeasurePoint{},
		}
		for i, w := range chart.WeekNumbers {
			if v, ok := byCat[cat.Name][w]; ok {
				series.TaskScores[i] = Some(v)
			}
		}
		for _, m := range lookup.forCategory(cat.Name) {
			series.Measures = append(series.Measures, MeasurePoint{Week: WeekLabel(m.WeekNumber), Score: m.Score})
		}
		chart.Series = append(chart.Series, series)
	}
	return chart
}

type DailySeries struct {
	Category     string
	Key          string
	Scores       [DaysPerWeek]float64
	MeasureScore Score
}

// DailyWeek is the chart bundle for one week: each category's cumulative
// day scores plus that category's measure for the week.
type DailyWeek struct {
	WeekNumber int
	Days       [DaysPerWeek]string
	Series     []DailySeries
}

func (w DailyWeek) MarshalJSON() ([]byte, error) {
	o := orderedmap.New[string, any]()
	o.Set("weekNumber", w.WeekNumber)
	o.Set("days", w.Days)
	for _, s := range w.Series {
		o.Set(s.Key+"Scores", s.Scores)
	}
	for _, s := range w.Series {
		o.Set(s.Key+"MeasureScore", s.MeasureScore)
	}
	return json.Marshal(o)
}

func (w DailyWeek) SeriesFor(category string) (DailySeries, bool) {
	for _, s := range w.Series {
		if s.Category == category {
			return s, true
		}
	}
	return DailySeries{}, false
}

// DailyCharts is ordered by week and encodes as an object keyed "week_{n}".
type DailyCharts []DailyWeek

func (d DailyCharts) MarshalJSON() ([]byte, error) {
	o := orderedmap.New[string, DailyWeek](len(d))
	for _, w := range d {
		o.Set(WeekKey(w.WeekNumber), w)
	}
	return json.Marshal(o)
}

func (d DailyCharts) Week(week int) (DailyWeek, bool) {
	i := sort.Search(len(d), func(i int) bool { return d[i].WeekNumber >= week })
	if i < len(d) && d[i].WeekNumber == week {
		return d[i], true
	}
	return DailyWeek{}, false
}

// AssembleDaily builds one bundle per week that has any daily score.
// Day arrays are always complete: a category without data that week is all zeros.
func AssembleDaily(daily []DailyCategoryScore, measures []MeasureRecord, cats Categories) DailyCharts {
	weekSet := map[int]bool{}
	scores := map[categoryWeek]*[DaysPerWeek]float64{}
	for _, d := range daily {
		if d.DayOffset < 0 || d.DayOffset >= DaysPerWeek {
			continue
		}
		weekSet[d.WeekNumber] = true
		key := categoryWeek{category: d.Category, week: d.WeekNumber}
		if scores[key] == nil {
			scores[key] = &[DaysPerWeek]float64{}
		}
		scores[key][d.DayOffset] = d.Score
	}

	lookup := lookupMeasures(measures)
	out := DailyCharts{}
	for _, week := range sortedWeeks(weekSet) {
		w := DailyWeek{WeekNumber: week, Days: DayLabels}
		for _, cat := range cats {
			s := DailySeries{
				Category:     cat.Name,
				Key:          cat.Key,
				MeasureScore: lookup.score(cat.Name, week),
			}
			if arr := scores[categoryWeek{category: cat.Name, week: week}]; arr != nil {
				s.Scores = *arr
			}
			w.Series = append(w.Series, s)
		}
		out = append(out, w)
	}
	return out
}

type TaskWeekChart struct {
	WeekNumber int                  `json:"weekNumber"`
	Days       [DaysPerWeek]string  `json:"days"`
	Scores     [DaysPerWeek]float64 `json:"scores"`
	Goal       int                  `json:"goal"`
	Frequency  string               `json:"frequency"`
}

type TaskChart struct {
	Name  string
	Weeks []TaskWeekChart
}

// TaskCharts is ordered by task name and encodes as
// {task: {"week_{n}": TaskWeekChart}}.
type TaskCharts []TaskChart

func (t TaskCharts) MarshalJSON() ([]byte, error) {
	o := orderedmap.New[string, *orderedmap.OrderedMap[string, TaskWeekChart]](len(t))
	for _, task := range t {
		weeks := orderedmap.New[string, TaskWeekChart](len(task.Weeks))
		for _, w := range task.Weeks {
			weeks.Set(WeekKey(w.WeekNumber), w)
		}
		o.Set(task.Name, weeks)
	}
	return json.Marshal(o)
}

func (t TaskCharts) Task(name string) (TaskChart, bool) {
	for _, c := range t {
		if c.Name == name {
			return c, true
		}
	}
	return TaskChart{}, false
}

// AssembleTasks lays the per-task progress out as chart documents.
func AssembleTasks(progress map[string]map[int]TaskWeekProgress) TaskCharts {
	names := make([]string, 0, len(progress))
	for name := range progress {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(TaskCharts, 0, len(names))
	for _, name := range names {
		weeks := progress[name]
		nums := make([]int, 0, len(weeks))
		for w := range weeks {
			nums = append(nums, w)
		}
		sort.Ints(nums)

		chart := TaskChart{Name: name}
		for _, w := range nums {
			p := weeks[w]
			chart.Weeks = append(chart.Weeks, TaskWeekChart{
				WeekNumber: p.WeekNumber,
				Days:       DayLabels,
				Scores:     p.Scores,
				Goal:       int(p.Goal),
				Frequency:  p.Frequency,
			})
		}
		out = append(out, chart)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
