package engine

// Output file names of the three chart documents.
const (
	CombinedFile = "combined-chart-data.json"
	DailyFile    = "daily-charts-data.json"
	TasksFile    = "individual-tasks-data.json"
)

// Charts holds every derived result of one computation.
type Charts struct {
	Weekly   []WeeklyCategoryScore
	Daily    []DailyCategoryScore
	Measures []MeasureRecord
	Progress map[string]map[int]TaskWeekProgress

	Combined    CombinedChart
	DailyCharts DailyCharts
	Tasks       TaskCharts
}

// Compute runs every scorer over one snapshot of records.
func (s *Scorer) Compute(tasks []TaskRecord, measures []MeasureRecord) *Charts {
	c := &Charts{
		Weekly:   s.CategoryScores(tasks),
		Daily:    s.DailyScores(tasks),
		Measures: AggregateMeasures(measures),
		Progress: s.TaskProgress(tasks),
	}
	c.Combined = AssembleCombined(c.Weekly, c.Measures, s.categories)
	c.DailyCharts = AssembleDaily(c.Daily, c.Measures, s.categories)
	c.Tasks = AssembleTasks(c.Progress)
	return c
}

// Documents returns the chart documents keyed by output file name.
func (c *Charts) Documents() map[string]any {
	return map[string]any{
		CombinedFile: c.Combined,
		DailyFile:    c.DailyCharts,
		TasksFile:    c.Tasks,
	}
}

// WeeklyScore returns a category's score for a week, or Missing.
func (c *Charts) WeeklyScore(category string, week int) Score {
	for _, w := range c.Weekly {
		if w.Category == category && w.WeekNumber == week {
			return Some(w.Score)
		}
	}
	return Missing
}

// ReportRow is one category's line in a weekly report.
type ReportRow struct {
	Category     string
	TaskScore    Score
	MeasureScore Score
}

type WeekReport struct {
	WeekNumber int
	Rows       []ReportRow
}

// Report lists every week that has a category score or a measure, in week order,
// with one row per category. week > 0 restricts the report to that week.
func (c *Charts) Report(cats Categories, week int) []WeekReport {
	weekSet := map[int]bool{}
	for _, w := range c.Weekly {
		weekSet[w.WeekNumber] = true
	}
	for _, m := range c.Measures {
		weekSet[m.WeekNumber] = true
	}
	lookup := lookupMeasures(c.Measures)

	var out []WeekReport
	for _, w := range sortedWeeks(weekSet) {
		if week > 0 && w != week {
			continue
		}
		r := WeekReport{WeekNumber: w}
		for _, cat := range cats {
			r.Rows = append(r.Rows, ReportRow{
				Category:     cat.Name,
				TaskScore:    c.WeeklyScore(cat.Name, w),
				MeasureScore: lookup.score(cat.Name, w),
			})
		}
		out = append(out, r)
	}
	return out
}
