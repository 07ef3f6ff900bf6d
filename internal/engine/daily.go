package engine

// DailyScores computes, for every category, week and weekday, the mean of the
// category's cumulative task scores: completions dated on or before that day
// divided by the goal of the task's frequency in that week. Tasks without a goal
// that week do not take part; a week in which none of the category's tasks has a
// goal produces no rows.
func (s *Scorer) DailyScores(records []TaskRecord) []DailyCategoryScore {
	idx := indexRecords(records)

	var out []DailyCategoryScore
	for _, cat := range s.categories {
		members := cat.members()

		weeks := map[int]bool{}
		for _, task := range members {
			for _, w := range idx.weeks[task] {
				weeks[w] = true
			}
		}

		for _, week := range sortedWeeks(weeks) {
			var curves [][DaysPerWeek]float64
			for _, task := range members {
				recs, ok := idx.records[taskWeek{task: task, week: week}]
				if !ok {
					continue
				}
				goal, ok := idx.weekGoal(task, week)
				if !ok {
					continue
				}
				curves = append(curves, s.cumulativeThrough(recs, week, goal))
			}
			if len(curves) == 0 {
				continue
			}

			for day := 0; day < DaysPerWeek; day++ {
				scores := make([]float64, len(curves))
				for i := range curves {
					scores[i] = curves[i][day]
				}
				out = append(out, DailyCategoryScore{
					Category:   cat.Name,
					WeekNumber: week,
					DayOffset:  day,
					Score:      mean(scores),
				})
			}
		}
	}
	return out
}

// cumulativeThrough scores, for each weekday, the completions dated on or before it.
func (s *Scorer) cumulativeThrough(recs []TaskRecord, week int, goal Goal) [DaysPerWeek]float64 {
	var curve [DaysPerWeek]float64
	for day := 0; day < DaysPerWeek; day++ {
		cutoff := s.cal.Date(week, day)
		done := 0
		for _, r := range recs {
			if r.Completed && !r.Date.After(cutoff) {
				done++
			}
		}
		curve[day] = goal.Percent(done)
	}
	return curve
}
