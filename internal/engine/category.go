package engine

// CategoryScores averages each category's weekly task scores.
// A task's weekly score is completed/goal*100 over all of its records in that week.
// Tasks without a goal are skipped; weeks with no scored task are omitted.
func (s *Scorer) CategoryScores(records []TaskRecord) []WeeklyCategoryScore {
	idx := indexRecords(records)

	var out []WeeklyCategoryScore
	for _, cat := range s.categories {
		byWeek := map[int][]float64{}
		for _, task := range cat.members() {
			goal, ok := idx.goal(task)
			if !ok {
				continue
			}
			for _, week := range idx.weeks[task] {
				done := completedCount(idx.records[taskWeek{task: task, week: week}])
				byWeek[week] = append(byWeek[week], goal.Percent(done))
			}
		}

		weeks := make(map[int]bool, len(byWeek))
		for w := range byWeek {
			weeks[w] = true
		}
		for _, week := range sortedWeeks(weeks) {
			out = append(out, WeeklyCategoryScore{
				Category:   cat.Name,
				WeekNumber: week,
				Score:      mean(byWeek[week]),
			})
		}
	}
	return out
}
