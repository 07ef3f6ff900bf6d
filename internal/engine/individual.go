package engine

// TaskProgress builds the cumulative score curve of every task with a goal,
// for every week it has records, regardless of category.
func (s *Scorer) TaskProgress(records []TaskRecord) map[string]map[int]TaskWeekProgress {
	idx := indexRecords(records)

	out := map[string]map[int]TaskWeekProgress{}
	for _, task := range idx.tasks() {
		goal, ok := idx.goal(task)
		if !ok {
			continue
		}
		weeks := make(map[int]TaskWeekProgress, len(idx.weeks[task]))
		for _, week := range idx.weeks[task] {
			recs := idx.records[taskWeek{task: task, week: week}]

			p := TaskWeekProgress{
				TaskName:   task,
				WeekNumber: week,
				Goal:       goal,
				Frequency:  idx.freq[task].text,
			}
			running := 0
			for day := 0; day < DaysPerWeek; day++ {
				date := s.cal.Date(week, day)
				for _, r := range recs {
					if r.Completed && r.Date.Equal(date) {
						running++
					}
				}
				p.Scores[day] = goal.Percent(running)
			}
			weeks[week] = p
		}
		out[task] = weeks
	}
	return out
}
