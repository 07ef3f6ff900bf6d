package engine

import "sort"

type categoryWeek struct {
	category string
	week     int
}

// AggregateMeasures collapses measures sharing a category and week into one
// record holding their mean score and the first name seen for the group.
func AggregateMeasures(records []MeasureRecord) []MeasureRecord {
	groups := map[categoryWeek][]float64{}
	names := map[categoryWeek]string{}
	for _, r := range records {
		key := categoryWeek{category: r.Category, week: r.WeekNumber}
		if _, ok := groups[key]; !ok {
			names[key] = r.Name
		}
		groups[key] = append(groups[key], r.Score)
	}

	out := make([]MeasureRecord, 0, len(groups))
	for key, scores := range groups {
		// Summing in sorted order keeps the mean bit-identical under any input order.
		sort.Float64s(scores)
		out = append(out, MeasureRecord{
			Name:       names[key],
			Category:   key.category,
			WeekNumber: key.week,
			Score:      mean(scores),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].WeekNumber < out[j].WeekNumber
	})
	return out
}

// measureLookup indexes aggregated measures by category and week.
type measureLookup map[categoryWeek]MeasureRecord

func lookupMeasures(aggregated []MeasureRecord) measureLookup {
	m := make(measureLookup, len(aggregated))
	for _, r := range aggregated {
		m[categoryWeek{category: r.Category, week: r.WeekNumber}] = r
	}
	return m
}

func (m measureLookup) score(category string, week int) Score {
	r, ok := m[categoryWeek{category: category, week: week}]
	if !ok {
		return Missing
	}
	return Some(r.Score)
}

func (m measureLookup) forCategory(category string) []MeasureRecord {
	var out []MeasureRecord
	for _, r := range m {
		if r.Category == category {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out
}
