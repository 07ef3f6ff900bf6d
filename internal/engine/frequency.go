package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Goal is the number of completions a task targets per week.
type Goal int

const DailyGoal Goal = DaysPerWeek

var firstDigits = regexp.MustCompile(`\d+`)

// ResolveGoal turns a frequency label into a weekly goal.
// "daily" means every day; "N times ..." uses the first number in the label.
// Anything else, and any goal below 1, has no goal.
func ResolveGoal(frequency string) (Goal, bool) {
	lower := strings.ToLower(frequency)
	switch {
	case strings.Contains(lower, "daily"):
		return DailyGoal, true
	case strings.Contains(lower, "times"):
		digits := firstDigits.FindString(frequency)
		if digits == "" {
			return 0, false
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return 0, false
		}
		return Goal(n), true
	default:
		return 0, false
	}
}

// Percent returns count/goal as a percentage. A non-positive goal scores 0.
func (g Goal) Percent(count int) float64 {
	if g <= 0 {
		return 0
	}
	return float64(count) / float64(g) * 100
}
