package engine

import (
	"errors"
	"fmt"
)

// Category groups task names under a chart series. Key prefixes the
// series fields in the chart documents ("gym" -> "gymTaskScores").
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Key   string   `yaml:"key" json:"key"`
	Tasks []string `yaml:"tasks" json:"tasks"`
}

// Categories is ordered; chart series and sorted results follow this order.
type Categories []Category

func DefaultCategories() Categories {
	return Categories{
		{
			Name:  "Gym",
			Key:   "gym",
			Tasks: []string{"👟 Workout", "💊 Nutrition/supplements"},
		},
		{
			Name: "Business",
			Key:  "business",
			Tasks: []string{
				"Work on project 1 hours a day",
				"Learn/explore new AI tools 30 min/day, 5 days/week",
				"Post on Twitter",
				"Short workout",
			},
		},
	}
}

func (cs Categories) Validate() error {
	if len(cs) == 0 {
		return errors.New("at least one category is required")
	}
	names := map[string]bool{}
	keys := map[string]bool{}
	for i, c := range cs {
		if c.Name == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
		if c.Key == "" {
			return fmt.Errorf("category %q: key is required", c.Name)
		}
		if names[c.Name] {
			return fmt.Errorf("category %q: duplicate name", c.Name)
		}
		if keys[c.Key] {
			return fmt.Errorf("category %q: duplicate key %q", c.Name, c.Key)
		}
		names[c.Name] = true
		keys[c.Key] = true
	}
	return nil
}

// members returns the category's task names once each, in configured order.
func (c Category) members() []string {
	seen := make(map[string]bool, len(c.Tasks))
	out := make([]string, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
