package engine

import "testing"

func TestResolveGoal(t *testing.T) {
	tests := []struct {
		in     string
		want   Goal
		wantOK bool
	}{
		{"daily", 7, true},
		{"Daily", 7, true},
		{"3 times a week", 3, true},
		{"Times: 4 per week", 4, true},
		{"5 days/week, 2 times", 5, true},
		{"sometimes", 0, false},
		{"0 times", 0, false},
		{"weekly", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ResolveGoal(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ResolveGoal(%q)=(%d,%v), want (%d,%v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestGoalPercent(t *testing.T) {
	if got := Goal(3).Percent(3); got != 100 {
		t.Fatalf("Percent=%v, want 100", got)
	}
	if got := Goal(0).Percent(3); got != 0 {
		t.Fatalf("Percent with zero goal=%v, want 0", got)
	}
	if got := Goal(-2).Percent(3); got != 0 {
		t.Fatalf("Percent with negative goal=%v, want 0", got)
	}
}
