package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitchart/internal/engine"
)

// habitchart theme (CLI + TUI).

const (
	IconChart    = "📈"
	IconCheck    = "✓"
	IconSync     = "🔄"
	IconCalendar = "🗓️"
	IconTarget   = "🎯"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconServer   = "🌐"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedTab = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary).Padding(0, 1)
	Tab         = lipgloss.NewStyle().Foreground(cMuted).Padding(0, 1)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Created is the line printed for every written file.
func Created(path string) string {
	return Good.Render(IconCheck+" Created:") + " " + path
}

// Percent colors a score: gold at or above 100, green from 70, orange from 40, red below.
func Percent(v float64) string {
	s := fmt.Sprintf("%6.1f%%", v)
	switch {
	case v >= 100:
		return Gold.Render(s)
	case v >= 70:
		return Good.Render(s)
	case v >= 40:
		return Warn.Render(s)
	default:
		return Bad.Render(s)
	}
}

// ScoreText renders an optional score; missing scores show as a dash, never 0.
func ScoreText(s engine.Score) string {
	if !s.Valid {
		return Muted.Render(strings.Repeat(" ", 6) + "—")
	}
	return Percent(s.Value)
}

// Bar draws a fixed-width progress bar; values past 100% fill the bar.
func Bar(percent float64, width int) string {
	if width < 3 {
		width = 3
	}
	ratio := percent / 100
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
