package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitchart/internal/engine"
	"habitchart/internal/ui"
)

// buildFunc computes charts; false selects the stored snapshot.
type buildFunc func(ctx context.Context, live bool) (*engine.Charts, error)

type boardModel struct {
	ctx   context.Context
	build buildFunc

	width  int
	height int

	charts *engine.Charts
	week   int // index into charts.DailyCharts

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	charts *engine.Charts
	err    error
}

func newBoardModel(ctx context.Context, build buildFunc) boardModel {
	return boardModel{
		ctx:     ctx,
		build:   build,
		loading: true,
		lastLog: "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		charts, err := m.build(m.ctx, false)
		return loadedMsg{charts: charts, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.charts = msg.charts
		// Open on the latest week.
		m.week = len(m.charts.DailyCharts) - 1
		if m.week < 0 {
			m.week = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "left", "h":
			if m.week > 0 {
				m.week--
			}
			return m, nil
		case "right", "l":
			if m.charts != nil && m.week < len(m.charts.DailyCharts)-1 {
				m.week++
			}
			return m, nil
		case "home", "g":
			m.week = 0
			return m, nil
		case "end", "G":
			if m.charts != nil && len(m.charts.DailyCharts) > 0 {
				m.week = len(m.charts.DailyCharts) - 1
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading && m.charts == nil {
		return "habitchart: loading…\n"
	}
	if m.charts == nil || len(m.charts.DailyCharts) == 0 {
		return "No weeks to show. Run `hc sync` first.\n\nPress q to quit.\n" + m.renderFooter()
	}

	week := m.charts.DailyCharts[m.week]
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	for _, s := range week.Series {
		b.WriteString(m.renderCategory(week.WeekNumber, s))
		b.WriteString("\n")
	}
	b.WriteString(m.renderTasks(week.WeekNumber))
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderTabs() string {
	tabs := make([]string, 0, len(m.charts.DailyCharts))
	for i, w := range m.charts.DailyCharts {
		label := engine.WeekLabel(w.WeekNumber)
		if i == m.week {
			tabs = append(tabs, ui.SelectedTab.Render(label))
		} else {
			tabs = append(tabs, ui.Tab.Render(label))
		}
	}
	return ui.Heading(ui.IconChart, "habitchart") + "  " + strings.Join(tabs, "")
}

func (m boardModel) renderCategory(week int, s engine.DailySeries) string {
	lines := []string{
		ui.PanelTitle.Render(s.Category) + "  " +
			ui.LabelValue("week", ui.ScoreText(m.charts.WeeklyScore(s.Category, week))) + "  " +
			ui.LabelValue("measure", ui.ScoreText(s.MeasureScore)),
	}
	for day, v := range s.Scores {
		lines = append(lines, fmt.Sprintf("%s %s %s", engine.DayLabels[day], ui.Bar(v, m.barWidth()), ui.Percent(v)))
	}
	return ui.Panel.Render(strings.Join(lines, "\n"))
}

func (m boardModel) renderTasks(week int) string {
	var lines []string
	lines = append(lines, ui.H2.Render("Tasks"))
	for _, t := range m.charts.Tasks {
		for _, w := range t.Weeks {
			if w.WeekNumber != week {
				continue
			}
			final := w.Scores[engine.DaysPerWeek-1]
			name := padRight(t.Name, 36)
			lines = append(lines, fmt.Sprintf("%s %s %s %s", name, ui.Bar(final, 14), ui.Percent(final), ui.Muted.Render(fmt.Sprintf("goal %d", w.Goal))))
		}
	}
	if len(lines) == 1 {
		lines = append(lines, ui.Muted.Render("(no scored tasks this week)"))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m boardModel) renderFooter() string {
	keys := ui.Muted.Render("←/→ week · g/G first/last · r reload · q quit")
	return "\n" + keys + "\n" + m.lastLog
}

func (m boardModel) barWidth() int {
	if m.width <= 0 {
		return 28
	}
	w := m.width - 24
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
