package ui

import (
	"fmt"
	"strings"

	"habitflow/internal/analytics"
	"habitflow/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// trendBarHeight is the tallest a trend column can grow.
const trendBarHeight = 4

// AnalyticsPane shows completion statistics for the logged-in user.
type AnalyticsPane struct {
	session *session.Session
	summary analytics.Summary
	today   analytics.TodayStats
	focused bool
	width   int
	height  int
	styles  *Styles
}

// NewAnalyticsPane creates a new analytics pane.
func NewAnalyticsPane(sess *session.Session, styles *Styles) *AnalyticsPane {
	p := &AnalyticsPane{
		session: sess,
		styles:  styles,
	}
	p.refresh()
	return p
}

// SetStyles swaps the style set, used when the theme changes.
func (p *AnalyticsPane) SetStyles(styles *Styles) {
	p.styles = styles
}

// refresh recomputes the summary from the session state.
func (p *AnalyticsPane) refresh() {
	habits := p.session.Habits()
	p.summary = analytics.Summarize(p.session.History(), len(habits), p.session.Now())
	p.today = analytics.Today(habits)
}

// SetSize sets the pane dimensions.
func (p *AnalyticsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *AnalyticsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *AnalyticsPane) IsFocused() bool {
	return p.focused
}

// Update handles messages for the analytics pane.
func (p *AnalyticsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case habitToggledMsg, habitAddedMsg, habitDeletedMsg, habitRestoredMsg,
		undoResultMsg, redoResultMsg, dailyResetMsg, analyticsRefreshedMsg:
		p.refresh()
	}
	return nil
}

// View renders the analytics pane.
func (p *AnalyticsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("📊 ANALYTICS"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")
	b.WriteString("\n")

	b.WriteString(p.statLine("Today", fmt.Sprintf("%d/%d (%d%%)", p.today.Completed, p.today.Total, p.today.Rate)))
	b.WriteString(p.statLine("Consistency", fmt.Sprintf("%d%%", p.summary.Consistency)))
	b.WriteString(p.statLine("Completions", fmt.Sprintf("%d", p.summary.TotalCompletions)))
	b.WriteString(p.statLine("Best day", p.summary.BestWeekday))

	// 7-day trend as vertical bars
	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(p.renderTrend())

	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Completed vs missed"))
	b.WriteString("\n")
	b.WriteString(p.renderDistribution())

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// statLine formats one "label: value" row.
func (p *AnalyticsPane) statLine(label, value string) string {
	return "  " + p.styles.StatLabelStyle.Render(label+": ") +
		p.styles.StatValueStyle.Render(value) + "\n"
}

// renderTrend draws the 7-day trend as columns of blocks, oldest on
// the left, with weekday initials underneath.
func (p *AnalyticsPane) renderTrend() string {
	points := p.summary.Trend
	if len(points) == 0 {
		return "  " + p.styles.StatLabelStyle.Render("no data") + "\n"
	}

	maxCount := 1
	for _, pt := range points {
		if pt.Count > maxCount {
			maxCount = pt.Count
		}
	}

	heights := make([]int, len(points))
	for i, pt := range points {
		if pt.Count > 0 {
			heights[i] = max(1, pt.Count*trendBarHeight/maxCount)
		}
	}

	var b strings.Builder
	for row := trendBarHeight; row >= 1; row-- {
		b.WriteString("  ")
		for i := range points {
			cell := " "
			if heights[i] >= row {
				cell = p.styles.StreakStyle.Render("█")
			}
			b.WriteString(cell)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	// Weekday initials
	b.WriteString("  ")
	for _, pt := range points {
		initial := "?"
		if pt.Weekday != "" {
			initial = pt.Weekday[:1]
		}
		b.WriteString(p.styles.StatLabelStyle.Render(initial))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	return b.String()
}

// renderDistribution draws the completed/missed split as a single bar
// with the counts alongside.
func (p *AnalyticsPane) renderDistribution() string {
	d := p.summary.Distribution
	total := d.Completed + d.Missed
	if total == 0 {
		return "  " + p.styles.StatLabelStyle.Render("no data") + "\n"
	}

	filled := d.Completed * goalBarWidth / total
	if d.Completed > 0 && filled == 0 {
		filled = 1
	}

	bar := strings.Repeat(p.styles.GoalBarFilled, filled) +
		strings.Repeat(p.styles.GoalBarEmpty, goalBarWidth-filled)
	counts := fmt.Sprintf("%d done, %d missed", d.Completed, d.Missed)
	return "  " + bar + " " + p.styles.StatValueStyle.Render(counts) + "\n"
}
