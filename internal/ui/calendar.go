package ui

import (
	"fmt"
	"strings"

	"habitflow/internal/analytics"
	"habitflow/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// CalendarPane renders the current month with per-day completion status.
type CalendarPane struct {
	session *session.Session
	grid    analytics.MonthGrid
	focused bool
	width   int
	height  int
	styles  *Styles
}

// NewCalendarPane creates a new calendar pane.
func NewCalendarPane(sess *session.Session, styles *Styles) *CalendarPane {
	p := &CalendarPane{
		session: sess,
		styles:  styles,
	}
	p.refresh()
	return p
}

// SetStyles swaps the style set, used when the theme changes.
func (p *CalendarPane) SetStyles(styles *Styles) {
	p.styles = styles
}

// refresh recomputes the month grid from the session state.
func (p *CalendarPane) refresh() {
	p.grid = analytics.Month(p.session.History(), len(p.session.Habits()), p.session.Now())
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *CalendarPane) IsFocused() bool {
	return p.focused
}

// Update handles messages for the calendar pane.
func (p *CalendarPane) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case habitToggledMsg, habitAddedMsg, habitDeletedMsg, habitRestoredMsg,
		undoResultMsg, redoResultMsg, dailyResetMsg, analyticsRefreshedMsg:
		p.refresh()
	}
	return nil
}

// View renders the calendar pane.
func (p *CalendarPane) View() string {
	var b strings.Builder

	header := fmt.Sprintf("📅 %s %d", strings.ToUpper(p.grid.Month.String()), p.grid.Year)
	b.WriteString(p.styles.PaneTitleStyle.Render(header))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")
	b.WriteString("\n")

	// Weekday header, Sunday first
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	for row := 0; row < len(p.grid.Cells); row += 7 {
		b.WriteString("  ")
		end := min(row+7, len(p.grid.Cells))
		for _, cell := range p.grid.Cells[row:end] {
			b.WriteString(p.renderCell(cell))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + p.styles.CalendarGoodStyle.Render("●") + p.styles.StatLabelStyle.Render(" some ") +
		p.styles.CalendarPerfectStyle.Render("●") + p.styles.StatLabelStyle.Render(" all"))
	b.WriteString("\n")

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderCell draws one two-character day cell.
func (p *CalendarPane) renderCell(cell analytics.MonthCell) string {
	if cell.Day == 0 {
		return p.styles.CalendarBlankStyle.Render("  ")
	}

	text := fmt.Sprintf("%2d", cell.Day)
	switch {
	case cell.Today:
		return p.styles.CalendarTodayStyle.Render(text)
	case cell.Status == analytics.StatusPerfect:
		return p.styles.CalendarPerfectStyle.Render(text)
	case cell.Status == analytics.StatusGood:
		return p.styles.CalendarGoodStyle.Render(text)
	default:
		return text
	}
}
