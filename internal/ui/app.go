// Package ui provides terminal user interface components for the
// habitflow app. This file contains the main App model which
// coordinates the login view and the four panes, routing messages
// using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"habitflow/internal/config"
	"habitflow/internal/notify"
	"habitflow/internal/session"
	"habitflow/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneHabits PaneID = iota
	PaneGoals
	PaneCalendar
	PaneAnalytics
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all four panes in a 2x2 grid.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// App is the main application model that coordinates all panes.
type App struct {
	store    *storage.Store
	config   *config.Config
	notifier notify.Notifier
	styles   *Styles

	// Set after login.
	session       *session.Session
	habitsPane    *HabitsPane
	goalsPane     *GoalsPane
	calendarPane  *CalendarPane
	analyticsPane *AnalyticsPane

	login       *LoginView
	undoManager *UndoManager
	undoBusy    bool
	confirm     *confirmState
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection
	paneStart  [4]int
	paneEnd    [4]int
	paneTop    [4]int
	contentTop int
}

// confirmState holds a pending confirmation dialog. The command runs
// when the user confirms.
type confirmState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. If sess is non-nil the login view
// is skipped and the dashboard opens directly.
func NewApp(store *storage.Store, cfg *config.Config, notifier notify.Notifier, sess *session.Session) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if notifier == nil {
		notifier = notify.New()
	}

	styles := NewStyles(cfg, storage.ThemeDark)

	app := &App{
		store:       store,
		config:      cfg,
		notifier:    notifier,
		styles:      styles,
		undoManager: NewUndoManager(),
		activePane:  PaneHabits,
		keys:        NewGlobalKeyMap(&cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	if sess != nil {
		app.openSession(sess)
	} else {
		app.login = NewLoginView(store, styles, &cfg.Keys)
	}

	return app
}

// openSession builds the dashboard panes for a freshly opened session.
func (a *App) openSession(sess *session.Session) {
	a.session = sess
	a.styles = NewStyles(a.config, sess.Theme())
	a.login = nil

	a.habitsPane = NewHabitsPane(sess, a.styles, &a.config.Keys)
	a.goalsPane = NewGoalsPane(sess, a.styles, &a.config.Keys)
	a.calendarPane = NewCalendarPane(sess, a.styles)
	a.analyticsPane = NewAnalyticsPane(sess, a.styles)

	a.undoManager.Clear()
	a.setActivePane(PaneHabits)
	a.wireCelebration(sess)

	if a.width > 0 {
		a.updateLayout()
	}
}

// wireCelebration delivers a desktop notification when a habit is
// completed, if notifications are enabled.
func (a *App) wireCelebration(sess *session.Session) {
	if !a.config.Notifications.Enabled {
		return
	}
	milestones := a.config.Notifications.StreakMilestones
	sound := a.config.Notifications.Sound
	notifier := a.notifier
	sess.SetCelebrateFunc(func(habit storage.Habit) {
		c := notify.NewCelebration(habit.Title, habit.Streak, milestones)
		_ = c.Deliver(notifier, sound)
	})
}

// closeSession tears the dashboard down and returns to the login view.
func (a *App) closeSession() {
	a.session = nil
	a.habitsPane = nil
	a.goalsPane = nil
	a.calendarPane = nil
	a.analyticsPane = nil
	a.undoManager.Clear()
	a.styles = NewStyles(a.config, storage.ThemeDark)
	a.login = NewLoginView(a.store, a.styles, &a.config.Keys)
	if a.width > 0 {
		a.login.SetSize(a.width, a.height)
	}
}

// setStyles pushes a new style set to every live component.
func (a *App) setStyles(styles *Styles) {
	a.styles = styles
	if a.habitsPane != nil {
		a.habitsPane.SetStyles(styles)
		a.goalsPane.SetStyles(styles)
		a.calendarPane.SetStyles(styles)
		a.analyticsPane.SetStyles(styles)
	}
	if a.login != nil {
		a.login.SetStyles(styles)
	}
}

// Init initializes the app.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Login screen owns everything until a session exists.
	if a.session == nil {
		return a.updateLogin(msg)
	}

	// Route async messages to all panes first (before key handling).
	if cmd, handled := a.routeAsync(msg); handled {
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)
	}

	return a.forwardToActivePane(msg)
}

// updateLogin runs the login view and promotes it to a dashboard when
// a session opens.
func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
	case errMsg:
		a.SetStatus(msg.err.Error(), true)
		return a, nil
	}

	sess, cmd := a.login.Update(msg)
	if sess != nil {
		a.openSession(sess)
	}
	return a, cmd
}

// routeAsync handles messages produced by commands. Returns handled=true
// when the message was consumed.
func (a *App) routeAsync(msg tea.Msg) (tea.Cmd, bool) {
	broadcast := func(m tea.Msg) tea.Cmd {
		var cmds []tea.Cmd
		for _, cmd := range []tea.Cmd{
			a.habitsPane.Update(m),
			a.goalsPane.Update(m),
			a.calendarPane.Update(m),
			a.analyticsPane.Update(m),
		} {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case loginMsg:
		if msg.wasReset {
			a.SetStatus("New day! Completed-today flags were reset.", false)
		} else {
			a.SetStatus("Welcome back, "+msg.user+"!", false)
		}
		return broadcast(dailyResetMsg{}), true

	case habitAddedMsg:
		a.SetStatus("Added habit '"+msg.habit.Title+"'", false)
		return broadcast(msg), true

	case habitToggledMsg:
		a.undoManager.Push(newToggleHabitAction(a.session, msg.habit))
		if msg.habit.CompletedToday {
			a.SetStatus(fmt.Sprintf("Done! 🔥 %d day streak", msg.habit.Streak), false)
		}
		return broadcast(msg), true

	case habitDeletedMsg:
		a.undoManager.Push(newDeleteHabitAction(a.session, msg.habit))
		a.SetStatus("Deleted habit '"+msg.habit.Title+"' (ctrl+z to undo)", false)
		return broadcast(msg), true

	case habitRestoredMsg:
		return broadcast(msg), true

	case goalAddedMsg:
		a.SetStatus("Added goal '"+msg.goal.Title+"'", false)
		return broadcast(msg), true

	case goalUpdatedMsg:
		a.undoManager.Push(newUpdateGoalAction(a.session, msg.goal, msg.delta))
		if msg.goal.Current >= msg.goal.Target {
			a.SetStatus("Goal '"+msg.goal.Title+"' reached! 🎉", false)
		}
		return broadcast(msg), true

	case goalDeletedMsg:
		a.undoManager.Push(newDeleteGoalAction(a.session, msg.goal))
		a.SetStatus("Deleted goal '"+msg.goal.Title+"' (ctrl+z to undo)", false)
		return broadcast(msg), true

	case goalRestoredMsg:
		return broadcast(msg), true

	case themeToggledMsg:
		a.setStyles(NewStyles(a.config, msg.theme))
		a.SetStatus("Theme: "+string(msg.theme), false)
		return nil, true

	case undoResultMsg:
		a.undoBusy = false
		if msg.err != nil {
			a.SetStatus("Undo failed: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Undid: "+msg.description, false)
		}
		return broadcast(msg), true

	case redoResultMsg:
		a.undoBusy = false
		if msg.err != nil {
			a.SetStatus("Redo failed: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Redid: "+msg.description, false)
		}
		return broadcast(msg), true

	case logoutMsg:
		a.closeSession()
		return nil, true

	case dailyResetMsg:
		return broadcast(msg), true

	case statusMsg:
		a.SetStatus(msg.text, false)
		return nil, true

	case errMsg:
		a.SetStatus(msg.err.Error(), true)
		return nil, true
	}

	return nil, false
}

// handleKey processes keyboard input on the dashboard.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			cmd := a.confirm.cmd
			a.confirm = nil
			return a, cmd
		case "n", "N", "esc":
			a.confirm = nil
			a.SetStatus("Canceled", false)
			return a, nil
		default:
			return a, nil
		}
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	inInputMode := a.habitsPane.IsAdding() || a.goalsPane.IsAdding()

	if !inInputMode {
		if cmd, handled := a.handleDelete(msg); handled {
			return a, cmd
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil

		case key.Matches(msg, a.keys.NextPane):
			a.setActivePane((a.activePane + 1) % 4)
			return a, nil

		case key.Matches(msg, a.keys.Pane1):
			a.setActivePane(PaneHabits)
			return a, nil

		case key.Matches(msg, a.keys.Pane2):
			a.setActivePane(PaneGoals)
			return a, nil

		case key.Matches(msg, a.keys.Pane3):
			a.setActivePane(PaneCalendar)
			return a, nil

		case key.Matches(msg, a.keys.Pane4):
			a.setActivePane(PaneAnalytics)
			return a, nil

		case key.Matches(msg, a.keys.ToggleTheme):
			return a, toggleThemeCmd(a.session)

		case key.Matches(msg, a.keys.Logout):
			a.confirm = &confirmState{
				title: "Log out?",
				body:  "Your data is saved. Undo history will be cleared.",
				cmd:   logoutCmd(a.store),
			}
			return a, nil

		case key.Matches(msg, a.keys.Undo):
			if a.undoBusy {
				a.SetStatus("Undo: busy", true)
				return a, nil
			}
			a.undoBusy = true
			return a, undoCmd(a.undoManager)

		case key.Matches(msg, a.keys.Redo):
			if a.undoBusy {
				a.SetStatus("Redo: busy", true)
				return a, nil
			}
			a.undoBusy = true
			return a, redoCmd(a.undoManager)
		}
	}

	return a.forwardToActivePane(msg)
}

// handleDelete intercepts the delete key for the focused pane, showing
// a confirmation first when configured to.
func (a *App) handleDelete(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.activePane {
	case PaneHabits:
		if !key.Matches(msg, a.habitsPane.keys.Delete) {
			return nil, false
		}
		habit, ok := a.habitsPane.Selected()
		if !ok {
			a.SetStatus("No habit selected", true)
			return nil, true
		}
		cmd := deleteHabitCmd(a.session, habit.ID)
		if !a.config.UX.ConfirmDeletions {
			return cmd, true
		}
		a.confirm = &confirmState{
			title: "Delete habit?",
			body:  truncateText(habit.Title, 60),
			cmd:   cmd,
		}
		return nil, true

	case PaneGoals:
		if !key.Matches(msg, a.goalsPane.keys.Delete) {
			return nil, false
		}
		goal, ok := a.goalsPane.Selected()
		if !ok {
			a.SetStatus("No goal selected", true)
			return nil, true
		}
		cmd := deleteGoalCmd(a.session, goal.ID)
		if !a.config.UX.ConfirmDeletions {
			return cmd, true
		}
		a.confirm = &confirmState{
			title: "Delete goal?",
			body:  truncateText(goal.Title, 60),
			cmd:   cmd,
		}
		return nil, true
	}

	return nil, false
}

// handleMouse processes mouse events on the dashboard.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.confirm != nil {
		if msg.Action == tea.MouseActionPress {
			a.confirm = nil
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		// In narrow mode, check for tab bar clicks
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			tabWidth := a.width / 4
			if tabWidth > 0 {
				pane := PaneID(min(msg.X/tabWidth, 3))
				a.setActivePane(pane)
			}
			return a, nil
		}

		clicked := a.paneAtPosition(msg.X, msg.Y)
		if clicked >= 0 && clicked != a.activePane {
			a.setActivePane(clicked)
		}

		localMsg := msg
		localMsg.X = msg.X - a.paneStart[a.activePane]
		localMsg.Y = msg.Y - a.paneTop[a.activePane]
		return a.forwardToActivePane(localMsg)

	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		localMsg := msg
		localMsg.Y = msg.Y - a.paneTop[a.activePane]
		return a.forwardToActivePane(localMsg)
	}

	return a, nil
}

// forwardToActivePane sends a message to whichever pane has focus.
func (a *App) forwardToActivePane(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.showHelp || a.session == nil {
		return a, nil
	}

	var cmd tea.Cmd
	switch a.activePane {
	case PaneHabits:
		cmd = a.habitsPane.Update(msg)
	case PaneGoals:
		cmd = a.goalsPane.Update(msg)
	case PaneCalendar:
		cmd = a.calendarPane.Update(msg)
	case PaneAnalytics:
		cmd = a.analyticsPane.Update(msg)
	}
	return a, cmd
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane
	if a.habitsPane == nil {
		return
	}
	a.habitsPane.SetFocused(pane == PaneHabits)
	a.goalsPane.SetFocused(pane == PaneGoals)
	a.calendarPane.SetFocused(pane == PaneCalendar)
	a.analyticsPane.SetFocused(pane == PaneAnalytics)
}

// paneAtPosition returns which pane is at the given coordinates, or -1.
func (a *App) paneAtPosition(x, y int) PaneID {
	if a.layoutMode == LayoutNarrow {
		return a.activePane
	}
	for id := PaneHabits; id <= PaneAnalytics; id++ {
		if x >= a.paneStart[id] && x < a.paneEnd[id] && y >= a.paneTop[id] {
			return id
		}
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	if a.login != nil {
		a.login.SetSize(a.width, a.height)
	}
	if a.session == nil {
		return
	}

	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.contentTop = 1

	totalWidth := a.width - 4

	threshold := a.config.UX.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}
		paneWidth := max(20, totalWidth)

		a.habitsPane.SetSize(paneWidth, narrowHeight)
		a.goalsPane.SetSize(paneWidth, narrowHeight)
		a.calendarPane.SetSize(paneWidth, narrowHeight)
		a.analyticsPane.SetSize(paneWidth, narrowHeight)

		for id := PaneHabits; id <= PaneAnalytics; id++ {
			a.paneStart[id] = 0
			a.paneEnd[id] = a.width
			a.paneTop[id] = 2
		}
		a.contentTop = 2
	} else {
		// Wide mode: 2x2 grid
		a.layoutMode = LayoutWide

		leftWidth := totalWidth / 2
		rightWidth := totalWidth - leftWidth - 1
		rowHeight := contentHeight / 2
		if rowHeight < 8 {
			rowHeight = 8
		}

		a.habitsPane.SetSize(leftWidth, rowHeight)
		a.goalsPane.SetSize(rightWidth, rowHeight)
		a.calendarPane.SetSize(leftWidth, rowHeight)
		a.analyticsPane.SetSize(rightWidth, rowHeight)

		a.paneStart[PaneHabits] = 0
		a.paneEnd[PaneHabits] = leftWidth
		a.paneStart[PaneGoals] = leftWidth + 1
		a.paneEnd[PaneGoals] = a.paneStart[PaneGoals] + rightWidth
		a.paneStart[PaneCalendar] = 0
		a.paneEnd[PaneCalendar] = leftWidth
		a.paneStart[PaneAnalytics] = leftWidth + 1
		a.paneEnd[PaneAnalytics] = a.paneStart[PaneAnalytics] + rightWidth

		// Top row starts under the title bar, bottom row under it.
		a.paneTop[PaneHabits] = a.contentTop
		a.paneTop[PaneGoals] = a.contentTop
		a.paneTop[PaneCalendar] = a.contentTop + rowHeight + 2
		a.paneTop[PaneAnalytics] = a.contentTop + rowHeight + 2
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.session == nil {
		return a.login.View()
	}

	if a.confirm != nil {
		return a.renderConfirm()
	}

	if a.showHelp {
		return renderHelpOverlay(a.styles, a.width, a.height)
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirm() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirm.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirm.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] confirm    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders the four panes in a 2x2 grid.
func (a *App) renderWideContent() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, a.habitsPane.View(), " ", a.goalsPane.View())
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, a.calendarPane.View(), " ", a.analyticsPane.View())
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneHabits:
		b.WriteString(a.habitsPane.View())
	case PaneGoals:
		b.WriteString(a.goalsPane.View())
	case PaneCalendar:
		b.WriteString(a.calendarPane.View())
	case PaneAnalytics:
		b.WriteString(a.analyticsPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneHabits, "Habits"},
		{PaneGoals, "Goals"},
		{PaneCalendar, "Calendar"},
		{PaneAnalytics, "Stats"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with today's progress.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  Keep the streak alive!\n")
	b.WriteString("\n")

	if a.habitsPane != nil {
		done, total := a.habitsPane.TodayCompletion()
		if total > 0 {
			pct := (done * 100) / total
			b.WriteString(fmt.Sprintf("  Habits today: %d/%d (%d%%)\n", done, total, pct))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderTitleBar creates the top title bar with user and stats.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" habitflow ")

	user := a.styles.StatValueStyle.Render(a.session.User())

	var stats string
	done, total := a.habitsPane.TodayCompletion()
	if total > 0 {
		stats = a.styles.StatLabelStyle.Render(fmt.Sprintf("Today: %d/%d", done, total))
	}

	dateStr := time.Now().Format("Mon Jan 2")
	date := a.styles.DateStyle.Render(dateStr)

	usedWidth := lipgloss.Width(title) + lipgloss.Width(user) + lipgloss.Width(stats) + lipgloss.Width(date)
	spacerWidth := a.width - usedWidth - 8
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title, "  ", user)
	if stats != "" {
		parts = append(parts, "  ", stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth), date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.habitsPane.IsAdding() || a.goalsPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "next/save",
			"esc", "cancel",
		)
	}

	switch a.activePane {
	case PaneHabits:
		return a.styles.RenderHelp(
			"a", "add",
			"space", "toggle",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneGoals:
		return a.styles.RenderHelp(
			"a", "add",
			"+/-", "progress",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	default:
		return a.styles.RenderHelp(
			"tab", "pane",
			"t", "theme",
			"ctrl+o", "logout",
			"?", "help",
		)
	}
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program. A nil session opens the login
// screen first.
func Run(store *storage.Store, cfg *config.Config, notifier notify.Notifier, sess *session.Session) error {
	app := NewApp(store, cfg, notifier, sess)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
