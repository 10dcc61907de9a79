package ui

import (
	"time"

	"habitflow/internal/analytics"
	"habitflow/internal/session"
	"habitflow/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Habit commands
// =============================================================================

// addHabitCmd creates a habit and reports the result.
func addHabitCmd(sess *session.Session, title, icon string) tea.Cmd {
	return func() tea.Msg {
		habit, err := sess.AddHabit(title, icon)
		if err != nil {
			return errMsg{err}
		}
		return habitAddedMsg{habit: *habit}
	}
}

// toggleHabitCmd flips a habit's completed-today flag.
func toggleHabitCmd(sess *session.Session, id string) tea.Cmd {
	return func() tea.Msg {
		habit, err := sess.ToggleHabit(id)
		if err != nil {
			return errMsg{err}
		}
		if habit == nil {
			return statusMsg{text: "Habit no longer exists"}
		}
		return habitToggledMsg{habit: *habit}
	}
}

// deleteHabitCmd removes a habit and reports the removed value so the
// caller can register an undo action.
func deleteHabitCmd(sess *session.Session, id string) tea.Cmd {
	return func() tea.Msg {
		habit, err := sess.DeleteHabit(id)
		if err != nil {
			return errMsg{err}
		}
		if habit == nil {
			return statusMsg{text: "Habit no longer exists"}
		}
		return habitDeletedMsg{habit: *habit}
	}
}

// restoreHabitCmd puts a deleted habit back.
func restoreHabitCmd(sess *session.Session, habit storage.Habit) tea.Cmd {
	return func() tea.Msg {
		if err := sess.RestoreHabit(habit); err != nil {
			return errMsg{err}
		}
		return habitRestoredMsg{habit: habit}
	}
}

// =============================================================================
// Goal commands
// =============================================================================

// addGoalCmd creates a goal and reports the result.
func addGoalCmd(sess *session.Session, title string, target int) tea.Cmd {
	return func() tea.Msg {
		goal, err := sess.AddGoal(title, target)
		if err != nil {
			return errMsg{err}
		}
		return goalAddedMsg{goal: *goal}
	}
}

// updateGoalCmd adjusts a goal's progress by delta.
func updateGoalCmd(sess *session.Session, id string, delta int) tea.Cmd {
	return func() tea.Msg {
		goal, err := sess.UpdateGoal(id, delta)
		if err != nil {
			return errMsg{err}
		}
		if goal == nil {
			return statusMsg{text: "Goal no longer exists"}
		}
		return goalUpdatedMsg{goal: *goal, delta: delta}
	}
}

// deleteGoalCmd removes a goal and reports the removed value so the
// caller can register an undo action.
func deleteGoalCmd(sess *session.Session, id string) tea.Cmd {
	return func() tea.Msg {
		goal, err := sess.DeleteGoal(id)
		if err != nil {
			return errMsg{err}
		}
		if goal == nil {
			return statusMsg{text: "Goal no longer exists"}
		}
		return goalDeletedMsg{goal: *goal}
	}
}

// restoreGoalCmd puts a deleted goal back.
func restoreGoalCmd(sess *session.Session, goal storage.Goal) tea.Cmd {
	return func() tea.Msg {
		if err := sess.RestoreGoal(goal); err != nil {
			return errMsg{err}
		}
		return goalRestoredMsg{goal: goal}
	}
}

// =============================================================================
// Theme commands
// =============================================================================

// toggleThemeCmd switches between dark and light and persists the choice.
func toggleThemeCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		theme, err := sess.ToggleTheme()
		if err != nil {
			return errMsg{err}
		}
		return themeToggledMsg{theme: theme}
	}
}

// =============================================================================
// Analytics commands
// =============================================================================

// refreshAnalyticsCmd recomputes the summary and month grid from the
// current session state.
func refreshAnalyticsCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		history := sess.History()
		habitCount := len(sess.Habits())
		now := sess.Now()
		return analyticsRefreshedMsg{
			summary: analytics.Summarize(history, habitCount, now),
			month:   analytics.Month(history, habitCount, now),
		}
	}
}

// =============================================================================
// Undo/redo commands
// =============================================================================

// undoCmd pops the most recent undoable action and reverses it.
func undoCmd(manager *UndoManager) tea.Cmd {
	return func() tea.Msg {
		action, err := manager.Undo()
		if err != nil {
			return undoResultMsg{err: err}
		}
		return undoResultMsg{description: action.Description}
	}
}

// redoCmd re-applies the most recently undone action.
func redoCmd(manager *UndoManager) tea.Cmd {
	return func() tea.Msg {
		action, err := manager.Redo()
		if err != nil {
			return redoResultMsg{err: err}
		}
		return redoResultMsg{description: action.Description}
	}
}

// =============================================================================
// Login commands
// =============================================================================

// loginCmd records the user as current, runs the daily reset check, and
// reports the result. The session must already be open.
func loginCmd(store *storage.Store, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		user := sess.User()
		if err := store.SetCurrentUser(user); err != nil {
			return errMsg{err}
		}
		wasReset, err := sess.CheckDailyReset()
		if err != nil {
			return errMsg{err}
		}
		return loginMsg{user: user, wasReset: wasReset}
	}
}

// logoutCmd clears the current user marker.
func logoutCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		if err := store.ClearCurrentUser(); err != nil {
			return errMsg{err}
		}
		return logoutMsg{}
	}
}

// =============================================================================
// Ticker
// =============================================================================

// tickCmd drives the status bar expiry.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
