package ui

import (
	"time"

	"habitflow/internal/analytics"
	"habitflow/internal/storage"
)

// =============================================================================
// Session messages
// =============================================================================

// loginMsg is sent when a user has logged in and a session is open.
type loginMsg struct {
	user     string
	wasReset bool
}

// logoutMsg is sent when the current user has logged out.
type logoutMsg struct{}

// dailyResetMsg is sent when the midnight rollover check cleared the
// completed-today flags.
type dailyResetMsg struct{}

// =============================================================================
// Habit messages
// =============================================================================

// habitAddedMsg is sent when a habit has been created.
type habitAddedMsg struct {
	habit storage.Habit
}

// habitToggledMsg is sent when a habit completion flag has been flipped.
type habitToggledMsg struct {
	habit storage.Habit
}

// habitDeletedMsg is sent when a habit has been removed.
type habitDeletedMsg struct {
	habit storage.Habit
}

// habitRestoredMsg is sent when a deleted habit has been put back (undo).
type habitRestoredMsg struct {
	habit storage.Habit
}

// =============================================================================
// Goal messages
// =============================================================================

// goalAddedMsg is sent when a goal has been created.
type goalAddedMsg struct {
	goal storage.Goal
}

// goalUpdatedMsg is sent when a goal's progress has changed.
type goalUpdatedMsg struct {
	goal  storage.Goal
	delta int
}

// goalDeletedMsg is sent when a goal has been removed.
type goalDeletedMsg struct {
	goal storage.Goal
}

// goalRestoredMsg is sent when a deleted goal has been put back (undo).
type goalRestoredMsg struct {
	goal storage.Goal
}

// =============================================================================
// Theme messages
// =============================================================================

// themeToggledMsg is sent when the theme has been switched and saved.
type themeToggledMsg struct {
	theme storage.Theme
}

// =============================================================================
// Analytics messages
// =============================================================================

// analyticsRefreshedMsg carries a freshly computed summary and month grid.
type analyticsRefreshedMsg struct {
	summary analytics.Summary
	month   analytics.MonthGrid
}

// =============================================================================
// Undo/redo messages
// =============================================================================

// undoResultMsg is sent after an undo attempt.
type undoResultMsg struct {
	description string
	err         error
}

// redoResultMsg is sent after a redo attempt.
type redoResultMsg struct {
	description string
	err         error
}

// =============================================================================
// Status and error messages
// =============================================================================

// statusMsg displays a transient message in the status bar.
type statusMsg struct {
	text string
}

// errMsg carries an error to display in the status bar.
type errMsg struct {
	err error
}

// tickMsg drives the status bar TTL.
type tickMsg time.Time
