// This file contains tests for the main App model, including layout
// behavior, the confirm dialog, and login/logout transitions.
package ui

import (
	"strings"
	"testing"

	"habitflow/internal/config"
	"habitflow/internal/session"
	"habitflow/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

func createTestApp(t *testing.T) *App {
	t.Helper()
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)
	return NewApp(store, config.Default(), nil, sess)
}

// drain runs a command and feeds resulting messages back into the app
// until no command is left.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(t, app, c)
			}
			return
		}
		_, cmd = app.Update(msg)
	}
}

func TestApp_LayoutModeTransitions(t *testing.T) {
	app := createTestApp(t)

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"At threshold (79)", 79, LayoutNarrow},
		{"At threshold (80)", 80, LayoutWide},
		{"Wide (120)", 120, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 40})
			if app.layoutMode != tc.expectedMode {
				t.Errorf("width %d: layout mode = %v, want %v",
					tc.width, app.layoutMode, tc.expectedMode)
			}
		})
	}
}

func TestApp_NarrowLayoutShowsTabBar(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 60, Height: 40})

	if app.activePane != PaneHabits {
		t.Error("default active pane should be Habits")
	}

	view := app.View()
	if !strings.Contains(view, "[Habits]") {
		t.Error("expected [Habits] tab highlighted in narrow mode")
	}
	for _, tab := range []string{"Goals", "Calendar", "Stats"} {
		if !strings.Contains(view, tab) {
			t.Errorf("expected %s tab in narrow mode", tab)
		}
	}
}

func TestApp_WideLayoutShowsAllPanes(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 50})

	view := app.View()
	for _, title := range []string{"HABITS", "GOALS", "ANALYTICS"} {
		if !strings.Contains(view, title) {
			t.Errorf("expected %s pane in wide mode", title)
		}
	}
}

func TestApp_PaneSwitching(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.activePane != PaneGoals {
		t.Errorf("tab should move to Goals, got %v", app.activePane)
	}

	app.Update(keyRunes("4"))
	if app.activePane != PaneAnalytics {
		t.Errorf("'4' should jump to Analytics, got %v", app.activePane)
	}
	if !app.analyticsPane.IsFocused() || app.goalsPane.IsFocused() {
		t.Error("focus flags should follow the active pane")
	}

	app.Update(keyRunes("1"))
	if app.activePane != PaneHabits {
		t.Errorf("'1' should jump back to Habits, got %v", app.activePane)
	}
}

func TestApp_DeleteHabitAsksForConfirmation(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if _, err := app.session.AddHabit("Exercise", "🏃"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	app.habitsPane.refresh()

	app.Update(keyRunes("x"))
	if app.confirm == nil {
		t.Fatal("delete should open a confirmation dialog")
	}
	if !strings.Contains(app.View(), "Delete habit?") {
		t.Error("confirm dialog should show the delete prompt")
	}

	// 'n' cancels
	app.Update(keyRunes("n"))
	if app.confirm != nil {
		t.Error("'n' should dismiss the dialog")
	}
	if len(app.session.Habits()) != 1 {
		t.Error("canceled delete should keep the habit")
	}

	// 'y' confirms
	app.Update(keyRunes("x"))
	_, cmd := app.Update(keyRunes("y"))
	drain(t, app, cmd)
	if len(app.session.Habits()) != 0 {
		t.Error("confirmed delete should remove the habit")
	}
}

func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)
	cfg := config.Default()
	cfg.UX.ConfirmDeletions = false
	app := NewApp(store, cfg, nil, sess)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if _, err := sess.AddHabit("Exercise", "🏃"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	app.habitsPane.refresh()

	_, cmd := app.Update(keyRunes("x"))
	drain(t, app, cmd)

	if app.confirm != nil {
		t.Error("no dialog expected when confirmations are off")
	}
	if len(sess.Habits()) != 0 {
		t.Error("habit should be deleted immediately")
	}
}

func TestApp_UndoDeleteRestoresHabit(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	habit, err := app.session.AddHabit("Exercise", "🏃")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	app.habitsPane.refresh()

	app.Update(keyRunes("x"))
	_, cmd := app.Update(keyRunes("y"))
	drain(t, app, cmd)
	if len(app.session.Habits()) != 0 {
		t.Fatal("habit should be deleted")
	}

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	drain(t, app, cmd)

	habits := app.session.Habits()
	if len(habits) != 1 || habits[0].ID != habit.ID {
		t.Errorf("undo should restore the habit, have %+v", habits)
	}
	if len(app.habitsPane.habits) != 1 {
		t.Error("pane should refresh after undo")
	}
}

func TestApp_ThemeToggleSwitchesStyles(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if app.session.Theme() != storage.ThemeDark {
		t.Fatal("sessions should start dark")
	}

	_, cmd := app.Update(keyRunes("t"))
	drain(t, app, cmd)

	if app.session.Theme() != storage.ThemeLight {
		t.Errorf("theme = %v after toggle, want light", app.session.Theme())
	}
}

func TestApp_LogoutReturnsToLogin(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if app.confirm == nil {
		t.Fatal("logout should ask for confirmation")
	}

	_, cmd := app.Update(keyRunes("y"))
	drain(t, app, cmd)

	if app.session != nil {
		t.Error("session should be closed after logout")
	}
	if app.login == nil {
		t.Fatal("login view should be back after logout")
	}
	if !strings.Contains(app.View(), "Who are you?") {
		t.Error("login prompt should render after logout")
	}
	if _, ok := app.store.CurrentUser(); ok {
		t.Error("current user marker should be cleared")
	}
}

func TestApp_LoginOpensDashboard(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	app := NewApp(store, config.Default(), nil, nil)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if !strings.Contains(app.View(), "Who are you?") {
		t.Fatal("app without a session should show the login view")
	}

	app.Update(keyRunes("alice"))
	_, cmd := app.Update(keyEnter())
	drain(t, app, cmd)

	if app.session == nil {
		t.Fatal("login should open a session")
	}
	if app.session.User() != "alice" {
		t.Errorf("session user = %q, want alice", app.session.User())
	}
	if user, ok := store.CurrentUser(); !ok || user != "alice" {
		t.Errorf("current user = %q/%v, want alice", user, ok)
	}
	if store.LastLogin("alice") != store.TodayKey() {
		t.Error("login should record today's date")
	}
}

func TestApp_LoginRejectsInvalidName(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	app := NewApp(store, config.Default(), nil, nil)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(keyRunes("bad/name"))
	_, cmd := app.Update(keyEnter())
	drain(t, app, cmd)

	if app.session != nil {
		t.Error("invalid name should not open a session")
	}
	if app.login.errMsg == "" {
		t.Error("login view should show a validation error")
	}
}

func TestLoginView_ListsKnownProfiles(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)

	// A profile exists once its habits file has been written.
	sess, err := session.Open(store, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := sess.AddHabit("Stretch", ""); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	view := NewLoginView(store, createTestStyles(), &config.KeysConfig{})
	output := view.View()
	if !strings.Contains(output, "Known profiles: alice") {
		t.Errorf("login view should list stored profiles, got:\n%s", output)
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(keyRunes("?"))
	if !app.showHelp {
		t.Fatal("'?' should open help")
	}
	if !strings.Contains(app.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay should render shortcuts")
	}

	app.Update(keyEsc())
	if app.showHelp {
		t.Error("esc should close help")
	}
}

func TestApp_StatusAfterToggle(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if _, err := app.session.AddHabit("Exercise", "🏃"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	app.habitsPane.refresh()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	drain(t, app, cmd)

	if !strings.Contains(app.status, "1 day streak") {
		t.Errorf("status = %q, want a streak message", app.status)
	}
	if !app.undoManager.CanUndo() {
		t.Error("toggle should be undoable")
	}
}
