package ui

import (
	"strings"
	"testing"
	"time"

	"habitflow/internal/storage"
)

func freezeMarch(t *testing.T, store *storage.Store) {
	t.Helper()
	// Tuesday, March 10th
	store.SetNowFunc(func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	})
}

func TestCalendarPaneView(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	freezeMarch(t, store)
	sess := createTestSession(t, store)

	habit, err := sess.AddHabit("Exercise", "🏃")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, err := sess.ToggleHabit(habit.ID); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	pane := NewCalendarPane(sess, createTestStyles())
	pane.SetSize(40, 20)
	pane.Update(habitToggledMsg{})

	output := pane.View()
	if !strings.Contains(output, "MARCH 2026") {
		t.Errorf("calendar should show month and year, got:\n%s", output)
	}
	if !strings.Contains(output, "Su Mo Tu We Th Fr Sa") {
		t.Errorf("calendar should show the weekday header, got:\n%s", output)
	}
	if !strings.Contains(output, "31") {
		t.Errorf("March should render all 31 days, got:\n%s", output)
	}
}

func TestAnalyticsPaneView(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	freezeMarch(t, store)
	sess := createTestSession(t, store)

	a, _ := sess.AddHabit("Exercise", "🏃")
	sess.AddHabit("Reading", "📚")
	if _, err := sess.ToggleHabit(a.ID); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	pane := NewAnalyticsPane(sess, createTestStyles())
	pane.SetSize(40, 20)
	pane.Update(habitToggledMsg{})

	output := pane.View()
	if !strings.Contains(output, "Today: 1/2 (50%)") {
		t.Errorf("analytics should show today's rate, got:\n%s", output)
	}
	if !strings.Contains(output, "Completions: 1") {
		t.Errorf("analytics should show total completions, got:\n%s", output)
	}
	if !strings.Contains(output, "Best day: Tuesday") {
		t.Errorf("analytics should show the best weekday, got:\n%s", output)
	}
	if !strings.Contains(output, "Last 7 days") {
		t.Errorf("analytics should show the trend header, got:\n%s", output)
	}
	if !strings.Contains(output, "1 done, 1 missed") {
		t.Errorf("analytics should show the completed/missed split, got:\n%s", output)
	}
}
