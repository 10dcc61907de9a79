package ui

import (
	"strings"
	"testing"

	"habitflow/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func TestHabitsPaneView_Empty(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	output := pane.View()
	if !strings.Contains(output, "No habits yet") {
		t.Errorf("empty pane should show placeholder, got:\n%s", output)
	}
	if !strings.Contains(output, "Press 'a' to add one") {
		t.Errorf("empty pane should show the add hint, got:\n%s", output)
	}
}

func TestHabitsPaneView_WithHabits(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	if _, err := sess.AddHabit("Exercise", "🏃"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	habit, err := sess.AddHabit("Reading", "📚")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, err := sess.ToggleHabit(habit.ID); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetSize(60, 20)
	pane.SetFocused(true)
	pane.refresh()

	output := pane.View()
	if !strings.Contains(output, "Exercise") || !strings.Contains(output, "Reading") {
		t.Errorf("pane should list both habits, got:\n%s", output)
	}
	if !strings.Contains(output, "🔥1") {
		t.Errorf("completed habit should show its streak, got:\n%s", output)
	}
	if !strings.Contains(output, "Today: 1/2") {
		t.Errorf("pane should show today's completion summary, got:\n%s", output)
	}
}

func TestHabitsPane_AddFlow(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetSize(60, 20)
	pane.SetFocused(true)

	// Enter add mode
	pane.Update(keyRunes("a"))
	if !pane.IsAdding() {
		t.Fatal("pane should be in add mode after 'a'")
	}

	// Type a name, confirm, type an icon, confirm
	pane.Update(keyRunes("Meditate"))
	pane.Update(keyEnter())
	if pane.addStep != 1 {
		t.Fatalf("expected icon step after name, got step %d", pane.addStep)
	}
	cmd := pane.Update(keyEnter()) // empty icon falls back to the default
	if cmd == nil {
		t.Fatal("expected an add command after confirming the icon")
	}

	msg := cmd()
	added, ok := msg.(habitAddedMsg)
	if !ok {
		t.Fatalf("expected habitAddedMsg, got %T", msg)
	}
	if added.habit.Title != "Meditate" {
		t.Errorf("habit title = %q, want %q", added.habit.Title, "Meditate")
	}
	if added.habit.Icon == "" {
		t.Error("habit should get a default icon")
	}
	if pane.IsAdding() {
		t.Error("pane should leave add mode after confirming")
	}

	pane.Update(added)
	if len(pane.habits) != 1 {
		t.Errorf("pane should show the new habit, have %d", len(pane.habits))
	}
}

func TestHabitsPane_AddCancel(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetFocused(true)

	pane.Update(keyRunes("a"))
	pane.Update(keyRunes("half-typed"))
	pane.Update(keyEsc())

	if pane.IsAdding() {
		t.Error("esc should cancel add mode")
	}
	if len(sess.Habits()) != 0 {
		t.Error("canceled add should not create a habit")
	}
}

func TestHabitsPane_ToggleKey(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	habit, err := sess.AddHabit("Exercise", "🏃")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetFocused(true)
	pane.refresh()

	cmd := pane.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected a toggle command")
	}
	msg := cmd()
	toggled, ok := msg.(habitToggledMsg)
	if !ok {
		t.Fatalf("expected habitToggledMsg, got %T", msg)
	}
	if toggled.habit.ID != habit.ID || !toggled.habit.CompletedToday {
		t.Errorf("toggle result = %+v, want completed habit %s", toggled.habit, habit.ID)
	}
}

func TestHabitsPane_CursorNavigation(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	for _, title := range []string{"One", "Two", "Three"} {
		if _, err := sess.AddHabit(title, "✅"); err != nil {
			t.Fatalf("AddHabit: %v", err)
		}
	}

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetFocused(true)
	pane.refresh()

	pane.Update(keyRunes("j"))
	pane.Update(keyRunes("j"))
	if pane.cursor != 2 {
		t.Errorf("cursor = %d after j j, want 2", pane.cursor)
	}
	pane.Update(keyRunes("j"))
	if pane.cursor != 2 {
		t.Errorf("cursor should clamp at the last habit, got %d", pane.cursor)
	}
	pane.Update(keyRunes("g"))
	if pane.cursor != 0 {
		t.Errorf("g should jump to the top, got %d", pane.cursor)
	}
	pane.Update(keyRunes("G"))
	if pane.cursor != 2 {
		t.Errorf("G should jump to the bottom, got %d", pane.cursor)
	}
}

func TestHabitsPane_RefreshClampsCursor(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	sess := createTestSession(t, store)

	a, _ := sess.AddHabit("One", "✅")
	b, _ := sess.AddHabit("Two", "✅")

	pane := NewHabitsPane(sess, createTestStyles(), &config.KeysConfig{})
	pane.SetFocused(true)
	pane.refresh()
	pane.cursor = 1

	if _, err := sess.DeleteHabit(a.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, err := sess.DeleteHabit(b.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	pane.Update(habitDeletedMsg{habit: *b})

	if pane.cursor != 0 {
		t.Errorf("cursor should clamp after deletions, got %d", pane.cursor)
	}
}
