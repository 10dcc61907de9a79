package session

import (
	"strings"
	"testing"
	"time"

	"habitflow/internal/storage"
)

func createTestSession(t *testing.T) (*Session, *storage.Store) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sess, err := Open(store, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return sess, store
}

func TestOpen_RejectsInvalidUser(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := Open(store, "   "); err == nil {
		t.Fatal("expected error for blank user name")
	}
	if _, err := Open(store, "a/b"); err == nil {
		t.Fatal("expected error for user name with separator")
	}
}

func TestAddHabit(t *testing.T) {
	sess, _ := createTestSession(t)

	h, err := sess.AddHabit("  Read  ", "📖")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if h.Title != "Read" {
		t.Errorf("title = %q, want trimmed %q", h.Title, "Read")
	}
	if h.Icon != "📖" {
		t.Errorf("icon = %q", h.Icon)
	}
	if h.Streak != 0 || h.Best != 0 || h.CompletedToday {
		t.Errorf("new habit counters not zeroed: %+v", h)
	}
	if !strings.HasPrefix(h.ID, "h_") {
		t.Errorf("id = %q, want h_ prefix", h.ID)
	}

	habits := sess.Habits()
	if len(habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(habits))
	}
}

func TestAddHabit_DefaultIcon(t *testing.T) {
	sess, _ := createTestSession(t)

	h, err := sess.AddHabit("Stretch", "")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if h.Icon == "" {
		t.Error("expected a default icon for blank input")
	}
}

func TestAddHabit_Validation(t *testing.T) {
	sess, _ := createTestSession(t)

	if _, err := sess.AddHabit("", "📖"); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := sess.AddHabit("   ", "📖"); err == nil {
		t.Error("expected error for whitespace title")
	}
	if _, err := sess.AddHabit(strings.Repeat("x", 200), ""); err == nil {
		t.Error("expected error for overlong title")
	}
	if len(sess.Habits()) != 0 {
		t.Error("failed adds must not modify the habit list")
	}
}

func TestToggleHabit_CompleteAndUncomplete(t *testing.T) {
	sess, store := createTestSession(t)

	h, err := sess.AddHabit("Read", "📖")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	today := store.TodayKey()

	got, err := sess.ToggleHabit(h.ID)
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if !got.CompletedToday || got.Streak != 1 || got.Best != 1 {
		t.Errorf("after complete: %+v", got)
	}
	if n := sess.History()[today]; n != 1 {
		t.Errorf("history[today] = %d, want 1", n)
	}

	got, err = sess.ToggleHabit(h.ID)
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if got.CompletedToday || got.Streak != 0 {
		t.Errorf("after uncomplete: %+v", got)
	}
	hist := sess.History()
	if n, ok := hist[today]; !ok || n != 0 {
		t.Errorf("history[today] = %d (present=%v), want 0 and kept", n, ok)
	}
	// Best stays at the high-water mark.
	if sess.Habits()[0].Best != 1 {
		t.Errorf("best = %d, want 1", sess.Habits()[0].Best)
	}
}

func TestToggleHabit_BestIsHighWater(t *testing.T) {
	sess, _ := createTestSession(t)

	if err := sess.RestoreHabit(storage.Habit{ID: "h_1", Title: "Run", Icon: "🏃", Streak: 4, Best: 9}); err != nil {
		t.Fatalf("RestoreHabit: %v", err)
	}

	got, err := sess.ToggleHabit("h_1")
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if got.Streak != 5 || got.Best != 9 {
		t.Errorf("streak/best = %d/%d, want 5/9", got.Streak, got.Best)
	}

	// A streak that passes the old best drags it up.
	if err := sess.RestoreHabit(storage.Habit{ID: "h_2", Title: "Write", Icon: "✍️", Streak: 9, Best: 9}); err != nil {
		t.Fatalf("RestoreHabit: %v", err)
	}
	got, err = sess.ToggleHabit("h_2")
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if got.Streak != 10 || got.Best != 10 {
		t.Errorf("streak/best = %d/%d, want 10/10", got.Streak, got.Best)
	}
}

func TestToggleHabit_StaleIDIsNoOp(t *testing.T) {
	sess, _ := createTestSession(t)

	got, err := sess.ToggleHabit("h_missing")
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for stale id", got)
	}
}

func TestToggleHabit_FiresCelebration(t *testing.T) {
	sess, _ := createTestSession(t)

	h, err := sess.AddHabit("Read", "📖")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	fired := make(chan storage.Habit, 1)
	sess.SetCelebrateFunc(func(habit storage.Habit) {
		fired <- habit
	})

	if _, err := sess.ToggleHabit(h.ID); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	select {
	case got := <-fired:
		if got.ID != h.ID {
			t.Errorf("celebrated habit %q, want %q", got.ID, h.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("celebration hook never fired")
	}

	// Un-completing must not celebrate.
	if _, err := sess.ToggleHabit(h.ID); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	select {
	case <-fired:
		t.Fatal("celebration fired on uncomplete")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteHabit_ReturnsRemovedForUndo(t *testing.T) {
	sess, _ := createTestSession(t)

	h, _ := sess.AddHabit("Read", "📖")
	sess.ToggleHabit(h.ID)

	removed, err := sess.DeleteHabit(h.ID)
	if err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if removed == nil || removed.Streak != 1 {
		t.Fatalf("removed = %+v, want streak preserved", removed)
	}
	if len(sess.Habits()) != 0 {
		t.Fatal("habit still present after delete")
	}

	if err := sess.RestoreHabit(*removed); err != nil {
		t.Fatalf("RestoreHabit: %v", err)
	}
	habits := sess.Habits()
	if len(habits) != 1 || habits[0].ID != h.ID || habits[0].Streak != 1 {
		t.Errorf("restored habit = %+v", habits)
	}

	// Restoring twice is an error, not a duplicate.
	if err := sess.RestoreHabit(*removed); err == nil {
		t.Error("expected error restoring an existing id")
	}
}

func TestDeleteHabit_StaleIDIsNoOp(t *testing.T) {
	sess, _ := createTestSession(t)
	removed, err := sess.DeleteHabit("h_missing")
	if err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if removed != nil {
		t.Errorf("removed = %+v, want nil", removed)
	}
}

func TestAddGoal_Validation(t *testing.T) {
	sess, _ := createTestSession(t)

	if _, err := sess.AddGoal("", 10); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := sess.AddGoal("Books", 0); err == nil {
		t.Error("expected error for zero target")
	}
	if _, err := sess.AddGoal("Books", -3); err == nil {
		t.Error("expected error for negative target")
	}

	g, err := sess.AddGoal("  Books  ", 12)
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if g.Title != "Books" || g.Target != 12 || g.Current != 0 {
		t.Errorf("goal = %+v", g)
	}
	if !strings.HasPrefix(g.ID, "g_") {
		t.Errorf("id = %q, want g_ prefix", g.ID)
	}
}

func TestUpdateGoal(t *testing.T) {
	sess, _ := createTestSession(t)
	g, _ := sess.AddGoal("Books", 12)

	got, err := sess.UpdateGoal(g.ID, 5)
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if got.Current != 5 {
		t.Errorf("current = %d, want 5", got.Current)
	}

	// Current is not clamped; the display percentage is.
	got, _ = sess.UpdateGoal(g.ID, -7)
	if got.Current != -2 {
		t.Errorf("current = %d, want -2 after decrement past zero", got.Current)
	}
	if got.Progress() != 0 {
		t.Errorf("progress = %d, want 0 for negative current", got.Progress())
	}

	got, _ = sess.UpdateGoal(g.ID, 22)
	if got.Current != 20 {
		t.Errorf("current = %d, want 20", got.Current)
	}
	if got.Progress() != 100 {
		t.Errorf("progress = %d, want clamped 100", got.Progress())
	}

	if got, err := sess.UpdateGoal("g_missing", 1); err != nil || got != nil {
		t.Errorf("stale id: got %+v, %v; want nil, nil", got, err)
	}
}

func TestDeleteGoal_RoundTrip(t *testing.T) {
	sess, _ := createTestSession(t)
	g, _ := sess.AddGoal("Books", 12)
	sess.UpdateGoal(g.ID, 4)

	removed, err := sess.DeleteGoal(g.ID)
	if err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if removed == nil || removed.Current != 4 {
		t.Fatalf("removed = %+v", removed)
	}
	if err := sess.RestoreGoal(*removed); err != nil {
		t.Fatalf("RestoreGoal: %v", err)
	}
	goals := sess.Goals()
	if len(goals) != 1 || goals[0].Current != 4 {
		t.Errorf("restored goals = %+v", goals)
	}
}

func TestTheme(t *testing.T) {
	sess, _ := createTestSession(t)

	if sess.Theme() != storage.ThemeDark {
		t.Errorf("default theme = %q, want dark", sess.Theme())
	}
	got, err := sess.ToggleTheme()
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if got != storage.ThemeLight {
		t.Errorf("toggled theme = %q, want light", got)
	}
	if err := sess.SetTheme("sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if err := sess.SetTheme(storage.ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if sess.Theme() != storage.ThemeDark {
		t.Errorf("theme = %q, want dark", sess.Theme())
	}
}

func TestCheckDailyReset(t *testing.T) {
	sess, store := createTestSession(t)

	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	store.SetNowFunc(func() time.Time { return day1 })

	if _, err := sess.CheckDailyReset(); err != nil {
		t.Fatalf("CheckDailyReset: %v", err)
	}

	h, _ := sess.AddHabit("Read", "📖")
	sess.ToggleHabit(h.ID)

	// Same day: nothing to do.
	reset, err := sess.CheckDailyReset()
	if err != nil {
		t.Fatalf("CheckDailyReset: %v", err)
	}
	if reset {
		t.Error("reset on the same day")
	}
	if !sess.Habits()[0].CompletedToday {
		t.Error("same-day reset cleared the completion flag")
	}

	// Next day: flag clears, streak and history survive.
	day2 := day1.AddDate(0, 0, 1)
	store.SetNowFunc(func() time.Time { return day2 })

	reset, err = sess.CheckDailyReset()
	if err != nil {
		t.Fatalf("CheckDailyReset: %v", err)
	}
	if !reset {
		t.Error("expected a reset on the next day")
	}
	got := sess.Habits()[0]
	if got.CompletedToday {
		t.Error("completion flag survived the reset")
	}
	if got.Streak != 1 || got.Best != 1 {
		t.Errorf("streak/best = %d/%d, want untouched 1/1", got.Streak, got.Best)
	}
	if n := sess.History()[storage.DateKey(day1)]; n != 1 {
		t.Errorf("history for day1 = %d, want 1", n)
	}
	if store.LastLogin("alice") != storage.DateKey(day2) {
		t.Errorf("last login = %q, want %q", store.LastLogin("alice"), storage.DateKey(day2))
	}
}

func TestMutationsPersistAcrossSessions(t *testing.T) {
	sess, store := createTestSession(t)

	h, _ := sess.AddHabit("Read", "📖")
	sess.ToggleHabit(h.ID)
	sess.AddGoal("Books", 12)
	sess.ToggleTheme()

	again, err := Open(store, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(again.Habits()) != 1 || again.Habits()[0].Streak != 1 {
		t.Errorf("habits did not persist: %+v", again.Habits())
	}
	if len(again.Goals()) != 1 {
		t.Errorf("goals did not persist: %+v", again.Goals())
	}
	if again.Theme() != storage.ThemeLight {
		t.Errorf("theme did not persist: %q", again.Theme())
	}
	if n := again.History()[store.TodayKey()]; n != 1 {
		t.Errorf("history did not persist: %d", n)
	}
}
