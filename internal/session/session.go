// Package session holds the in-memory state for a logged-in user and
// applies habit and goal mutations, persisting the full snapshot after
// every change.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"habitflow/internal/storage"
)

const (
	maxHabitTitleLen = 80
	maxHabitIconLen  = 16
	maxGoalTitleLen  = 80
	maxGoalTarget    = 100000
)

// CelebrateFunc is invoked when a habit transitions to completed.
type CelebrateFunc func(habit storage.Habit)

// Session owns the working snapshot for one user. All methods are safe
// for concurrent use.
type Session struct {
	mu    sync.Mutex
	store *storage.Store
	user  string
	snap  *storage.Snapshot

	celebrate CelebrateFunc
}

// Open loads the user's snapshot and returns a ready session. The
// returned error is advisory: recovery from corrupt files already
// happened and the session is usable either way.
func Open(store *storage.Store, user string) (*Session, error) {
	user = strings.TrimSpace(user)
	if err := storage.ValidateUserName(user); err != nil {
		return nil, err
	}

	snap, err := store.Load(user)
	return &Session{store: store, user: user, snap: snap}, err
}

// User returns the name the session was opened for.
func (s *Session) User() string {
	return s.user
}

// Now returns the current time according to the store clock.
func (s *Session) Now() time.Time {
	return s.store.Now()
}

// SetCelebrateFunc registers the hook fired when a habit is completed.
// The hook runs on its own goroutine and must not touch the session.
func (s *Session) SetCelebrateFunc(fn CelebrateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.celebrate = fn
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() *storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Habits returns a copy of the habit list.
func (s *Session) Habits() []storage.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Habit, len(s.snap.Habits))
	copy(out, s.snap.Habits)
	return out
}

// Goals returns a copy of the goal list.
func (s *Session) Goals() []storage.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Goal, len(s.snap.Goals))
	copy(out, s.snap.Goals)
	return out
}

// History returns a copy of the date→count completion history.
func (s *Session) History() storage.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(storage.History, len(s.snap.History))
	for k, v := range s.snap.History {
		out[k] = v
	}
	return out
}

// Theme returns the active theme.
func (s *Session) Theme() storage.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Settings.Theme
}

// AddHabit validates and appends a new habit with zeroed counters.
func (s *Session) AddHabit(title, icon string) (*storage.Habit, error) {
	title = strings.TrimSpace(title)
	icon = strings.TrimSpace(icon)

	if title == "" {
		return nil, fmt.Errorf("habit title is required")
	}
	if len(title) > maxHabitTitleLen {
		return nil, fmt.Errorf("habit title too long (max %d)", maxHabitTitleLen)
	}
	if len(icon) > maxHabitIconLen {
		return nil, fmt.Errorf("habit icon too long (max %d)", maxHabitIconLen)
	}
	if icon == "" {
		icon = "✅"
	}

	id, err := newID("h")
	if err != nil {
		return nil, err
	}

	habit := storage.Habit{
		ID:    id,
		Title: title,
		Icon:  icon,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Habits = append(s.snap.Habits, habit)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &habit, nil
}

// ToggleHabit flips a habit's completion for today. Completing bumps
// the streak, the best-streak high-water mark, and today's history
// count; un-completing walks those back, never below zero. A stale id
// is a no-op.
func (s *Session) ToggleHabit(id string) (*storage.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.habitIndexLocked(id)
	if idx < 0 {
		return nil, nil
	}

	h := &s.snap.Habits[idx]
	today := s.store.TodayKey()

	if !h.CompletedToday {
		h.CompletedToday = true
		h.Streak++
		if h.Streak > h.Best {
			h.Best = h.Streak
		}
		s.snap.History[today]++
	} else {
		h.CompletedToday = false
		h.Streak--
		if h.Streak < 0 {
			h.Streak = 0
		}
		if s.snap.History[today] > 0 {
			s.snap.History[today]--
		}
	}

	if err := s.persistLocked(); err != nil {
		return nil, err
	}

	result := *h
	if result.CompletedToday && s.celebrate != nil {
		fn := s.celebrate
		go fn(result)
	}
	return &result, nil
}

// DeleteHabit removes a habit and returns the removed value so callers
// can offer undo. A stale id is a no-op.
func (s *Session) DeleteHabit(id string) (*storage.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.habitIndexLocked(id)
	if idx < 0 {
		return nil, nil
	}

	removed := s.snap.Habits[idx]
	s.snap.Habits = append(s.snap.Habits[:idx], s.snap.Habits[idx+1:]...)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &removed, nil
}

// RestoreHabit re-inserts a previously deleted habit, keeping its id
// and counters. Used by undo.
func (s *Session) RestoreHabit(habit storage.Habit) error {
	habit.Title = strings.TrimSpace(habit.Title)
	if strings.TrimSpace(habit.ID) == "" {
		return fmt.Errorf("habit id is required")
	}
	if habit.Title == "" {
		return fmt.Errorf("habit title is required")
	}
	if len(habit.Title) > maxHabitTitleLen {
		return fmt.Errorf("habit title too long (max %d)", maxHabitTitleLen)
	}
	if habit.Streak < 0 || habit.Best < 0 {
		return fmt.Errorf("habit counters must not be negative")
	}
	if habit.Best < habit.Streak {
		habit.Best = habit.Streak
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.habitIndexLocked(habit.ID) >= 0 {
		return fmt.Errorf("habit %q already exists", habit.ID)
	}
	s.snap.Habits = append(s.snap.Habits, habit)
	return s.persistLocked()
}

// AddGoal validates and appends a numeric goal starting at zero.
func (s *Session) AddGoal(title string, target int) (*storage.Goal, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if len(title) > maxGoalTitleLen {
		return nil, fmt.Errorf("goal title too long (max %d)", maxGoalTitleLen)
	}
	if target < 1 {
		return nil, fmt.Errorf("goal target must be at least 1")
	}
	if target > maxGoalTarget {
		return nil, fmt.Errorf("goal target too large (max %d)", maxGoalTarget)
	}

	id, err := newID("g")
	if err != nil {
		return nil, err
	}

	goal := storage.Goal{
		ID:     id,
		Title:  title,
		Target: target,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Goals = append(s.snap.Goals, goal)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal adds delta to a goal's progress. Current is not clamped;
// it may pass the target or go negative, and an inverse delta restores
// it exactly. Display clamps the percentage. A stale id is a no-op.
func (s *Session) UpdateGoal(id string, delta int) (*storage.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.goalIndexLocked(id)
	if idx < 0 {
		return nil, nil
	}

	g := &s.snap.Goals[idx]
	g.Current += delta

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	result := *g
	return &result, nil
}

// DeleteGoal removes a goal and returns the removed value for undo.
// A stale id is a no-op.
func (s *Session) DeleteGoal(id string) (*storage.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.goalIndexLocked(id)
	if idx < 0 {
		return nil, nil
	}

	removed := s.snap.Goals[idx]
	s.snap.Goals = append(s.snap.Goals[:idx], s.snap.Goals[idx+1:]...)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &removed, nil
}

// RestoreGoal re-inserts a previously deleted goal. Used by undo.
func (s *Session) RestoreGoal(goal storage.Goal) error {
	goal.Title = strings.TrimSpace(goal.Title)
	if strings.TrimSpace(goal.ID) == "" {
		return fmt.Errorf("goal id is required")
	}
	if goal.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	if goal.Target < 1 {
		return fmt.Errorf("goal target must be at least 1")
	}
	if goal.Current < 0 {
		goal.Current = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.goalIndexLocked(goal.ID) >= 0 {
		return fmt.Errorf("goal %q already exists", goal.ID)
	}
	s.snap.Goals = append(s.snap.Goals, goal)
	return s.persistLocked()
}

// SetTheme switches the color theme and persists it.
func (s *Session) SetTheme(theme storage.Theme) error {
	if theme != storage.ThemeDark && theme != storage.ThemeLight {
		return fmt.Errorf("invalid theme: must be dark or light")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Settings.Theme = theme
	return s.persistLocked()
}

// ToggleTheme flips between dark and light and returns the new theme.
func (s *Session) ToggleTheme() (storage.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.Settings.Theme == storage.ThemeDark {
		s.snap.Settings.Theme = storage.ThemeLight
	} else {
		s.snap.Settings.Theme = storage.ThemeDark
	}
	if err := s.persistLocked(); err != nil {
		return "", err
	}
	return s.snap.Settings.Theme, nil
}

// CheckDailyReset clears every habit's completed-today flag when the
// stored last-login date differs from today, then records today as the
// last login. Streaks and history are untouched; missing a day only
// stops the streak from growing. Reports whether a reset happened.
func (s *Session) CheckDailyReset() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.store.TodayKey()
	last := s.store.LastLogin(s.user)
	if last == today {
		return false, nil
	}

	reset := false
	for i := range s.snap.Habits {
		if s.snap.Habits[i].CompletedToday {
			s.snap.Habits[i].CompletedToday = false
			reset = true
		}
	}
	if reset {
		if err := s.persistLocked(); err != nil {
			return false, err
		}
	}

	if err := s.store.SetLastLogin(s.user, today); err != nil {
		return reset, err
	}
	return reset, nil
}

func (s *Session) habitIndexLocked(id string) int {
	for i := range s.snap.Habits {
		if s.snap.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) goalIndexLocked(id string) int {
	for i := range s.snap.Goals {
		if s.snap.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) persistLocked() error {
	return s.store.Save(s.user, s.snap)
}

func newID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}
