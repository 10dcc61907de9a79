package storage

import "math"

// Theme is the visual theme preference stored per user.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Habit represents a single tracked habit.
//
// Streak counts consecutive explicit completions; it is only changed by
// toggles, never by calendar-gap detection. Best is a historical high-water
// mark and never decreases.
type Habit struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Icon           string `json:"icon"`
	Streak         int    `json:"streak"`
	Best           int    `json:"best"`
	CompletedToday bool   `json:"completed_today"`
}

// Goal represents a numeric goal with a progress counter.
type Goal struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Target  int    `json:"target"`
	Current int    `json:"current"`
}

// Progress returns the completion percentage, clamped to 0..100.
// Current itself is never clamped and may exceed Target.
func (g Goal) Progress() int {
	if g.Target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(g.Current) / float64(g.Target) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Settings holds per-user preferences.
type Settings struct {
	Theme Theme `json:"theme"`
}

// History maps a local-time YYYY-MM-DD date key to the number of habit
// completions recorded that day. Counts never go below zero; zero-valued
// entries are kept once a date has been touched.
type History map[string]int

// Snapshot is the full per-user state, persisted as one logical unit.
type Snapshot struct {
	Habits   []Habit  `json:"habits"`
	Goals    []Goal   `json:"goals"`
	Settings Settings `json:"settings"`
	History  History  `json:"history"`
}

// DefaultSnapshot returns the state of a user with no stored data.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Habits:   []Habit{},
		Goals:    []Goal{},
		Settings: Settings{Theme: ThemeDark},
		History:  History{},
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Habits:   make([]Habit, len(s.Habits)),
		Goals:    make([]Goal, len(s.Goals)),
		Settings: s.Settings,
		History:  make(History, len(s.History)),
	}
	copy(c.Habits, s.Habits)
	copy(c.Goals, s.Goals)
	for k, v := range s.History {
		c.History[k] = v
	}
	return c
}

// habitsFile is the on-disk envelope for the habits field.
type habitsFile struct {
	Version int     `json:"version"`
	Habits  []Habit `json:"habits"`
}

// goalsFile is the on-disk envelope for the goals field.
type goalsFile struct {
	Version int    `json:"version"`
	Goals   []Goal `json:"goals"`
}

// settingsFile is the on-disk envelope for the settings field.
type settingsFile struct {
	Version  int      `json:"version"`
	Settings Settings `json:"settings"`
}

// historyFile is the on-disk envelope for the history field.
type historyFile struct {
	Version int     `json:"version"`
	History History `json:"history"`
}
