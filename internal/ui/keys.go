// Package ui provides terminal user interface components for the
// habitflow app. This file defines key bindings using the Bubble Tea
// key package for type-safe key matching, help text generation, and
// customization through config.
package ui

import (
	"strings"

	"habitflow/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	NextPane    key.Binding
	Pane1       key.Binding
	Pane2       key.Binding
	Pane3       key.Binding
	Pane4       key.Binding
	Undo        key.Binding
	Redo        key.Binding
	ToggleTheme key.Binding
	Logout      key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextPane: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextPane, "tab")...),
			key.WithHelp("tab", "next pane"),
		),
		Pane1: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane1, "1")...),
			key.WithHelp("1", "habits"),
		),
		Pane2: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane2, "2")...),
			key.WithHelp("2", "goals"),
		),
		Pane3: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane3, "3")...),
			key.WithHelp("3", "calendar"),
		),
		Pane4: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane4, "4")...),
			key.WithHelp("4", "analytics"),
		),
		Undo: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Undo, "ctrl+z", "u")...),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Redo, "ctrl+y")...),
			key.WithHelp("ctrl+y", "redo"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTheme, "t")...),
			key.WithHelp("t", "theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Logout, "ctrl+o")...),
			key.WithHelp("ctrl+o", "log out"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Habits Pane Keys
// =============================================================================

// HabitKeyMap defines keys for the habits pane.
type HabitKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	NavigationKeyMap
}

// DefaultHabitKeyMap returns the default habit pane key bindings.
func DefaultHabitKeyMap() HabitKeyMap {
	return NewHabitKeyMap(&config.KeysConfig{})
}

// NewHabitKeyMap creates habit key bindings from config.
func NewHabitKeyMap(cfg *config.KeysConfig) HabitKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return HabitKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Toggle, " ", "enter", "d")...),
			key.WithHelp("space", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "x")...),
			key.WithHelp("x", "delete"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the habit pane (implements help.KeyMap).
func (k HabitKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Down}
}

// FullHelp returns the full help for the habit pane (implements help.KeyMap).
func (k HabitKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Goals Pane Keys
// =============================================================================

// GoalKeyMap defines keys for the goals pane.
type GoalKeyMap struct {
	Add       key.Binding
	Increment key.Binding
	Decrement key.Binding
	Delete    key.Binding
	NavigationKeyMap
}

// DefaultGoalKeyMap returns the default goal pane key bindings.
func DefaultGoalKeyMap() GoalKeyMap {
	return NewGoalKeyMap(&config.KeysConfig{})
}

// NewGoalKeyMap creates goal key bindings from config.
func NewGoalKeyMap(cfg *config.KeysConfig) GoalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GoalKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add goal"),
		),
		Increment: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Increment, "+", "l", "right")...),
			key.WithHelp("+/→", "progress"),
		),
		Decrement: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Decrement, "-", "h", "left")...),
			key.WithHelp("-/←", "regress"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "x")...),
			key.WithHelp("x", "delete"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the goal pane (implements help.KeyMap).
func (k GoalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Increment, k.Delete, k.Down}
}

// FullHelp returns the full help for the goal pane (implements help.KeyMap).
func (k GoalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Increment, k.Decrement, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
