// Package config handles configuration loading and defaults for the
// habitflow app. Configuration is loaded from XDG-compliant paths
// (typically ~/.config/habitflow/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"habitflow/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.habitflow)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance per color scheme
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables completion notifications
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`

	// StreakMilestones are streak lengths that get a louder cheer
	StreakMilestones []int `yaml:"streak_milestones,omitempty"`
}

// PaletteConfig defines the colors for one scheme (hex, e.g. "#FF5733").
type PaletteConfig struct {
	// Primary color for focused elements
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights and streak flames
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text
	Muted string `yaml:"muted,omitempty"`

	// Background color (empty for terminal default)
	Background string `yaml:"background,omitempty"`

	// Text color (empty for terminal default)
	Text string `yaml:"text,omitempty"`
}

// ThemeConfig holds one palette per stored color scheme.
type ThemeConfig struct {
	Dark  PaletteConfig `yaml:"dark,omitempty"`
	Light PaletteConfig `yaml:"light,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPane string `yaml:"next_pane,omitempty"` // default: "tab"
	Pane1    string `yaml:"pane_1,omitempty"`    // default: "1"
	Pane2    string `yaml:"pane_2,omitempty"`    // default: "2"
	Pane3    string `yaml:"pane_3,omitempty"`    // default: "3"
	Pane4    string `yaml:"pane_4,omitempty"`    // default: "4"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Item keys (habits and goals panes)
	Add       string `yaml:"add,omitempty"`       // default: "a"
	Toggle    string `yaml:"toggle,omitempty"`    // default: "d,enter,space"
	Delete    string `yaml:"delete,omitempty"`    // default: "x"
	Increment string `yaml:"increment,omitempty"` // default: "+,l,right"
	Decrement string `yaml:"decrement,omitempty"` // default: "-,h,left"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"

	// Undo/Redo keys
	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y"

	// Session keys
	ToggleTheme string `yaml:"toggle_theme,omitempty"` // default: "t"
	Logout      string `yaml:"logout,omitempty"`       // default: "ctrl+o"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting items
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Dark: PaletteConfig{
				Primary:    "#7C3AED", // Violet
				Accent:     "#F59E0B", // Amber
				Muted:      "#6B7280", // Gray
				Background: "",        // Terminal default
				Text:       "",        // Terminal default
			},
			Light: PaletteConfig{
				Primary:    "#6D28D9",
				Accent:     "#B45309",
				Muted:      "#9CA3AF",
				Background: "",
				Text:       "",
			},
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 80,
		},
		Notifications: NotificationConfig{
			Enabled:          false,
			Sound:            false,
			StreakMilestones: nil,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".habitflow"
	}
	return filepath.Join(home, ".habitflow")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "habitflow")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "habitflow")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans or slices (those require
// presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	c.Theme.Dark.mergeNonEmpty(other.Theme.Dark)
	c.Theme.Light.mergeNonEmpty(other.Theme.Light)

	// Keys merging
	if other.Keys.Quit != "" {
		c.Keys.Quit = other.Keys.Quit
	}
	if other.Keys.Help != "" {
		c.Keys.Help = other.Keys.Help
	}
	if other.Keys.NextPane != "" {
		c.Keys.NextPane = other.Keys.NextPane
	}
	if other.Keys.Pane1 != "" {
		c.Keys.Pane1 = other.Keys.Pane1
	}
	if other.Keys.Pane2 != "" {
		c.Keys.Pane2 = other.Keys.Pane2
	}
	if other.Keys.Pane3 != "" {
		c.Keys.Pane3 = other.Keys.Pane3
	}
	if other.Keys.Pane4 != "" {
		c.Keys.Pane4 = other.Keys.Pane4
	}
	if other.Keys.Up != "" {
		c.Keys.Up = other.Keys.Up
	}
	if other.Keys.Down != "" {
		c.Keys.Down = other.Keys.Down
	}
	if other.Keys.Top != "" {
		c.Keys.Top = other.Keys.Top
	}
	if other.Keys.Bottom != "" {
		c.Keys.Bottom = other.Keys.Bottom
	}
	if other.Keys.Add != "" {
		c.Keys.Add = other.Keys.Add
	}
	if other.Keys.Toggle != "" {
		c.Keys.Toggle = other.Keys.Toggle
	}
	if other.Keys.Delete != "" {
		c.Keys.Delete = other.Keys.Delete
	}
	if other.Keys.Increment != "" {
		c.Keys.Increment = other.Keys.Increment
	}
	if other.Keys.Decrement != "" {
		c.Keys.Decrement = other.Keys.Decrement
	}
	if other.Keys.Confirm != "" {
		c.Keys.Confirm = other.Keys.Confirm
	}
	if other.Keys.Cancel != "" {
		c.Keys.Cancel = other.Keys.Cancel
	}
	if other.Keys.Undo != "" {
		c.Keys.Undo = other.Keys.Undo
	}
	if other.Keys.Redo != "" {
		c.Keys.Redo = other.Keys.Redo
	}
	if other.Keys.ToggleTheme != "" {
		c.Keys.ToggleTheme = other.Keys.ToggleTheme
	}
	if other.Keys.Logout != "" {
		c.Keys.Logout = other.Keys.Logout
	}

	// UX ints (presence-aware in mergeFromYAML)
	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

func (p *PaletteConfig) mergeNonEmpty(other PaletteConfig) {
	if other.Primary != "" {
		p.Primary = other.Primary
	}
	if other.Accent != "" {
		p.Accent = other.Accent
	}
	if other.Muted != "" {
		p.Muted = other.Muted
	}
	if other.Background != "" {
		p.Background = other.Background
	}
	if other.Text != "" {
		p.Text = other.Text
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		c.mergeNonEmpty(other)
		if len(other.Notifications.StreakMilestones) > 0 {
			c.Notifications.StreakMilestones = other.Notifications.StreakMilestones
		}
		return
	}

	// First apply all non-empty string-ish merges.
	c.mergeNonEmpty(other)

	// Now re-apply booleans and slices only when present in YAML.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "narrow_layout_threshold") && other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
	if yamlHasPath(doc, "notifications", "streak_milestones") {
		c.Notifications.StreakMilestones = other.Notifications.StreakMilestones
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		// Expand ~ if present
		if c.DataDir == "~" {
			home, err := os.UserHomeDir()
			if err == nil {
				return home
			}
			return c.DataDir
		}

		if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
			home, err := os.UserHomeDir()
			if err == nil {
				trimmed := strings.TrimPrefix(c.DataDir, "~/")
				trimmed = strings.TrimPrefix(trimmed, `~\`)
				trimmed = strings.TrimPrefix(trimmed, `\`)
				return filepath.Join(home, trimmed)
			}
		}
		return c.DataDir
	}
	return defaultDataDir()
}
