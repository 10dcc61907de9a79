package ui

import (
	"habitflow/internal/config"
	"habitflow/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized from the palette for
// the active color scheme.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	ItemSelectedStyle lipgloss.Style
	CheckboxDone      string
	CheckboxPending   string

	StreakStyle lipgloss.Style
	BestStyle   lipgloss.Style

	GoalBarFilled string
	GoalBarEmpty  string
	GoalDoneStyle lipgloss.Style

	CalendarGoodStyle    lipgloss.Style
	CalendarPerfectStyle lipgloss.Style
	CalendarTodayStyle   lipgloss.Style
	CalendarBlankStyle   lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates a Styles instance for the given stored theme,
// picking the matching palette from config.
func NewStyles(cfg *config.Config, theme storage.Theme) *Styles {
	palette := cfg.Theme.Dark
	if theme == storage.ThemeLight {
		palette = cfg.Theme.Light
	}
	return NewStylesFromPalette(&palette, theme)
}

// NewStylesFromPalette creates a Styles instance from one palette.
// Empty palette colors fall back to scheme-appropriate defaults.
func NewStylesFromPalette(palette *config.PaletteConfig, theme storage.Theme) *Styles {
	s := &Styles{}

	light := theme == storage.ThemeLight

	if light {
		s.ColorPrimary = colorOrDefault(palette.Primary, "#6D28D9")
		s.ColorMuted = colorOrDefault(palette.Muted, "#9CA3AF")
		s.ColorAccent = colorOrDefault(palette.Accent, "#B45309")
		s.ColorBg = colorOrDefault(palette.Background, "#F9FAFB")
		s.ColorBgLight = lipgloss.Color("#E5E7EB")
		s.ColorText = colorOrDefault(palette.Text, "#111827")
		s.ColorTextMuted = lipgloss.Color("#6B7280")
	} else {
		s.ColorPrimary = colorOrDefault(palette.Primary, "#7C3AED")
		s.ColorMuted = colorOrDefault(palette.Muted, "#6B7280")
		s.ColorAccent = colorOrDefault(palette.Accent, "#F59E0B")
		s.ColorBg = colorOrDefault(palette.Background, "#1F2937")
		s.ColorBgLight = lipgloss.Color("#374151")
		s.ColorText = colorOrDefault(palette.Text, "#F9FAFB")
		s.ColorTextMuted = lipgloss.Color("#9CA3AF")
	}

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Date in title bar
	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// List items
	s.ItemSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.CheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.CheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	// Streaks
	s.StreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.BestStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Goal progress
	s.GoalBarFilled = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("█")
	s.GoalBarEmpty = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("░")

	s.GoalDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	// Calendar day cells
	s.CalendarGoodStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	s.CalendarPerfectStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.CalendarTodayStyle = lipgloss.NewStyle().
		Background(s.ColorPrimary).
		Foreground(s.ColorText).
		Bold(true)

	s.CalendarBlankStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
