package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpSection groups related bindings in the help overlay.
type helpSection struct {
	title string
	rows  [][2]string // key, description
}

// helpSections lists everything the overlay documents.
func helpSections() []helpSection {
	return []helpSection{
		{
			title: "Navigation",
			rows: [][2]string{
				{"tab", "next pane"},
				{"1-4", "jump to pane"},
				{"j/k, ↓/↑", "move cursor"},
				{"g / G", "top / bottom"},
			},
		},
		{
			title: "Habits",
			rows: [][2]string{
				{"a", "add habit"},
				{"space/enter", "toggle today"},
				{"x", "delete habit"},
			},
		},
		{
			title: "Goals",
			rows: [][2]string{
				{"a", "add goal"},
				{"+ / -", "adjust progress"},
				{"x", "delete goal"},
			},
		},
		{
			title: "General",
			rows: [][2]string{
				{"ctrl+z / ctrl+y", "undo / redo"},
				{"t", "toggle theme"},
				{"ctrl+o", "log out"},
				{"?", "toggle this help"},
				{"q", "quit"},
			},
		},
	}
}

// renderHelpOverlay draws the help screen centered in the window.
func renderHelpOverlay(styles *Styles, width, height int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("KEYBOARD SHORTCUTS"))
	b.WriteString("\n\n")

	for i, section := range helpSections() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.PaneTitleStyle.Render(section.title))
		b.WriteString("\n")
		for _, row := range section.rows {
			keyCol := styles.HelpKeyStyle.Render(padRight(row[0], 16))
			b.WriteString("  " + keyCol + styles.HelpStyle.Render(row[1]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("press any key to close"))

	box := styles.PaneFocusedStyle.Render(b.String())
	if width == 0 || height == 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
