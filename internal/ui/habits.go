package ui

import (
	"fmt"
	"strings"

	"habitflow/internal/config"
	"habitflow/internal/session"
	"habitflow/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// HabitsPane handles habit display and interactions.
type HabitsPane struct {
	session *session.Session
	habits  []storage.Habit
	cursor  int
	focused bool
	width   int
	height  int
	adding  bool
	addStep int // 0 = title, 1 = icon
	input   textinput.Model
	newName string
	styles  *Styles

	// Key bindings
	keys      HabitKeyMap
	inputKeys InputKeyMap
}

// NewHabitsPane creates a new habits pane.
func NewHabitsPane(sess *session.Session, styles *Styles, keyCfg *config.KeysConfig) *HabitsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Habit name (e.g., Meditate)"
	ti.CharLimit = 80
	ti.Width = 30

	p := &HabitsPane{
		session:   sess,
		input:     ti,
		styles:    styles,
		keys:      NewHabitKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
	p.refresh()
	return p
}

// SetStyles swaps the style set, used when the theme changes.
func (p *HabitsPane) SetStyles(styles *Styles) {
	p.styles = styles
}

// refresh re-reads the habit list from the session and clamps the cursor.
func (p *HabitsPane) refresh() {
	p.habits = p.session.Habits()
	if p.cursor >= len(p.habits) {
		p.cursor = max(0, len(p.habits)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *HabitsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-10)
}

// SetFocused sets whether this pane is focused.
func (p *HabitsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *HabitsPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether we're in add mode.
func (p *HabitsPane) IsAdding() bool {
	return p.adding
}

// Selected returns the habit under the cursor, if any.
func (p *HabitsPane) Selected() (storage.Habit, bool) {
	if len(p.habits) == 0 || p.cursor >= len(p.habits) {
		return storage.Habit{}, false
	}
	return p.habits[p.cursor], true
}

// Update handles messages for the habits pane.
func (p *HabitsPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// Handle async messages first
	switch msg.(type) {
	case habitAddedMsg, habitToggledMsg, habitDeletedMsg, habitRestoredMsg,
		undoResultMsg, redoResultMsg, dailyResetMsg:
		p.refresh()
		return nil
	}

	// If we're adding a habit, handle input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				if p.addStep == 0 {
					// Got name, now get icon
					p.newName = strings.TrimSpace(p.input.Value())
					if p.newName != "" {
						p.addStep = 1
						p.input.Reset()
						p.input.Placeholder = "Icon (emoji, e.g., 🧘)"
						p.input.CharLimit = 16
					}
				} else {
					// Got icon, create habit asynchronously
					icon := strings.TrimSpace(p.input.Value())
					name := p.newName
					p.resetAddMode()
					return addHabitCmd(p.session, name, icon)
				}
				return nil

			case key.Matches(msg, p.inputKeys.Cancel):
				p.resetAddMode()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.habits) > 0 {
				p.cursor = min(p.cursor+1, len(p.habits)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.habits) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.habits) > 0 {
				p.cursor = len(p.habits) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.addStep = 0
			p.input.Placeholder = "Habit name (e.g., Meditate)"
			p.input.CharLimit = 80
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			if habit, ok := p.Selected(); ok {
				return toggleHabitCmd(p.session, habit.ID)
			}
		}
	}

	return nil
}

// resetAddMode resets the add habit state.
func (p *HabitsPane) resetAddMode() {
	p.adding = false
	p.addStep = 0
	p.newName = ""
	p.input.Reset()
	p.input.Placeholder = "Habit name (e.g., Meditate)"
	p.input.CharLimit = 80
}

// handleMouse processes mouse events for the habits pane.
func (p *HabitsPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.habits) == 0 {
		return nil
	}

	// Content starts after title (1) + separator (1) + blank (1)
	const headerRows = 3

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.habits)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		row := msg.Y - headerRows
		if row < 0 || row >= len(p.habits) {
			return nil
		}
		p.cursor = row

		// Check if click was on the checkbox area
		if msg.X < 6 {
			habit := p.habits[p.cursor]
			return toggleHabitCmd(p.session, habit.ID)
		}
	}

	return nil
}

// View renders the habits pane.
func (p *HabitsPane) View() string {
	var b strings.Builder

	// Title
	b.WriteString(p.styles.PaneTitleStyle.Render("🔥 HABITS"))
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")
	b.WriteString("\n")

	if len(p.habits) == 0 && !p.adding {
		b.WriteString(p.styleMutedText("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		for i, habit := range p.habits {
			// Selection indicator
			prefix := "  "
			if i == p.cursor && p.focused && !p.adding {
				prefix = "▶ "
			}

			checkbox := p.styles.CheckboxPending
			if habit.CompletedToday {
				checkbox = p.styles.CheckboxDone
			}

			title := truncateText(habit.Title, max(10, p.width-24))
			line := fmt.Sprintf("%s%s %s %s", prefix, checkbox, habit.Icon, title)

			if habit.Streak > 0 {
				line += " " + p.styles.StreakStyle.Render(fmt.Sprintf("🔥%d", habit.Streak))
			}
			if habit.Best > habit.Streak {
				line += " " + p.styles.BestStyle.Render(fmt.Sprintf("(best %d)", habit.Best))
			}

			// Highlight if selected
			if i == p.cursor && p.focused && !p.adding {
				line = p.styles.ItemSelectedStyle.Render(line)
			}

			b.WriteString(line)
			b.WriteString("\n")
		}

		// Completion summary
		done, total := p.TodayCompletion()
		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Today: ") +
			p.styles.StatValueStyle.Render(fmt.Sprintf("%d/%d", done, total)))
		b.WriteString("\n")
	}

	// Input field when adding
	if p.adding {
		b.WriteString("\n")
		var prompt string
		if p.addStep == 0 {
			prompt = p.styles.InputPromptStyle.Render("Name: ")
		} else {
			prompt = p.styles.InputPromptStyle.Render("Icon: ")
		}
		b.WriteString("  " + prompt + p.input.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// TodayCompletion returns how many habits are done today.
func (p *HabitsPane) TodayCompletion() (done, total int) {
	total = len(p.habits)
	for _, habit := range p.habits {
		if habit.CompletedToday {
			done++
		}
	}
	return done, total
}

// styleMutedText applies muted style to text.
func (p *HabitsPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}

// truncateText shortens a string to fit the given display width,
// appending an ellipsis. Widths are measured in terminal cells so
// wide runes count correctly.
func truncateText(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
