package ui

import (
	"fmt"
	"strconv"
	"strings"

	"habitflow/internal/config"
	"habitflow/internal/session"
	"habitflow/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// goalBarWidth is the number of cells in a goal progress bar.
const goalBarWidth = 14

// GoalsPane handles goal display and interactions.
type GoalsPane struct {
	session *session.Session
	goals   []storage.Goal
	cursor  int
	focused bool
	width   int
	height  int
	adding  bool
	addStep int // 0 = title, 1 = target
	input   textinput.Model
	newName string
	styles  *Styles

	// Key bindings
	keys      GoalKeyMap
	inputKeys InputKeyMap
}

// NewGoalsPane creates a new goals pane.
func NewGoalsPane(sess *session.Session, styles *Styles, keyCfg *config.KeysConfig) *GoalsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Goal title (e.g., Read 12 books)"
	ti.CharLimit = 80
	ti.Width = 30

	p := &GoalsPane{
		session:   sess,
		input:     ti,
		styles:    styles,
		keys:      NewGoalKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
	p.refresh()
	return p
}

// SetStyles swaps the style set, used when the theme changes.
func (p *GoalsPane) SetStyles(styles *Styles) {
	p.styles = styles
}

// refresh re-reads the goal list from the session and clamps the cursor.
func (p *GoalsPane) refresh() {
	p.goals = p.session.Goals()
	if p.cursor >= len(p.goals) {
		p.cursor = max(0, len(p.goals)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *GoalsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-10)
}

// SetFocused sets whether this pane is focused.
func (p *GoalsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *GoalsPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether we're in add mode.
func (p *GoalsPane) IsAdding() bool {
	return p.adding
}

// Selected returns the goal under the cursor, if any.
func (p *GoalsPane) Selected() (storage.Goal, bool) {
	if len(p.goals) == 0 || p.cursor >= len(p.goals) {
		return storage.Goal{}, false
	}
	return p.goals[p.cursor], true
}

// Update handles messages for the goals pane.
func (p *GoalsPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// Handle async messages first
	switch msg.(type) {
	case goalAddedMsg, goalUpdatedMsg, goalDeletedMsg, goalRestoredMsg,
		undoResultMsg, redoResultMsg:
		p.refresh()
		return nil
	}

	// If we're adding a goal, handle input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				if p.addStep == 0 {
					// Got title, now get target
					p.newName = strings.TrimSpace(p.input.Value())
					if p.newName != "" {
						p.addStep = 1
						p.input.Reset()
						p.input.Placeholder = "Target (e.g., 12)"
						p.input.CharLimit = 6
					}
				} else {
					target, err := strconv.Atoi(strings.TrimSpace(p.input.Value()))
					if err != nil || target < 1 {
						// Keep the prompt open until we get a number
						p.input.Reset()
						return nil
					}
					title := p.newName
					p.resetAddMode()
					return addGoalCmd(p.session, title, target)
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
			if len(p.goals) > 0 {
				p.cursor = min(p.cursor+1, len(p.goals)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.goals) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.goals) > 0 {
				p.cursor = len(p.goals) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.addStep = 0
			p.input.Placeholder = "Goal title (e.g., Read 12 books)"
			p.input.CharLimit = 80
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Increment):
			if goal, ok := p.Selected(); ok {
				return updateGoalCmd(p.session, goal.ID, 1)
			}

		case key.Matches(msg, p.keys.Decrement):
			if goal, ok := p.Selected(); ok && goal.Current > 0 {
				return updateGoalCmd(p.session, goal.ID, -1)
			}
		}
	}

	return nil
}

// resetAddMode resets the add goal state.
func (p *GoalsPane) resetAddMode() {
	p.adding = false
	p.addStep = 0
	p.newName = ""
	p.input.Reset()
	p.input.Placeholder = "Goal title (e.g., Read 12 books)"
	p.input.CharLimit = 80
}

// handleMouse processes mouse events for the goals pane.
func (p *GoalsPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.goals) == 0 {
		return nil
	}

	// Title (1) + separator (1) + blank (1), then two rows per goal.
	const headerRows = 3

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.goals)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		row := (msg.Y - headerRows) / 2
		if row < 0 || row >= len(p.goals) {
			return nil
		}
		p.cursor = row
	}

	return nil
}

// View renders the goals pane.
func (p *GoalsPane) View() string {
	var b strings.Builder

	// Title
	b.WriteString(p.styles.PaneTitleStyle.Render("🎯 GOALS"))
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")
	b.WriteString("\n")

	if len(p.goals) == 0 && !p.adding {
		b.WriteString(p.styleMutedText("  No goals yet."))
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		for i, goal := range p.goals {
			// Selection indicator
			prefix := "  "
			if i == p.cursor && p.focused && !p.adding {
				prefix = "▶ "
			}

			title := truncateText(goal.Title, max(10, p.width-8))
			line := prefix + title
			if i == p.cursor && p.focused && !p.adding {
				line = p.styles.ItemSelectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")

			bar := p.renderProgressBar(goal)
			counts := fmt.Sprintf(" %d/%d (%d%%)", goal.Current, goal.Target, goal.Progress())
			if goal.Current >= goal.Target {
				counts = p.styles.GoalDoneStyle.Render(counts + " ✔")
			} else {
				counts = p.styles.StatValueStyle.Render(counts)
			}
			b.WriteString("    " + bar + counts)
			b.WriteString("\n")
		}
	}

	// Input field when adding
	if p.adding {
		b.WriteString("\n")
		var prompt string
		if p.addStep == 0 {
			prompt = p.styles.InputPromptStyle.Render("Title: ")
		} else {
			prompt = p.styles.InputPromptStyle.Render("Target: ")
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

// renderProgressBar draws a fixed-width bar for a goal. Progress past
// the target still renders as a full bar.
func (p *GoalsPane) renderProgressBar(goal storage.Goal) string {
	filled := goal.Progress() * goalBarWidth / 100
	if filled > goalBarWidth {
		filled = goalBarWidth
	}
	return strings.Repeat(p.styles.GoalBarFilled, filled) +
		strings.Repeat(p.styles.GoalBarEmpty, goalBarWidth-filled)
}

// styleMutedText applies muted style to text.
func (p *GoalsPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}
