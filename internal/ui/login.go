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
	"github.com/charmbracelet/lipgloss"
)

// LoginView prompts for a user name and opens a session for it.
// Entering a name that has no saved data creates a fresh profile.
type LoginView struct {
	store  *storage.Store
	input  textinput.Model
	users  []string
	errMsg string
	width  int
	height int
	styles *Styles

	inputKeys InputKeyMap
}

// NewLoginView creates the login prompt.
func NewLoginView(store *storage.Store, styles *Styles, keyCfg *config.KeysConfig) *LoginView {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 50
	ti.Width = 30
	ti.Focus()

	return &LoginView{
		store:     store,
		input:     ti,
		users:     store.ListUsers(),
		styles:    styles,
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetStyles swaps the style set, used when the theme changes.
func (v *LoginView) SetStyles(styles *Styles) {
	v.styles = styles
}

// SetSize sets the view dimensions.
func (v *LoginView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Update handles messages for the login view. On a valid name it opens
// the session and returns a command that records the login and runs the
// daily reset check.
func (v *LoginView) Update(msg tea.Msg) (*session.Session, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.inputKeys.Confirm):
			name := strings.TrimSpace(v.input.Value())
			if err := storage.ValidateUserName(name); err != nil {
				v.errMsg = err.Error()
				return nil, nil
			}
			sess, err := session.Open(v.store, name)
			if sess == nil {
				v.errMsg = err.Error()
				return nil, nil
			}
			// A load error still yields a usable fresh session; the
			// status bar reports it after login.
			var cmds []tea.Cmd
			if err != nil {
				cmds = append(cmds, func() tea.Msg { return errMsg{err} })
			}
			cmds = append(cmds, loginCmd(v.store, sess))
			v.errMsg = ""
			v.input.Reset()
			return sess, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return nil, cmd
}

// View renders the login screen centered in the window.
func (v *LoginView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.TitleStyle.Render("HabitFlow"))
	b.WriteString("\n")
	b.WriteString(v.styles.DateStyle.Render("Build habits. Keep streaks."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputPromptStyle.Render("Who are you? "))
	b.WriteString(v.input.View())
	b.WriteString("\n")

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.ErrorStyle.Render(v.errMsg))
		b.WriteString("\n")
	}

	if len(v.users) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.StatLabelStyle.Render(
			fmt.Sprintf("Known profiles: %s", strings.Join(v.users, ", "))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.HelpStyle.Render("enter to continue • ctrl+c to quit"))

	box := v.styles.PaneFocusedStyle.Render(b.String())
	if v.width == 0 || v.height == 0 {
		return box
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}
