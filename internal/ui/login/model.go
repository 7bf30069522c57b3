// Package login renders the lock screen in front of the workspace. Any
// non-empty password unlocks it; the screen keeps casual eyes off the
// credentials list and does not authenticate anyone.
package login

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/theme"
)

// ErrAccessDenied is reported when the password is empty.
var ErrAccessDenied = errors.New("access denied: invalid password")

// deniedText is shown on the lock screen after a rejected password.
const deniedText = "Access denied. Invalid password."

// UnlockedMsg is emitted when a password was accepted.
type UnlockedMsg struct{}

// Check validates a password.
func Check(password string) error {
	if password == "" {
		return ErrAccessDenied
	}
	return nil
}

// Model is the lock screen.
type Model struct {
	input  textinput.Model
	err    error
	width  int
	height int
}

// New creates a focused lock screen.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "master password"
	ti.Prompt = "🔒 "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 32
	ti.Focus()

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input on the lock screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		if err := Check(m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.input.Reset()
		return m, func() tea.Msg { return UnlockedMsg{} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the lock screen centered in the terminal.
func (m Model) View() string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("KodePortal")
	subtitle := theme.HelpStyle.Render("</> Workspace")
	banner := theme.HelpStyle.Render("── restricted access ──")

	lines := []string{logo, subtitle, "", banner, "", m.input.View()}
	if m.err != nil {
		lines = append(lines, "", theme.ErrorStyle.Render(deniedText))
	}
	lines = append(lines, "", theme.HelpStyle.Render("enter unlock · ctrl+c quit"))

	card := theme.DetailPanelStyle.
		Width(44).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// Reset clears the input and any error, and refocuses the input.
func (m *Model) Reset() tea.Cmd {
	m.input.Reset()
	m.err = nil
	return m.input.Focus()
}

// Err returns the last submission error.
func (m Model) Err() error {
	return m.err
}

// SetSize updates the lock screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
