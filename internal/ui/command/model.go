// Package command implements the ":" palette: a single-line input that
// parses what the user typed into a Command.
package command

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/theme"
)

// historyLimit caps how many executed commands up/down can recall.
const historyLimit = 20

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg Command

// Model is the command palette view.
type Model struct {
	input   textinput.Model
	history []string
	// recall indexes history while browsing with up/down; len(history)
	// means the live input.
	recall int
	err    error
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "home, projects, tasks, snippets, mail, logout, quit, filter <all|pending|completed>"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Suggestions())
	ti.Focus()
	ti.Width = max(width-6, 0)

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette. Tab accepts the
// highlighted suggestion.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.browse(-1)
			return m, nil
		case tea.KeyDown:
			m.browse(1)
			return m, nil
		}
		m.err = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	raw := m.input.Value()
	c, err := Parse(raw)
	if err != nil {
		if raw != "" {
			m.err = err
		}
		return m, nil
	}

	m.remember(raw)
	m.input.Reset()
	m.err = nil
	return m, func() tea.Msg {
		return CommandMsg(c)
	}
}

func (m *Model) remember(raw string) {
	if n := len(m.history); n == 0 || m.history[n-1] != raw {
		m.history = append(m.history, raw)
	}
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.recall = len(m.history)
}

// browse moves through history; stepping past the newest entry clears
// the input.
func (m *Model) browse(step int) {
	if len(m.history) == 0 {
		return
	}
	m.recall = min(max(m.recall+step, 0), len(m.history))
	if m.recall == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.recall])
	m.input.CursorEnd()
}

// Err returns the parse error from the last submit, if any.
func (m Model) Err() error {
	return m.err
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// View renders the command palette.
func (m Model) View() string {
	title := theme.TitleStyle.MarginBottom(1).Render("Command Palette")

	parts := []string{title, m.input.View()}
	if m.err != nil {
		parts = append(parts, theme.ErrorStyle.Render(m.err.Error()))
	} else {
		parts = append(parts, theme.HelpStyle.Render("tab complete | ↑/↓ history | enter run | esc close"))
	}

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 0)
}

// Focus clears the previous input and gives keyboard focus to it.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	m.err = nil
	m.recall = len(m.history)
	return m.input.Focus()
}

// Blur releases keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}
