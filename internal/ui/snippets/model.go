// Package snippets implements the snippets drawer: a list of saved code
// pieces that can be added, deleted and copied to the clipboard.
package snippets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/clipboard"
	"github.com/nhle/kodeportal/internal/keys"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/theme"
	"github.com/nhle/kodeportal/internal/ui/ack"
	"github.com/nhle/kodeportal/internal/workspace"
)

// CloseMsg asks the shell to close the drawer.
type CloseMsg struct{}

type drawerMode int

const (
	modeList drawerMode = iota
	modeForm
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title string
	code  string
}

// Deps are the collaborators of the drawer.
type Deps struct {
	State     *workspace.State
	Keys      *keys.KeyMap
	Clipboard clipboard.Writer
	// Acks must be a single-key tracker: one snippet shows "copied" at a time.
	Acks      *ack.Tracker
	Log       zerolog.Logger
	CodeStyle string
}

// Model is the snippets drawer.
type Model struct {
	Deps

	mode      drawerMode
	cursor    int
	vp        viewport.Model
	code      *codeRenderer
	form      *huh.Form
	fb        *formBindings
	statusMsg string
	width     int
	height    int
}

// New creates the drawer.
func New(d Deps, width, height int) Model {
	m := Model{
		Deps: d,
		code: newCodeRenderer(d.CodeStyle),
		fb:   &formBindings{},
	}
	m.vp = viewport.New(0, 0)
	m.SetSize(width, height)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the add form is open.
func (m Model) Capturing() bool {
	return m.mode == modeForm
}

// Reset returns the drawer to its list with the cursor on top.
func (m *Model) Reset() {
	m.mode = modeList
	m.form = nil
	m.cursor = 0
	m.statusMsg = ""
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ack.ExpiredMsg:
		m.Acks.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.handleListKey(msg)
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.statusMsg = ""
	snippets := m.State.Snippets()

	switch {
	case key.Matches(msg, m.Keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.Keys.Down):
		if len(snippets) > 0 {
			m.cursor = (m.cursor + 1) % len(snippets)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Up):
		if len(snippets) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(snippets) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.Keys.New):
		cmd := m.startAdd()
		return m, cmd
	}

	if m.cursor < 0 || m.cursor >= len(snippets) {
		return m, nil
	}
	sn := snippets[m.cursor]

	switch {
	case key.Matches(msg, m.Keys.Delete):
		if err := m.State.DeleteSnippet(context.Background(), sn.ID); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("Deleted %q", sn.Title)
		}
		if n := len(m.State.Snippets()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Copy):
		if err := m.Clipboard.WriteText(sn.Code); err != nil {
			m.Log.Warn().Err(err).Int64("snippet", sn.ID).Msg("clipboard write failed")
			return m, nil
		}
		return m, m.Acks.Ack(ackKey(sn.ID))
	}
	return m, nil
}

func ackKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (m *Model) startAdd() tea.Cmd {
	*m.fb = formBindings{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("e.g. 301 redirect").
				Value(&m.fb.title).
				Validate(required("title")),
			huh.NewText().
				Title("Code").
				Placeholder("Paste your code here...").
				Lines(6).
				Value(&m.fb.code).
				Validate(required("code")),
		),
	).WithWidth(m.contentWidth()).WithShowHelp(false)
	m.mode = modeForm
	return m.form.Init()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.submit()
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// submit prepends the bound snippet and returns to the list.
func (m *Model) submit() {
	_, err := m.State.CreateSnippet(context.Background(), model.Snippet{
		Title: strings.TrimSpace(m.fb.title),
		Code:  m.fb.code,
	})
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
	} else {
		m.statusMsg = "Snippet saved"
		m.cursor = 0
	}
	m.mode = modeList
	m.form = nil
}

// View renders the drawer panel.
func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render("My snippets"),
		theme.HelpStyle.Render("Quick code pieces"),
	)

	var body string
	if m.mode == modeForm && m.form != nil {
		body = m.form.View()
	} else {
		body = m.viewList()
	}

	footer := theme.HelpStyle.Render("n add | y copy | d delete | esc close")
	if m.mode == modeForm {
		footer = theme.HelpStyle.Render("tab next field | enter submit | esc cancel")
	}

	return theme.DetailPanelStyle.
		Width(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer))
}

func (m Model) viewList() string {
	snippets := m.State.Snippets()
	if len(snippets) == 0 {
		return theme.EmptyStyle.Render("No saved snippets")
	}

	var b strings.Builder
	offset := 0
	for i, sn := range snippets {
		if i == m.cursor {
			offset = strings.Count(b.String(), "\n")
		}

		title := sn.Title
		if m.Acks.Active(ackKey(sn.ID)) {
			title += "  " + theme.CopiedStyle.Render("✓ copied")
		}
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(title))
		} else {
			b.WriteString(theme.ListItemStyle.Render(title))
		}
		b.WriteString("\n")
		b.WriteString(m.code.Render(sn.Code, m.contentWidth()-2))
		b.WriteString("\n\n")
	}
	if m.statusMsg != "" {
		b.WriteString(theme.StatusMsgStyle.Render(m.statusMsg))
	}

	vp := m.vp
	vp.SetContent(strings.TrimRight(b.String(), "\n"))
	vp.SetYOffset(offset)
	return vp.View()
}

func (m Model) contentWidth() int {
	return max(m.width-6, 20)
}

// SetSize sets the drawer's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = m.contentWidth()
	m.vp.Height = max(height-10, 3)
}
