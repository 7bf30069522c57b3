// Package help renders the keyboard shortcut overlay.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/keys"
	"github.com/nhle/kodeportal/internal/theme"
)

// sectionTitles name the groups returned by KeyMap.FullHelp, in order.
var sectionTitles = []string{"Navigation", "Workspace", "Records", "Project cards"}

// columnWidth is the width one section needs to sit beside another.
const columnWidth = 34

type section struct {
	title    string
	bindings []key.Binding
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) sections() []section {
	groups := m.keys.FullHelp()
	out := make([]section, 0, len(groups))
	for i, g := range groups {
		title := "More"
		if i < len(sectionTitles) {
			title = sectionTitles[i]
		}
		out = append(out, section{title: title, bindings: g})
	}
	return out
}

func (m Model) renderSection(s section) string {
	body := m.help.FullHelpView([][]key.Binding{s.bindings})
	return lipgloss.NewStyle().Width(columnWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, theme.SectionStyle.Render(s.title), body),
	)
}

// View renders the help overlay. Sections are laid out in as many columns
// as the width allows.
func (m Model) View() string {
	title := theme.TitleStyle.MarginBottom(1).Render("Keyboard Shortcuts")

	perRow := max((m.width-4)/columnWidth, 1)
	var rows []string
	var row []string
	for _, s := range m.sections() {
		row = append(row, m.renderSection(s))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		theme.HelpStyle.Render("? or esc to close"),
	)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
