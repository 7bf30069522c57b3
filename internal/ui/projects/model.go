package projects

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/clipboard"
	"github.com/nhle/kodeportal/internal/keys"
	"github.com/nhle/kodeportal/internal/launch"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/theme"
	"github.com/nhle/kodeportal/internal/ui/ack"
	"github.com/nhle/kodeportal/internal/workspace"
)

const maskedPassword = "••••••••••••••••"

// cardHeight is the rendered height of one card including its border.
const cardHeight = 7

type projectMode int

const (
	modeList projectMode = iota
	modeSearch
	modeForm
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	emoji     string
	name      string
	siteURL   string
	cpanelURL string
	username  string
	password  string
}

// Deps are the side-effecting collaborators of the projects view.
type Deps struct {
	State     *workspace.State
	Keys      *keys.KeyMap
	Clipboard clipboard.Writer
	Opener    launch.Opener
	Acks      *ack.Tracker
	Log       zerolog.Logger
}

// Model is the Bubble Tea model for the projects tab.
type Model struct {
	Deps

	mode      projectMode
	cursor    int
	search    textinput.Model
	query     string
	facet     string
	revealed  map[int64]bool
	form      *huh.Form
	fb        *formBindings
	editingID int64
	isNew     bool
	statusMsg string
	width     int
	height    int
}

// New creates the projects view.
func New(d Deps, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search projects by name..."
	si.Prompt = "/ "
	si.Width = max(width-6, 10)

	return Model{
		Deps:     d,
		mode:     modeList,
		search:   si,
		revealed: make(map[int64]bool),
		fb:       &formBindings{},
		width:    width,
		height:   height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the view is consuming raw key input, in which
// case global shortcuts must not be applied.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// Visible returns the projects that pass the current search and facet.
func (m Model) Visible() []model.Project {
	return workspace.FilterProjects(m.State.Projects(), m.query, m.facet)
}

// Facet returns the selected emoji facet, or "" for all.
func (m Model) Facet() string {
	return m.facet
}

// Query returns the current search text.
func (m Model) Query() string {
	return m.query
}

// HideSecrets masks every revealed password.
func (m *Model) HideSecrets() {
	clear(m.revealed)
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
		switch m.mode {
		case modeSearch:
			return m.handleSearchKey(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.statusMsg = ""
	visible := m.Visible()

	switch {
	case key.Matches(msg, m.Keys.Down):
		if len(visible) > 0 {
			m.cursor = (m.cursor + 1) % len(visible)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Up):
		if len(visible) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(visible) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.Keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.Keys.Filter):
		m.facet = nextFacet(workspace.EmojiFacets(m.State.Projects()), m.facet)
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.Keys.Back):
		m.query = ""
		m.facet = ""
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.Keys.New):
		cmd := m.startCreate()
		return m, cmd
	}

	p, ok := m.selected(visible)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Edit):
		cmd := m.startEdit(p)
		return m, cmd

	case key.Matches(msg, m.Keys.Delete):
		if err := m.State.DeleteProject(context.Background(), p.ID); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("Deleted %q", p.Name)
			delete(m.revealed, p.ID)
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.Keys.Reveal):
		m.revealed[p.ID] = !m.revealed[p.ID]
		return m, nil

	case key.Matches(msg, m.Keys.CopyUser):
		return m, m.copyField(userKey(p.ID), p.Username)

	case key.Matches(msg, m.Keys.Copy):
		return m, m.copyField(passKey(p.ID), p.Password)

	case key.Matches(msg, m.Keys.OpenSite):
		return m, launch.Cmd(m.Opener, p.SiteURL)

	case key.Matches(msg, m.Keys.OpenPanel):
		return m, launch.Cmd(m.Opener, p.CpanelURL)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeList
		m.search.Blur()
		m.search.Reset()
		m.query = ""
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.cursor = 0
	return m, cmd
}

// copyField writes text to the clipboard and acknowledges ackKey. A failed
// write is logged and shows no acknowledgment.
func (m Model) copyField(ackKey, text string) tea.Cmd {
	if err := m.Clipboard.WriteText(text); err != nil {
		m.Log.Warn().Err(err).Str("field", ackKey).Msg("clipboard write failed")
		return nil
	}
	return m.Acks.Ack(ackKey)
}

func (m Model) selected(visible []model.Project) (model.Project, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.Project{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func userKey(id int64) string { return fmt.Sprintf("user:%d", id) }
func passKey(id int64) string { return fmt.Sprintf("pass:%d", id) }

// nextFacet cycles "" -> facets[0] -> ... -> facets[n-1] -> "".
func nextFacet(facets []string, current string) string {
	if current == "" {
		if len(facets) == 0 {
			return ""
		}
		return facets[0]
	}
	i := slices.Index(facets, current)
	if i < 0 || i+1 >= len(facets) {
		return ""
	}
	return facets[i+1]
}

// View renders the projects tab.
func (m Model) View() string {
	if m.mode == modeForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("My projects"))
	b.WriteString("\n")

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else if m.query != "" {
		b.WriteString(theme.HelpStyle.Render("search: " + m.query))
	} else {
		b.WriteString(theme.HelpStyle.Render("/ search by name"))
	}
	b.WriteString("\n")
	b.WriteString(m.viewFacets())
	b.WriteString("\n\n")

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No projects found. Try another search or press 'n' to add one."))
	} else {
		start, end := m.window(len(visible))
		for i := start; i < end; i++ {
			b.WriteString(m.viewCard(visible[i], i == m.cursor))
			b.WriteString("\n")
		}
		if end-start < len(visible) {
			b.WriteString(theme.HelpStyle.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(visible))))
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.StatusMsgStyle.Render(m.statusMsg))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m Model) viewFacets() string {
	facets := workspace.EmojiFacets(m.State.Projects())
	if len(facets) == 0 {
		return ""
	}
	parts := []string{theme.HelpStyle.Render("filter (f):")}
	if m.facet == "" {
		parts = append(parts, theme.ActiveTabStyle.Render("all"))
	} else {
		parts = append(parts, theme.TabStyle.Render("all"))
	}
	for _, e := range facets {
		if e == m.facet {
			parts = append(parts, theme.ActiveTabStyle.Render(e))
		} else {
			parts = append(parts, theme.TabStyle.Render(e))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewCard(p model.Project, selected bool) string {
	label := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(7)

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render(fmt.Sprintf("%s  %s", p.Emoji, p.Name))
	site := theme.HelpStyle.Render("🌐 " + strings.TrimPrefix(strings.TrimPrefix(p.SiteURL, "https://"), "http://"))

	user := label.Render("user") + p.Username
	if m.Acks.Active(userKey(p.ID)) {
		user += "  " + theme.CopiedStyle.Render("✓ copied")
	}

	secret := maskedPassword
	if m.revealed[p.ID] {
		secret = p.Password
	}
	pass := label.Render("pass") + secret
	if m.Acks.Active(passKey(p.ID)) {
		pass += "  " + theme.CopiedStyle.Render("✓ copied")
	}

	panel := label.Render("panel") + theme.HelpStyle.Render(p.CpanelURL)

	body := lipgloss.JoinVertical(lipgloss.Left, header, site, user, pass, panel)

	style := theme.CardStyle
	if selected {
		style = theme.SelectedCardStyle
	}
	return style.Width(m.cardWidth()).Render(body)
}

// window returns the slice of card indexes that fits the view height,
// keeping the cursor visible.
func (m Model) window(n int) (start, end int) {
	fit := max((m.height-6)/cardHeight, 1)
	if n <= fit {
		return 0, n
	}
	start = min(max(m.cursor-fit/2, 0), n-fit)
	return start, start + fit
}

func (m Model) cardWidth() int {
	return min(max(m.width-8, 30), 72)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-6, 10)
}

// Hints returns the key hints for the status bar.
func (m Model) Hints() string {
	switch m.mode {
	case modeSearch:
		return "type to filter | enter keep | esc clear"
	case modeForm:
		return "tab next field | enter submit | esc cancel"
	default:
		return "n new | e edit | d delete | / search | f filter | v show | u/y copy | o site | O panel"
	}
}
