package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/clipboard"
	"github.com/nhle/kodeportal/internal/keys"
	"github.com/nhle/kodeportal/internal/launch"
	"github.com/nhle/kodeportal/internal/ui"
	"github.com/nhle/kodeportal/internal/ui/ack"
	"github.com/nhle/kodeportal/internal/ui/command"
	helpview "github.com/nhle/kodeportal/internal/ui/help"
	"github.com/nhle/kodeportal/internal/ui/home"
	"github.com/nhle/kodeportal/internal/ui/login"
	"github.com/nhle/kodeportal/internal/ui/projects"
	"github.com/nhle/kodeportal/internal/ui/snippets"
	"github.com/nhle/kodeportal/internal/ui/tasks"
	"github.com/nhle/kodeportal/internal/workspace"
)

// Tab is one of the three main sections.
type Tab int

const (
	TabProjects Tab = iota
	TabHome
	TabTasks
)

var tabNames = []string{"Projects", "Home", "Tasks"}

func (t Tab) String() string {
	return tabNames[t]
}

// Overlay is a panel drawn over the active tab.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayCommand
	OverlaySnippets
)

// DefaultMailURL is opened by the mail action when none is configured.
const DefaultMailURL = "https://mail.google.com/"

// Options configure the root model.
type Options struct {
	MailURL   string
	AckDelay  time.Duration
	CodeStyle string
	Clipboard clipboard.Writer
	Opener    launch.Opener
	Log       zerolog.Logger
}

// Model is the root Bubble Tea model: the lock screen, the tab shell and
// its overlays.
type Model struct {
	state   *workspace.State
	opts    Options
	log     zerolog.Logger
	keys    *keys.KeyMap
	layout  ui.Layout
	locked  bool
	session string

	activeTab Tab
	overlay   Overlay
	statusMsg string

	loginView    login.Model
	homeView     home.Model
	projectsView projects.Model
	tasksView    tasks.Model
	snippetsView snippets.Model
	helpView     helpview.Model
	commandView  command.Model
	ready        bool
}

// New creates the root model over an already hydrated workspace. The
// workspace starts locked.
func New(state *workspace.State, opts Options) Model {
	if opts.MailURL == "" {
		opts.MailURL = DefaultMailURL
	}
	if opts.AckDelay <= 0 {
		opts.AckDelay = ack.DefaultDelay
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}
	if opts.Opener == nil {
		opts.Opener = launch.Browser{}
	}

	k := keys.DefaultKeyMap()
	m := Model{
		state:     state,
		opts:      opts,
		log:       opts.Log,
		keys:      k,
		layout:    ui.NewLayout(80, 24),
		locked:    true,
		activeTab: TabHome,
		loginView: login.New(80, 24),
		homeView:  home.New(state, 80, 21),
		projectsView: projects.New(projects.Deps{
			State:     state,
			Keys:      k,
			Clipboard: opts.Clipboard,
			Opener:    opts.Opener,
			Acks:      ack.New(opts.AckDelay),
			Log:       opts.Log,
		}, 80, 21),
		tasksView: tasks.New(state, k, 80, 21),
		snippetsView: snippets.New(snippets.Deps{
			State:     state,
			Keys:      k,
			Clipboard: opts.Clipboard,
			Acks:      ack.NewSingle(opts.AckDelay),
			Log:       opts.Log,
			CodeStyle: opts.CodeStyle,
		}, 60, 21),
		helpView:    helpview.New(k, 80, 21),
		commandView: command.New(80, 21),
	}
	return m
}

// Init starts the lock screen.
func (m Model) Init() tea.Cmd {
	return m.loginView.Init()
}

// Locked reports whether the lock screen is showing.
func (m Model) Locked() bool { return m.locked }

// ActiveTab returns the visible tab.
func (m Model) ActiveTab() Tab { return m.activeTab }

// ActiveOverlay returns the open overlay, if any.
func (m Model) ActiveOverlay() Overlay { return m.overlay }

// Session returns the id of the current unlocked session, or "".
func (m Model) Session() string { return m.session }

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case ack.ExpiredMsg:
		// Timers outlive tab switches, so both trackers always see expiries.
		m.projectsView, _ = m.projectsView.Update(msg)
		m.snippetsView, _ = m.snippetsView.Update(msg)
		return m, nil

	case launch.ResultMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("url", msg.URL).Msg("opening url failed")
			m.statusMsg = fmt.Sprintf("Could not open %s", msg.URL)
		}
		return m, nil

	case login.UnlockedMsg:
		m.unlock()
		return m, nil

	case home.GoProjectsMsg:
		m.switchTab(TabProjects)
		return m, nil

	case home.GoTasksMsg:
		m.switchTab(TabTasks)
		return m, nil

	case snippets.CloseMsg:
		m.overlay = OverlayNone
		return m, nil

	case command.CommandMsg:
		m.closeOverlay()
		cmd := m.executeCommand(command.Command(msg))
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if m.locked {
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case OverlayCommand:
		if key.Matches(msg, m.keys.Back) {
			m.closeOverlay()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandView, cmd = m.commandView.Update(msg)
		return m, cmd

	case OverlayHelp:
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		return m, nil

	case OverlaySnippets:
		if !m.snippetsView.Capturing() && key.Matches(msg, m.keys.Snippets) {
			m.overlay = OverlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.snippetsView, cmd = m.snippetsView.Update(msg)
		return m, cmd
	}

	if m.activeCapturing() {
		return m.updateActiveView(msg)
	}

	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.overlay = OverlayCommand
		cmd := m.commandView.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab((m.activeTab + 1) % Tab(len(tabNames)))
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab((m.activeTab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, nil

	case key.Matches(msg, m.keys.TabProjects):
		m.switchTab(TabProjects)
		return m, nil

	case key.Matches(msg, m.keys.TabHome):
		m.switchTab(TabHome)
		return m, nil

	case key.Matches(msg, m.keys.TabTasks):
		m.switchTab(TabTasks)
		return m, nil

	case key.Matches(msg, m.keys.Mail):
		return m, launch.Cmd(m.opts.Opener, m.opts.MailURL)

	case key.Matches(msg, m.keys.Snippets):
		m.openSnippets()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		cmd := m.lock()
		return m, cmd
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.locked {
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}

	switch m.overlay {
	case OverlayCommand:
		m.commandView, cmd = m.commandView.Update(msg)
		return m, cmd
	case OverlaySnippets:
		m.snippetsView, cmd = m.snippetsView.Update(msg)
		return m, cmd
	}

	switch m.activeTab {
	case TabProjects:
		m.projectsView, cmd = m.projectsView.Update(msg)
	case TabHome:
		m.homeView, cmd = m.homeView.Update(msg)
	case TabTasks:
		m.tasksView, cmd = m.tasksView.Update(msg)
	}

	return m, cmd
}

func (m Model) activeCapturing() bool {
	switch m.activeTab {
	case TabProjects:
		return m.projectsView.Capturing()
	case TabTasks:
		return m.tasksView.Capturing()
	}
	return false
}

func (m *Model) switchTab(t Tab) {
	if t == m.activeTab {
		return
	}
	if m.activeTab == TabProjects {
		m.projectsView.HideSecrets()
	}
	m.activeTab = t
	m.overlay = OverlayNone
}

func (m *Model) closeOverlay() {
	if m.overlay == OverlayCommand {
		m.commandView.Blur()
	}
	m.overlay = OverlayNone
}

func (m *Model) openSnippets() {
	m.snippetsView.Reset()
	m.overlay = OverlaySnippets
}

func (m *Model) unlock() {
	m.locked = false
	m.session = uuid.NewString()
	m.activeTab = TabHome
	m.overlay = OverlayNone
	m.log.Info().Str("session", m.session).Msg("workspace unlocked")
}

// lock returns to the lock screen. Data stays loaded.
func (m *Model) lock() tea.Cmd {
	m.log.Info().Str("session", m.session).Msg("workspace locked")
	m.locked = true
	m.session = ""
	m.overlay = OverlayNone
	m.statusMsg = ""
	m.projectsView.HideSecrets()
	return m.loginView.Reset()
}

func (m *Model) quit() tea.Cmd {
	if m.session != "" {
		m.log.Info().Str("session", m.session).Msg("quitting")
	}
	return tea.Quit
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	cw, ch := m.layout.ContentWidth(), m.layout.ContentHeight()

	m.loginView.SetSize(width, height)
	m.homeView.SetSize(cw, ch)
	m.projectsView.SetSize(cw, ch)
	m.tasksView.SetSize(cw, ch)
	m.snippetsView.SetSize(drawerWidth(cw), ch)
	m.helpView.SetSize(cw, ch)
	m.commandView.SetSize(cw, ch)
}

func drawerWidth(contentWidth int) int {
	return min(contentWidth, 64)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if m.locked {
		return m.loginView.View()
	}
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("▣ KodePortal", "m mail · s snippets · L sign out")
	tabs := m.layout.RenderTabs(tabNames, int(m.activeTab))
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, tabs, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the active tab or overlay.
func (m Model) renderContent() string {
	switch m.overlay {
	case OverlayHelp:
		return m.helpView.View()
	case OverlayCommand:
		return lipgloss.JoinVertical(lipgloss.Left, m.commandView.View(), m.renderTab())
	case OverlaySnippets:
		return lipgloss.PlaceHorizontal(m.layout.ContentWidth(), lipgloss.Right, m.snippetsView.View())
	}
	return m.renderTab()
}

func (m Model) renderTab() string {
	switch m.activeTab {
	case TabProjects:
		return m.projectsView.View()
	case TabTasks:
		return m.tasksView.View()
	default:
		return m.homeView.View()
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.overlay {
	case OverlayHelp:
		return "? close help | esc back"
	case OverlayCommand:
		return "enter execute | esc back"
	case OverlaySnippets:
		return "s/esc close"
	}

	switch m.activeTab {
	case TabProjects:
		return m.projectsView.Hints()
	case TabTasks:
		return m.tasksView.Hints()
	default:
		return "tab switch | p projects | t tasks | : command | ? help | q quit"
	}
}

// executeCommand runs a parsed command from the palette.
func (m *Model) executeCommand(c command.Command) tea.Cmd {
	switch c.Name {
	case command.Home:
		m.switchTab(TabHome)
	case command.Projects:
		m.switchTab(TabProjects)
	case command.Tasks:
		m.switchTab(TabTasks)
	case command.Snippets:
		m.openSnippets()
	case command.Mail:
		return launch.Cmd(m.opts.Opener, m.opts.MailURL)
	case command.Logout:
		return m.lock()
	case command.Quit:
		return m.quit()
	case command.Filter:
		f, err := workspace.ParseTaskFilter(c.Args[0])
		if err != nil {
			m.statusMsg = err.Error()
			return nil
		}
		m.tasksView.SetFilter(f)
		m.switchTab(TabTasks)
	}
	return nil
}
