package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Tabs
	NextTab     key.Binding
	PrevTab     key.Binding
	TabProjects key.Binding
	TabHome     key.Binding
	TabTasks    key.Binding

	// Top bar
	Mail     key.Binding
	Snippets key.Binding
	Logout   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Record actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Filter key.Binding
	Toggle key.Binding

	// Credentials and links
	Reveal    key.Binding
	CopyUser  key.Binding
	Copy      key.Binding
	OpenSite  key.Binding
	OpenPanel key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		TabProjects: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "projects"),
		),
		TabHome: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "home"),
		),
		TabTasks: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "tasks"),
		),
		Mail: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "open mail"),
		),
		Snippets: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snippets"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sign out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "toggle done"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show/hide password"),
		),
		CopyUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "copy username"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		OpenSite: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open site"),
		),
		OpenPanel: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open panel"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NextTab, k.Up, k.Down, k.New,
		k.Snippets, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab, k.TabProjects, k.TabHome, k.TabTasks},
		{k.Mail, k.Snippets, k.Logout, k.Command, k.Help, k.Back, k.Quit},
		{k.New, k.Edit, k.Delete, k.Search, k.Filter, k.Toggle},
		{k.Reveal, k.CopyUser, k.Copy, k.OpenSite, k.OpenPanel},
	}
}
