package home

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/theme"
	"github.com/nhle/kodeportal/internal/workspace"
)

// GoProjectsMsg asks the shell to switch to the projects tab.
type GoProjectsMsg struct{}

// GoTasksMsg asks the shell to switch to the tasks tab.
type GoTasksMsg struct{}

const progressWidth = 20

// Model is the read-only dashboard.
type Model struct {
	state  *workspace.State
	width  int
	height int
}

// New creates the dashboard over state.
func New(state *workspace.State, width, height int) Model {
	return Model{state: state, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles the dashboard shortcuts.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			return m, func() tea.Msg { return GoProjectsMsg{} }
		case "t":
			return m, func() tea.Msg { return GoTasksMsg{} }
		}
	}
	return m, nil
}

// View renders the dashboard from the current collections.
func (m Model) View() string {
	sum := workspace.Summarize(m.state.Projects(), m.state.Tasks())

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Work overview"))
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("A glance at your recent projects and pending tasks."))
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewRecent(sum),
		"",
		m.viewCategories(sum),
	)
	right := m.viewUpcoming(sum)

	if m.width >= 100 {
		colWidth := (m.width - 8) / 2
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(colWidth).Render(left),
			"    ",
			lipgloss.NewStyle().Width(colWidth).Render(right),
		))
	} else {
		b.WriteString(left)
		b.WriteString("\n\n")
		b.WriteString(right)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewRecent(sum workspace.Summary) string {
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Recent projects"))
	b.WriteString("  ")
	b.WriteString(theme.HelpStyle.Render("p view all"))
	b.WriteString("\n")

	if len(sum.RecentProjects) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No projects yet"))
		return b.String()
	}
	for _, p := range sum.RecentProjects {
		b.WriteString(theme.ListItemStyle.Render(fmt.Sprintf("%s  %s", p.Emoji, p.Name)))
		b.WriteString("  ")
		b.WriteString(theme.HelpStyle.Render(p.DisplayHost()))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) viewCategories(sum workspace.Summary) string {
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Completion by category"))
	b.WriteString("\n")

	if len(sum.Categories) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No categories to show"))
		return b.String()
	}
	for _, c := range sum.Categories {
		pct := c.Percent()
		fmt.Fprintf(&b, "  %-16s %s %d/%d (%d%%)\n",
			c.Category,
			theme.ProgressStyle(pct).Render(ProgressBar(pct, progressWidth)),
			c.Completed, c.Total, pct,
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) viewUpcoming(sum workspace.Summary) string {
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Upcoming tasks"))
	b.WriteString("  ")
	b.WriteString(theme.HelpStyle.Render("t go to tasks"))
	b.WriteString("\n")

	if len(sum.UpcomingTasks) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No pending tasks"))
		return b.String()
	}
	for _, t := range sum.UpcomingTasks {
		b.WriteString(theme.ListItemStyle.Render(t.Title))
		b.WriteString("\n")
		b.WriteString(theme.ListItemStyle.Render(
			theme.CategoryStyle(t.Category).Render(t.Category) + " " +
				lipgloss.NewStyle().Foreground(theme.ColorYellow).Render("⏱ "+t.DueDate),
		))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ProgressBar draws a width-cell bar filled to percent.
func ProgressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
