package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/keys"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/theme"
	"github.com/nhle/kodeportal/internal/workspace"
)

type taskMode int

const (
	modeList taskMode = iota
	modeForm
)

// Model is the Bubble Tea model for the tasks tab.
type Model struct {
	state     *workspace.State
	keys      *keys.KeyMap
	mode      taskMode
	filter    workspace.TaskFilter
	cursor    int
	form      *huh.Form
	fb        *formBindings
	editingID int64
	isNew     bool
	statusMsg string
	width     int
	height    int
}

// New creates the tasks view.
func New(state *workspace.State, k *keys.KeyMap, width, height int) Model {
	return Model{
		state:  state,
		keys:   k,
		mode:   modeList,
		filter: workspace.FilterAll,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether a form is open.
func (m Model) Capturing() bool {
	return m.mode == modeForm
}

// Filter returns the active filter.
func (m Model) Filter() workspace.TaskFilter {
	return m.filter
}

// SetFilter switches the filter and resets the cursor.
func (m *Model) SetFilter(f workspace.TaskFilter) {
	m.filter = f
	m.cursor = 0
}

// Visible returns the filtered tasks in display order.
func (m Model) Visible() []model.Task {
	return workspace.VisibleTasks(m.state.Tasks(), m.filter)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
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
	visible := m.Visible()

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(visible) > 0 {
			m.cursor = (m.cursor + 1) % len(visible)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(visible) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(visible) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.SetFilter(m.filter.Next())
		return m, nil

	case key.Matches(msg, m.keys.New):
		cmd := m.startCreate()
		return m, cmd
	}

	if m.cursor < 0 || m.cursor >= len(visible) {
		return m, nil
	}
	t := visible[m.cursor]
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Edit):
		cmd := m.startEdit(t)
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		m.report(m.state.ToggleTask(ctx, t.ID), "")
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.report(m.state.DeleteTask(ctx, t.ID), fmt.Sprintf("Deleted %q", t.Title))
		m.clampCursor()
		return m, nil
	}
	return m, nil
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return
	}
	m.statusMsg = ok
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// View renders the tasks tab.
func (m Model) View() string {
	if m.mode == modeForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Task calendar"))
	b.WriteString("\n")
	b.WriteString(m.viewFilters())
	b.WriteString("\n\n")

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(theme.EmptyStyle.Render("No tasks to show in this view."))
	} else {
		now := m.state.Now()
		start, end := m.window(len(visible))
		for i := start; i < end; i++ {
			line := m.viewTask(visible[i], workspace.IsOverdue(visible[i], now))
			if i == m.cursor {
				b.WriteString(theme.SelectedItemStyle.Render(line))
			} else {
				b.WriteString(theme.ListItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.StatusMsgStyle.Render(m.statusMsg))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m Model) viewFilters() string {
	labels := map[workspace.TaskFilter]string{
		workspace.FilterAll:       "All",
		workspace.FilterPending:   "Pending",
		workspace.FilterCompleted: "Completed",
	}
	parts := []string{theme.HelpStyle.Render("filter (f):")}
	for _, f := range workspace.TaskFilters {
		if f == m.filter {
			parts = append(parts, theme.ActiveTabStyle.Render(labels[f]))
		} else {
			parts = append(parts, theme.TabStyle.Render(labels[f]))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewTask(t model.Task, overdue bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	due := theme.HelpStyle.Render("📅 " + t.DueDate)
	if overdue {
		due = lipgloss.NewStyle().Foreground(theme.ColorOrange).Render("📅 " + t.DueDate + " overdue")
	}

	return fmt.Sprintf("%s %s  %s %s",
		check,
		theme.TaskStyle(t.Completed, overdue).Render(t.Title),
		theme.CategoryStyle(t.Category).Render(t.Category),
		due,
	)
}

func (m Model) window(n int) (start, end int) {
	fit := max(m.height-6, 1)
	if n <= fit {
		return 0, n
	}
	start = min(max(m.cursor-fit/2, 0), n-fit)
	return start, start + fit
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Hints returns the key hints for the status bar.
func (m Model) Hints() string {
	if m.mode == modeForm {
		return "tab next field | enter submit | esc cancel"
	}
	return "n new | e edit | x toggle | d delete | f filter"
}
