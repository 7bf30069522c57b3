package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/theme"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	category string
	dueDate  string
}

func (m *Model) startCreate() tea.Cmd {
	m.isNew = true
	m.editingID = 0
	*m.fb = formBindings{
		category: model.CategoryMaintenance,
		dueDate:  m.state.Now().Format(model.DateLayout),
	}
	m.form = m.buildForm()
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) startEdit(t model.Task) tea.Cmd {
	m.isNew = false
	m.editingID = t.ID
	*m.fb = formBindings{
		title:    t.Title,
		category: t.Category,
		dueDate:  t.DueDate,
	}
	m.form = m.buildForm()
	m.mode = modeForm
	return m.form.Init()
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Placeholder("e.g. Renew SSL certificate...").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(m.fb.category)...).
				Value(&m.fb.category),
			huh.NewInput().
				Title("Due date").
				Placeholder(model.DateLayout).
				Value(&m.fb.dueDate).
				Validate(validateDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithShowHelp(false)
}

// categoryOptions lists the fixed categories, plus current when a stored
// task carries a category outside the set.
func categoryOptions(current string) []huh.Option[string] {
	opts := huh.NewOptions(model.Categories...)
	for _, c := range model.Categories {
		if c == current {
			return opts
		}
	}
	if current != "" {
		opts = append(opts, huh.NewOption(current, current))
	}
	return opts
}

func validateDate(s string) error {
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use the YYYY-MM-DD format")
	}
	return nil
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

// submit saves the bound form values and returns to the list.
func (m *Model) submit() {
	ctx := context.Background()
	t := model.Task{
		ID:       m.editingID,
		Title:    strings.TrimSpace(m.fb.title),
		Category: m.fb.category,
		DueDate:  strings.TrimSpace(m.fb.dueDate),
	}

	var err error
	if m.isNew {
		_, err = m.state.CreateTask(ctx, t)
	} else {
		err = m.state.UpdateTask(ctx, t)
	}
	m.report(err, "Task saved")
	m.mode = modeList
	m.form = nil
	m.clampCursor()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	titleText := "New task"
	if !m.isNew {
		titleText = "Edit task"
	}
	content := theme.TitleStyle.Render(titleText) + "\n" + m.form.View()
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 80)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}
