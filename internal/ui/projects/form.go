package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kodeportal/internal/launch"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/theme"
)

func (m *Model) startCreate() tea.Cmd {
	m.isNew = true
	m.editingID = 0
	*m.fb = formBindings{emoji: model.DefaultEmoji}
	m.form = m.buildForm()
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) startEdit(p model.Project) tea.Cmd {
	m.isNew = false
	m.editingID = p.ID
	*m.fb = formBindings{
		emoji:     p.Emoji,
		name:      p.Name,
		siteURL:   p.SiteURL,
		cpanelURL: p.CpanelURL,
		username:  p.Username,
		password:  p.Password,
	}
	m.form = m.buildForm()
	m.mode = modeForm
	return m.form.Init()
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Emoji").
				CharLimit(8).
				Value(&m.fb.emoji).
				Validate(required("emoji")),
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. My Online Store").
				Value(&m.fb.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Website").
				Placeholder("https://mysite.com").
				Value(&m.fb.siteURL).
				Validate(validURL),
			huh.NewInput().
				Title("Panel URL").
				Placeholder("https://mysite.com:2083").
				Value(&m.fb.cpanelURL).
				Validate(validURL),
			huh.NewInput().
				Title("Username").
				Placeholder("admin_user").
				Value(&m.fb.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				Placeholder("••••••••").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(required("password")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("url is required")
	}
	if _, err := launch.Validate(s); err != nil {
		return errors.New("enter a full url such as https://example.com")
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
	p := model.Project{
		ID:        m.editingID,
		Name:      strings.TrimSpace(m.fb.name),
		Emoji:     strings.TrimSpace(m.fb.emoji),
		SiteURL:   strings.TrimSpace(m.fb.siteURL),
		CpanelURL: strings.TrimSpace(m.fb.cpanelURL),
		Username:  m.fb.username,
		Password:  m.fb.password,
	}
	if p.Emoji == "" {
		p.Emoji = model.DefaultEmoji
	}

	var err error
	if m.isNew {
		_, err = m.State.CreateProject(ctx, p)
		if err == nil {
			m.cursor = 0
		}
	} else {
		err = m.State.UpdateProject(ctx, p)
	}

	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
	} else {
		m.statusMsg = "Project saved"
	}
	m.mode = modeList
	m.form = nil
	m.clampCursor()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	titleText := "New project"
	if !m.isNew {
		titleText = "Edit project"
	}
	content := theme.TitleStyle.Render(titleText) + "\n" +
		theme.HelpStyle.Render("Site details and panel access.") + "\n\n" +
		m.form.View()
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
