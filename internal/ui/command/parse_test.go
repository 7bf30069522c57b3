package command

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Name
		args    int
		wantErr bool
	}{
		{input: "home", want: Home},
		{input: "  Tasks ", want: Tasks},
		{input: "q", want: Quit},
		{input: "lock", want: Logout},
		{input: "filter pending", want: Filter, args: 1},
		{input: "filter", wantErr: true},
		{input: "deploy", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.want || len(got.Args) != tt.args {
				t.Fatalf("Parse(%q) = %+v", tt.input, got)
			}
		})
	}

	if _, err := Parse("deploy"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}

func typeInto(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_EnterEmitsCommand(t *testing.T) {
	m := typeInto(New(60, 10), "tasks")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	got, ok := cmd().(CommandMsg)
	if !ok || got.Name != Tasks {
		t.Fatalf("got %#v, want tasks command", cmd())
	}
	if m.Value() != "" {
		t.Errorf("input should clear after submit, got %q", m.Value())
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("empty input must not emit a command")
	}
}

func TestModel_InvalidInputStaysOpenWithError(t *testing.T) {
	m := typeInto(New(60, 10), "deploy")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("invalid command must not be emitted")
	}
	if !errors.Is(m.Err(), ErrUnknown) {
		t.Fatalf("Err() = %v, want ErrUnknown", m.Err())
	}
	if m.Value() != "deploy" {
		t.Errorf("input should be kept for correction, got %q", m.Value())
	}
	if !strings.Contains(m.View(), "unknown command") {
		t.Errorf("view should show the error:\n%s", m.View())
	}

	m = typeInto(m, "x")
	if m.Err() != nil {
		t.Error("typing should clear the error")
	}
}

func TestModel_HistoryRecall(t *testing.T) {
	m := New(60, 10)
	for _, in := range []string{"tasks", "filter pending"} {
		m = typeInto(m, in)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != "filter pending" {
		t.Fatalf("first up = %q", m.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != "tasks" {
		t.Fatalf("up past oldest = %q, want tasks", m.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Value() != "" {
		t.Fatalf("down past newest = %q, want empty", m.Value())
	}
}

func TestModel_FocusClearsInput(t *testing.T) {
	m := typeInto(New(60, 10), "proj")
	m.Focus()
	if m.Value() != "" {
		t.Errorf("Focus should clear input, got %q", m.Value())
	}
}

func TestSuggestions(t *testing.T) {
	got := Suggestions()
	want := map[string]bool{"home": true, "logout": true, "filter pending": true}
	for _, s := range got {
		if s == "filter" {
			t.Error("bare filter needs an argument and should not be suggested")
		}
		delete(want, s)
	}
	if len(want) != 0 {
		t.Errorf("missing suggestions: %v", want)
	}
}
