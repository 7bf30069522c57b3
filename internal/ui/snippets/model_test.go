package snippets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/clipboard"
	"github.com/nhle/kodeportal/internal/keys"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/ui/ack"
	"github.com/nhle/kodeportal/internal/workspace"
	"github.com/nhle/kodeportal/tests/testutil"
)

func newModel(t *testing.T) (Model, *workspace.State, *clipboard.Memory) {
	t.Helper()
	coll, _ := testutil.NewTestCollections(t)
	s, err := workspace.Load(context.Background(), coll, zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	clip := &clipboard.Memory{}
	m := New(Deps{
		State:     s,
		Keys:      keys.DefaultKeyMap(),
		Clipboard: clip,
		Acks:      ack.NewSingle(time.Millisecond),
		Log:       zerolog.Nop(),
		CodeStyle: "notty",
	}, 70, 40)
	return m, s, clip
}

func press(m Model, s string) (Model, tea.Cmd) {
	if s == "esc" {
		return m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestView_ShowsSeedSnippet(t *testing.T) {
	m, _, _ := newModel(t)
	out := m.View()

	if !strings.Contains(out, "Force HTTPS (.htaccess)") {
		t.Fatalf("expected seed snippet title:\n%s", out)
	}
	if !strings.Contains(out, "RewriteEngine On") {
		t.Fatalf("expected snippet code:\n%s", out)
	}
}

func TestCopy_SingleAcknowledgment(t *testing.T) {
	m, s, clip := newModel(t)
	if _, err := s.CreateSnippet(context.Background(), model.Snippet{Title: "gzip", Code: "SetOutputFilter DEFLATE"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	m, first := press(m, "y")
	if clip.Last != "SetOutputFilter DEFLATE" {
		t.Fatalf("unexpected clipboard %q", clip.Last)
	}
	m, _ = press(m, "j")
	m, _ = press(m, "y")

	gzipID := s.Snippets()[0].ID
	seedID := s.Snippets()[1].ID
	if m.Acks.Active(ackKey(gzipID)) || !m.Acks.Active(ackKey(seedID)) {
		t.Fatalf("only the latest copied snippet may be acknowledged")
	}
	if got := strings.Count(m.View(), "copied"); got != 1 {
		t.Fatalf("expected one copied mark, got %d", got)
	}

	m, _ = m.Update(first())
	if !m.Acks.Active(ackKey(seedID)) {
		t.Fatalf("stale expiry cleared the current acknowledgment")
	}
}

func TestCopy_FailureIsIgnored(t *testing.T) {
	m, _, clip := newModel(t)
	clip.Err = errors.New("denied")

	m, cmd := press(m, "y")
	if cmd != nil {
		t.Fatalf("failed copy must not acknowledge")
	}
	if strings.Contains(m.View(), "copied") {
		t.Fatalf("copied mark shown after failure")
	}
}

func TestDelete_ShowsEmptyState(t *testing.T) {
	m, s, _ := newModel(t)

	m, _ = press(m, "d")
	if len(s.Snippets()) != 0 {
		t.Fatalf("expected snippet deleted")
	}
	if !strings.Contains(m.View(), "No saved snippets") {
		t.Fatalf("expected empty state")
	}
}

func TestAdd_PrependsSnippet(t *testing.T) {
	m, s, _ := newModel(t)

	m, _ = press(m, "n")
	if !m.Capturing() {
		t.Fatalf("expected add form")
	}
	m.fb.title = "Redirect 301"
	m.fb.code = "Redirect 301 /old /new"
	m.submit()

	if got := s.Snippets(); len(got) != 2 || got[0].Title != "Redirect 301" {
		t.Fatalf("expected new snippet first, got %+v", got)
	}
	if m.Capturing() {
		t.Fatalf("expected list mode after submit")
	}
}

func TestEsc_Closes(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := press(m, "esc")
	if _, ok := cmd().(CloseMsg); !ok {
		t.Fatalf("expected CloseMsg")
	}
}

func TestFence(t *testing.T) {
	if got := fence("a"); got != "```\na\n```\n" {
		t.Fatalf("unexpected fence %q", got)
	}
	if got := fence("x ```` y"); !strings.HasPrefix(got, "`````\n") {
		t.Fatalf("fence must outgrow inner backticks, got %q", got)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := newCodeRenderer("notty").Render("\n", 40); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
