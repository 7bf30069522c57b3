package projects

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
	"github.com/nhle/kodeportal/internal/launch"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/store"
	"github.com/nhle/kodeportal/internal/ui/ack"
	"github.com/nhle/kodeportal/internal/workspace"
	"github.com/nhle/kodeportal/tests/testutil"
)

type fakeOpener struct{ urls []string }

func (f *fakeOpener) Open(u string) error {
	f.urls = append(f.urls, u)
	return nil
}

type fixture struct {
	m      Model
	clip   *clipboard.Memory
	opener *fakeOpener
	state  *workspace.State
	coll   *store.Collections
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	coll, _ := testutil.NewTestCollections(t)
	now := func() time.Time { return time.Date(2026, 2, 20, 9, 0, 0, 0, time.Local) }
	state, err := workspace.Load(context.Background(), coll, zerolog.Nop(), workspace.WithClock(now))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := &fixture{clip: &clipboard.Memory{}, opener: &fakeOpener{}, state: state, coll: coll}
	f.m = New(Deps{
		State:     state,
		Keys:      keys.DefaultKeyMap(),
		Clipboard: f.clip,
		Opener:    f.opener,
		Acks:      ack.New(time.Millisecond),
		Log:       zerolog.Nop(),
	}, 100, 60)
	return f
}

func (f *fixture) press(s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	var cmd tea.Cmd
	f.m, cmd = f.m.Update(msg)
	return cmd
}

func TestView_RendersSeedCardsWithMaskedPasswords(t *testing.T) {
	f := newFixture(t)
	out := f.m.View()

	for _, want := range []string{"Client A E-commerce", "Personal Blog", "admin_cliente_a", maskedPassword} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if strings.Contains(out, "SuperSecretPassword123!") {
		t.Fatalf("password shown before reveal")
	}
}

func TestReveal_TogglesPerCard(t *testing.T) {
	f := newFixture(t)

	f.press("v")
	out := f.m.View()
	if !strings.Contains(out, "SuperSecretPassword123!") {
		t.Fatalf("expected first card password revealed")
	}
	if strings.Contains(out, "Miblog@Password2026") {
		t.Fatalf("reveal must only affect the focused card")
	}

	f.press("v")
	if strings.Contains(f.m.View(), "SuperSecretPassword123!") {
		t.Fatalf("second reveal must hide the password again")
	}

	f.press("v")
	f.m.HideSecrets()
	if strings.Contains(f.m.View(), "SuperSecretPassword123!") {
		t.Fatalf("HideSecrets must mask every card")
	}
}

func TestCopy_IndependentAcknowledgments(t *testing.T) {
	f := newFixture(t)

	userCmd := f.press("u")
	if f.clip.Last != "admin_cliente_a" {
		t.Fatalf("expected username on clipboard, got %q", f.clip.Last)
	}
	f.press("y")
	if f.clip.Last != "SuperSecretPassword123!" {
		t.Fatalf("expected password on clipboard, got %q", f.clip.Last)
	}
	if !f.m.Acks.Active(userKey(1)) || !f.m.Acks.Active(passKey(1)) {
		t.Fatalf("both acknowledgments should be active")
	}
	if got := strings.Count(f.m.View(), "copied"); got != 2 {
		t.Fatalf("expected 2 copied marks, got %d", got)
	}

	f.m, _ = f.m.Update(userCmd())
	if f.m.Acks.Active(userKey(1)) {
		t.Fatalf("username acknowledgment should have expired")
	}
	if !f.m.Acks.Active(passKey(1)) {
		t.Fatalf("password acknowledgment must be unaffected")
	}
}

func TestCopy_FailureShowsNoAcknowledgment(t *testing.T) {
	f := newFixture(t)
	f.clip.Err = errors.New("no clipboard")

	if cmd := f.press("u"); cmd != nil {
		t.Fatalf("failed copy must not start a timer")
	}
	if f.m.Acks.Active(userKey(1)) {
		t.Fatalf("failed copy must not acknowledge")
	}
}

func TestFacet_CyclesAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.state.CreateProject(ctx, model.Project{Name: "Shop B", Emoji: "🛒"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	f.press("f")
	if f.m.Facet() != "🛒" {
		t.Fatalf("expected first facet to be the newest project's emoji, got %q", f.m.Facet())
	}
	if got := len(f.m.Visible()); got != 2 {
		t.Fatalf("expected 2 cart projects, got %d", got)
	}

	f.press("f")
	f.press("f")
	f.press("f")
	if f.m.Facet() != "" {
		t.Fatalf("expected cycle back to all, got %q", f.m.Facet())
	}
	if got := len(f.m.Visible()); got != 4 {
		t.Fatalf("expected all 4 projects, got %d", got)
	}
}

func TestSearch_FiltersLiveAndEscClears(t *testing.T) {
	f := newFixture(t)

	f.press("/")
	if !f.m.Capturing() {
		t.Fatalf("search mode must capture keys")
	}
	for _, r := range "BLOG" {
		f.press(string(r))
	}
	if got := f.m.Visible(); len(got) != 1 || got[0].Name != "Personal Blog" {
		t.Fatalf("expected only the blog, got %+v", got)
	}

	f.press("enter")
	if f.m.Capturing() || f.m.Query() != "BLOG" {
		t.Fatalf("enter should keep the query and leave search mode")
	}

	f.press("/")
	f.press("esc")
	if f.m.Query() != "" || len(f.m.Visible()) != 3 {
		t.Fatalf("esc should clear the search")
	}
}

func TestSearch_NoMatchesShowsEmptyState(t *testing.T) {
	f := newFixture(t)
	f.press("/")
	for _, r := range "zzz" {
		f.press(string(r))
	}
	if !strings.Contains(f.m.View(), "No projects found") {
		t.Fatalf("expected empty state")
	}
}

func TestDelete_RemovesAndPersists(t *testing.T) {
	f := newFixture(t)

	f.press("d")
	if _, ok := f.state.FindProject(1); ok {
		t.Fatalf("expected project 1 deleted")
	}
	stored, err := f.coll.LoadProjects(context.Background(), f.state.Now())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored projects, got %d", len(stored))
	}
}

func TestOpenLinks(t *testing.T) {
	f := newFixture(t)

	if msg := f.press("o")(); msg.(launch.ResultMsg).URL != "https://www.tiendacliente-a.com" {
		t.Fatalf("unexpected site url %+v", msg)
	}
	if msg := f.press("O")(); msg.(launch.ResultMsg).URL != "https://www.tiendacliente-a.com:2083" {
		t.Fatalf("unexpected panel url %+v", msg)
	}
	if len(f.opener.urls) != 2 {
		t.Fatalf("expected 2 opened urls, got %v", f.opener.urls)
	}
}

func TestForm_CreatePrepends(t *testing.T) {
	f := newFixture(t)

	f.press("n")
	if !f.m.Capturing() || f.m.fb.emoji != model.DefaultEmoji {
		t.Fatalf("expected create form with default emoji")
	}
	*f.m.fb = formBindings{
		emoji: "🚀", name: "Launch Site", siteURL: "https://launch.dev", cpanelURL: "https://launch.dev:2083",
		username: "root", password: "pw",
	}
	f.m.submit()

	got := f.state.Projects()
	if len(got) != 4 || got[0].Name != "Launch Site" || got[0].CreatedAt != got[0].ID {
		t.Fatalf("expected new project first with createdAt == id, got %+v", got[0])
	}
	if f.m.Capturing() {
		t.Fatalf("expected list mode after submit")
	}
}

func TestForm_EditKeepsIdentity(t *testing.T) {
	f := newFixture(t)
	before, _ := f.state.FindProject(1)

	f.press("e")
	if f.m.fb.name != before.Name || f.m.editingID != 1 {
		t.Fatalf("edit form must be prefilled")
	}
	f.m.fb.name = "Client A Store"
	f.m.submit()

	after, _ := f.state.FindProject(1)
	if after.Name != "Client A Store" || after.CreatedAt != before.CreatedAt {
		t.Fatalf("unexpected edit result %+v", after)
	}
	if len(f.state.Projects()) != 3 {
		t.Fatalf("edit must not add projects")
	}
}

func TestValidators(t *testing.T) {
	if err := validURL("https://misitio.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "misitio.com", "https://"} {
		if validURL(bad) == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
	if required("name")("  ") == nil {
		t.Fatalf("blank name must be rejected")
	}
}

func TestNextFacet(t *testing.T) {
	facets := []string{"🛒", "📝"}
	tests := []struct{ current, want string }{
		{"", "🛒"},
		{"🛒", "📝"},
		{"📝", ""},
		{"🎉", ""},
	}
	for _, tt := range tests {
		if got := nextFacet(facets, tt.current); got != tt.want {
			t.Fatalf("nextFacet(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if nextFacet(nil, "") != "" {
		t.Fatalf("no facets means all")
	}
}

func TestStatus_ClearsOnNextKey(t *testing.T) {
	f := newFixture(t)

	f.press("d")
	if !strings.Contains(f.m.View(), "Deleted") {
		t.Fatalf("expected delete status:\n%s", f.m.View())
	}
	f.press("j")
	if strings.Contains(f.m.View(), "Deleted") {
		t.Errorf("status should clear on the next key:\n%s", f.m.View())
	}
}
