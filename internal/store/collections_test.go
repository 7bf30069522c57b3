package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/store"
	"github.com/nhle/kodeportal/tests/testutil"
)

func TestCollections_SeedFallbackWhenMissing(t *testing.T) {
	c, _ := testutil.NewTestCollections(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	projects, err := c.LoadProjects(ctx, now)
	if err != nil {
		t.Fatalf("load projects: %v", err)
	}
	if !reflect.DeepEqual(projects, model.SeedProjects(now)) {
		t.Fatalf("expected seed projects, got %+v", projects)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 seed projects, got %d", len(projects))
	}

	tasks, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if !reflect.DeepEqual(tasks, model.SeedTasks()) || len(tasks) != 5 {
		t.Fatalf("expected 5 seed tasks, got %+v", tasks)
	}

	snippets, err := c.LoadSnippets(ctx)
	if err != nil {
		t.Fatalf("load snippets: %v", err)
	}
	if !reflect.DeepEqual(snippets, model.SeedSnippets()) || len(snippets) != 1 {
		t.Fatalf("expected 1 seed snippet, got %+v", snippets)
	}
}

func TestCollections_SaveThenLoad(t *testing.T) {
	c, s := testutil.NewTestCollections(t)
	ctx := context.Background()

	tasks := []model.Task{
		{ID: 10, Title: "Rotate keys", Category: model.CategorySecurity, DueDate: "2026-04-01"},
		{ID: 11, Title: "Backup", Category: "Custom", DueDate: "2026-04-02", Completed: true},
	}
	if err := c.SaveTasks(ctx, tasks); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, tasks)
	}

	raw, err := s.Get(ctx, "kodeportal_tasks")
	if err != nil {
		t.Fatalf("raw get: %v", err)
	}
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("stored value is not a JSON array: %v", err)
	}
	for _, k := range []string{"id", "title", "category", "dueDate", "completed"} {
		if _, ok := generic[0][k]; !ok {
			t.Fatalf("stored task is missing key %q: %s", k, raw)
		}
	}
}

func TestCollections_EmptyCollectionIsNotReseeded(t *testing.T) {
	c, _ := testutil.NewTestCollections(t)
	ctx := context.Background()

	if err := c.SaveSnippets(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := c.LoadSnippets(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty, non-nil collection, got %#v", got)
	}
}

func TestCollections_UnparsableFallsBackToSeed(t *testing.T) {
	c, s := testutil.NewTestCollections(t)
	ctx := context.Background()

	if err := s.Set(ctx, "kodeportal_tasks", []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, model.SeedTasks()) {
		t.Fatalf("expected seed tasks, got %+v", got)
	}
}

type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Set(context.Context, string, []byte) error   { return f.err }
func (f failingBackend) Delete(context.Context, string) error        { return f.err }

func TestCollections_BackendErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	c := store.NewCollections(failingBackend{err: boom}, zerolog.Nop())
	ctx := context.Background()

	if _, err := c.LoadSnippets(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected load error to wrap backend error, got %v", err)
	}
	if err := c.SaveProjects(ctx, nil); !errors.Is(err, boom) {
		t.Fatalf("expected save error to wrap backend error, got %v", err)
	}
	if err := c.Reset(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected reset error to wrap backend error, got %v", err)
	}
}

func TestCollections_ResetReseeds(t *testing.T) {
	c, _ := testutil.NewTestCollections(t)
	ctx := context.Background()

	if err := c.SaveTasks(ctx, []model.Task{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(model.SeedTasks()) {
		t.Fatalf("expected seed tasks after reset, got %d", len(got))
	}
}

func TestCollections_RawReturnsSeedWhenMissing(t *testing.T) {
	c, _ := testutil.NewTestCollections(t)
	now := time.Unix(1_700_000_000, 0)

	raw, err := c.Raw(context.Background(), model.CollectionProjects, now)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	var got []model.Project
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, model.SeedProjects(now)) {
		t.Fatalf("expected seed projects, got %+v", got)
	}

	if _, err := c.Raw(context.Background(), model.Collection("bogus"), now); !errors.Is(err, model.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestCollections_RawMatchesLoadForCorruptRecord(t *testing.T) {
	c, s := testutil.NewTestCollections(t)
	ctx := context.Background()

	if err := s.Set(ctx, model.CollectionTasks.Key(), []byte(`{not json`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, err := c.Raw(ctx, model.CollectionTasks, time.Now())
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	var got []model.Task
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("raw output is not valid JSON: %v\n%s", err, raw)
	}
	loaded, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, loaded) || !reflect.DeepEqual(got, model.SeedTasks()) {
		t.Fatalf("raw = %+v, want the seed tasks a load returns", got)
	}
}

func TestCollections_RawReturnsStoredRecord(t *testing.T) {
	c, _ := testutil.NewTestCollections(t)
	ctx := context.Background()

	snippets := []model.Snippet{{ID: 9, Title: "tail", Code: "tail -f error_log"}}
	if err := c.SaveSnippets(ctx, snippets); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := c.Raw(ctx, model.CollectionSnippets, time.Now())
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	var got []model.Snippet
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, snippets) {
		t.Fatalf("got %+v, want %+v", got, snippets)
	}
}
