package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseCollection(t *testing.T) {
	for _, c := range Collections {
		got, err := ParseCollection(string(c))
		if err != nil || got != c {
			t.Fatalf("ParseCollection(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseCollection("notes"); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
	if got := CollectionSnippets.Key(); got != "kodeportal_snippets" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestSeedDataset(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	projects := SeedProjects(now)
	if len(projects) != 3 || len(SeedTasks()) != 5 || len(SeedSnippets()) != 1 {
		t.Fatalf("seed sizes changed: %d projects, %d tasks, %d snippets",
			len(projects), len(SeedTasks()), len(SeedSnippets()))
	}
	if projects[2].CreatedAt != now.UnixMilli() {
		t.Fatalf("expected the last seed project to be created now")
	}
	if projects[0].CreatedAt >= projects[1].CreatedAt {
		t.Fatalf("expected seed projects in creation order")
	}
}

func TestTaskDue(t *testing.T) {
	if _, ok := (Task{DueDate: "someday"}).Due(); ok {
		t.Fatalf("expected malformed date to be rejected")
	}
	d, ok := (Task{DueDate: "2026-02-25"}).Due()
	if !ok || d.Day() != 25 || d.Month() != time.February {
		t.Fatalf("unexpected due date %v (ok=%v)", d, ok)
	}
}
