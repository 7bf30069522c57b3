// Package workspace owns the application state: the project, task and
// snippet collections, their persisting setters, and the pure functions
// that derive dashboard, filter and sort views from them.
package workspace

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/store"
)

// State is the single owner of the three domain collections. Every setter
// replaces the in-memory collection and then writes the whole collection
// through the store before returning.
//
// State is not safe for concurrent use; the UI loop is its only caller.
type State struct {
	projects []model.Project
	tasks    []model.Task
	snippets []model.Snippet

	coll  *store.Collections
	log   zerolog.Logger
	now   func() time.Time
	clock idClock
}

// Option customizes a State.
type Option func(*State)

// WithClock replaces the wall clock used for identities and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// Load hydrates a State from storage, falling back to seed data for
// collections that were never saved.
func Load(ctx context.Context, coll *store.Collections, log zerolog.Logger, opts ...Option) (*State, error) {
	s := &State{coll: coll, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.clock.now = s.now

	var err error
	if s.projects, err = coll.LoadProjects(ctx, s.now()); err != nil {
		return nil, fmt.Errorf("hydrating projects: %w", err)
	}
	if s.tasks, err = coll.LoadTasks(ctx); err != nil {
		return nil, fmt.Errorf("hydrating tasks: %w", err)
	}
	if s.snippets, err = coll.LoadSnippets(ctx); err != nil {
		return nil, fmt.Errorf("hydrating snippets: %w", err)
	}

	for _, p := range s.projects {
		s.clock.observe(p.ID)
	}
	for _, t := range s.tasks {
		s.clock.observe(t.ID)
	}
	for _, sn := range s.snippets {
		s.clock.observe(sn.ID)
	}

	s.log.Info().
		Int("projects", len(s.projects)).
		Int("tasks", len(s.tasks)).
		Int("snippets", len(s.snippets)).
		Msg("workspace loaded")
	return s, nil
}

// Now returns the state's notion of the current time.
func (s *State) Now() time.Time {
	return s.now()
}

// Projects returns the current project collection. Callers must not
// modify the returned slice.
func (s *State) Projects() []model.Project { return s.projects }

// Tasks returns the current task collection. Callers must not modify the
// returned slice.
func (s *State) Tasks() []model.Task { return s.tasks }

// Snippets returns the current snippet collection. Callers must not
// modify the returned slice.
func (s *State) Snippets() []model.Snippet { return s.snippets }

// SetProjects replaces the project collection and persists it.
func (s *State) SetProjects(ctx context.Context, projects []model.Project) error {
	s.projects = projects
	return s.persist(model.CollectionProjects, s.coll.SaveProjects(ctx, projects))
}

// SetTasks replaces the task collection and persists it.
func (s *State) SetTasks(ctx context.Context, tasks []model.Task) error {
	s.tasks = tasks
	return s.persist(model.CollectionTasks, s.coll.SaveTasks(ctx, tasks))
}

// SetSnippets replaces the snippet collection and persists it.
func (s *State) SetSnippets(ctx context.Context, snippets []model.Snippet) error {
	s.snippets = snippets
	return s.persist(model.CollectionSnippets, s.coll.SaveSnippets(ctx, snippets))
}

func (s *State) persist(coll model.Collection, err error) error {
	if err != nil {
		s.log.Error().Err(err).Str("collection", string(coll)).Msg("persisting collection failed")
		return err
	}
	s.log.Debug().Str("collection", string(coll)).Msg("collection persisted")
	return nil
}

// CreateProject assigns identity and creation time to p, prepends it to
// the collection and returns the stored record.
func (s *State) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	p.ID = s.clock.next()
	p.CreatedAt = p.ID
	next := make([]model.Project, 0, len(s.projects)+1)
	next = append(next, p)
	next = append(next, s.projects...)
	return p, s.SetProjects(ctx, next)
}

// UpdateProject replaces the project with p.ID. Identity and creation time
// are kept from the stored record. Unknown ids leave the collection as is.
func (s *State) UpdateProject(ctx context.Context, p model.Project) error {
	next := make([]model.Project, len(s.projects))
	for i, cur := range s.projects {
		if cur.ID == p.ID {
			p.CreatedAt = cur.CreatedAt
			next[i] = p
			continue
		}
		next[i] = cur
	}
	return s.SetProjects(ctx, next)
}

// DeleteProject removes the project with the given id, if present.
func (s *State) DeleteProject(ctx context.Context, id int64) error {
	return s.SetProjects(ctx, slices.DeleteFunc(slices.Clone(s.projects), func(p model.Project) bool {
		return p.ID == id
	}))
}

// FindProject returns the project with the given id.
func (s *State) FindProject(id int64) (model.Project, bool) {
	i := slices.IndexFunc(s.projects, func(p model.Project) bool { return p.ID == id })
	if i < 0 {
		return model.Project{}, false
	}
	return s.projects[i], true
}

// CreateTask assigns identity to t, forces it incomplete, appends it to
// the collection and returns the stored record.
func (s *State) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = s.clock.next()
	t.Completed = false
	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, t)
	return t, s.SetTasks(ctx, next)
}

// UpdateTask replaces title, category and due date of the task with t.ID.
// The completed flag only changes through ToggleTask.
func (s *State) UpdateTask(ctx context.Context, t model.Task) error {
	next := make([]model.Task, len(s.tasks))
	for i, cur := range s.tasks {
		if cur.ID == t.ID {
			t.Completed = cur.Completed
			next[i] = t
			continue
		}
		next[i] = cur
	}
	return s.SetTasks(ctx, next)
}

// ToggleTask flips the completed flag of the task with the given id.
func (s *State) ToggleTask(ctx context.Context, id int64) error {
	next := slices.Clone(s.tasks)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
		}
	}
	return s.SetTasks(ctx, next)
}

// DeleteTask removes the task with the given id, if present.
func (s *State) DeleteTask(ctx context.Context, id int64) error {
	return s.SetTasks(ctx, slices.DeleteFunc(slices.Clone(s.tasks), func(t model.Task) bool {
		return t.ID == id
	}))
}

// FindTask returns the task with the given id.
func (s *State) FindTask(id int64) (model.Task, bool) {
	i := slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// CreateSnippet assigns identity to sn, prepends it and returns it.
func (s *State) CreateSnippet(ctx context.Context, sn model.Snippet) (model.Snippet, error) {
	sn.ID = s.clock.next()
	next := make([]model.Snippet, 0, len(s.snippets)+1)
	next = append(next, sn)
	next = append(next, s.snippets...)
	return sn, s.SetSnippets(ctx, next)
}

// DeleteSnippet removes the snippet with the given id, if present.
func (s *State) DeleteSnippet(ctx context.Context, id int64) error {
	return s.SetSnippets(ctx, slices.DeleteFunc(slices.Clone(s.snippets), func(sn model.Snippet) bool {
		return sn.ID == id
	}))
}
