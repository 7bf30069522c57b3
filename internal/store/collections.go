package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/kodeportal/internal/model"
)

// Collections reads and writes the three persisted collections on top of
// a Backend. Every save serializes and writes the whole collection.
type Collections struct {
	backend Backend
	log     zerolog.Logger
}

// NewCollections wraps a Backend with typed collection access.
func NewCollections(b Backend, log zerolog.Logger) *Collections {
	return &Collections{backend: b, log: log}
}

// Backend returns the underlying key-value store.
func (c *Collections) Backend() Backend {
	return c.backend
}

// LoadProjects returns the persisted projects, or the seed projects when
// nothing usable is stored.
func (c *Collections) LoadProjects(ctx context.Context, now time.Time) ([]model.Project, error) {
	return load(ctx, c, model.CollectionProjects, func() []model.Project {
		return model.SeedProjects(now)
	})
}

// LoadTasks returns the persisted tasks, or the seed tasks.
func (c *Collections) LoadTasks(ctx context.Context) ([]model.Task, error) {
	return load(ctx, c, model.CollectionTasks, model.SeedTasks)
}

// LoadSnippets returns the persisted snippets, or the seed snippets.
func (c *Collections) LoadSnippets(ctx context.Context) ([]model.Snippet, error) {
	return load(ctx, c, model.CollectionSnippets, model.SeedSnippets)
}

// SaveProjects writes the full project collection.
func (c *Collections) SaveProjects(ctx context.Context, projects []model.Project) error {
	return save(ctx, c, model.CollectionProjects, projects)
}

// SaveTasks writes the full task collection.
func (c *Collections) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return save(ctx, c, model.CollectionTasks, tasks)
}

// SaveSnippets writes the full snippet collection.
func (c *Collections) SaveSnippets(ctx context.Context, snippets []model.Snippet) error {
	return save(ctx, c, model.CollectionSnippets, snippets)
}

// Raw returns a collection encoded as JSON exactly as a load would see
// it: a missing or unparsable record yields the seed data.
func (c *Collections) Raw(ctx context.Context, coll model.Collection, now time.Time) ([]byte, error) {
	var (
		items any
		err   error
	)
	switch coll {
	case model.CollectionProjects:
		items, err = c.LoadProjects(ctx, now)
	case model.CollectionTasks:
		items, err = c.LoadTasks(ctx)
	case model.CollectionSnippets:
		items, err = c.LoadSnippets(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCollection, coll)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(items)
}

// Reset deletes every persisted collection so the next load reseeds.
func (c *Collections) Reset(ctx context.Context) error {
	for _, coll := range model.Collections {
		if err := c.backend.Delete(ctx, coll.Key()); err != nil {
			return fmt.Errorf("resetting %s: %w", coll, err)
		}
	}
	return nil
}

// load decodes one collection. A missing record and an undecodable record
// both fall back to the seed; any other backend error is returned.
func load[T any](ctx context.Context, c *Collections, coll model.Collection, seed func() []T) ([]T, error) {
	raw, err := c.backend.Get(ctx, coll.Key())
	if errors.Is(err, ErrNotFound) {
		c.log.Debug().Str("collection", string(coll)).Msg("no stored record, using seed data")
		return seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", coll, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Str("collection", string(coll)).Msg("stored record is not valid JSON, using seed data")
		return seed(), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](ctx context.Context, c *Collections, coll model.Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", coll, err)
	}
	if err := c.backend.Set(ctx, coll.Key(), raw); err != nil {
		return fmt.Errorf("saving %s: %w", coll, err)
	}
	return nil
}
