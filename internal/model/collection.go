package model

import (
	"errors"
	"fmt"
)

// ErrUnknownCollection is returned when a collection name does not match
// one of the persisted records.
var ErrUnknownCollection = errors.New("unknown collection")

// Collection names one of the three persisted records.
type Collection string

const (
	CollectionProjects Collection = "projects"
	CollectionTasks    Collection = "tasks"
	CollectionSnippets Collection = "snippets"
)

// Collections lists every persisted collection.
var Collections = []Collection{CollectionProjects, CollectionTasks, CollectionSnippets}

// Key returns the storage record name for the collection.
func (c Collection) Key() string {
	return "kodeportal_" + string(c)
}

// ParseCollection maps a user-supplied name onto a Collection.
func ParseCollection(name string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}
