// Package ack tracks short-lived "copied" acknowledgments. Each
// acknowledgment is idle until Ack is called, stays acknowledged for the
// tracker's delay and then returns to idle when its ExpiredMsg arrives.
package ack

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is how long an acknowledgment stays visible.
const DefaultDelay = 2 * time.Second

var trackerIDs atomic.Uint64

// ExpiredMsg ends one acknowledgment. It is only honoured by the tracker
// that issued it and only if the key was not acknowledged again since.
type ExpiredMsg struct {
	Key     string
	tracker uint64
	seq     uint64
}

// Tracker holds the currently acknowledged keys.
type Tracker struct {
	id     uint64
	delay  time.Duration
	single bool
	seq    uint64
	active map[string]uint64
}

// New returns a tracker whose keys are acknowledged independently.
func New(delay time.Duration) *Tracker {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Tracker{
		id:     trackerIDs.Add(1),
		delay:  delay,
		active: make(map[string]uint64),
	}
}

// NewSingle returns a tracker that acknowledges at most one key at a time.
// Acknowledging a key clears any other.
func NewSingle(delay time.Duration) *Tracker {
	t := New(delay)
	t.single = true
	return t
}

// Ack marks key as acknowledged and returns the timer that expires it.
// Acknowledging an already active key restarts its timer.
func (t *Tracker) Ack(key string) tea.Cmd {
	t.seq++
	if t.single {
		clear(t.active)
	}
	t.active[key] = t.seq

	msg := ExpiredMsg{Key: key, tracker: t.id, seq: t.seq}
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Update applies an ExpiredMsg. It reports whether msg belonged to this
// tracker.
func (t *Tracker) Update(msg tea.Msg) bool {
	m, ok := msg.(ExpiredMsg)
	if !ok || m.tracker != t.id {
		return false
	}
	if t.active[m.Key] == m.seq {
		delete(t.active, m.Key)
	}
	return true
}

// Active reports whether key is currently acknowledged.
func (t *Tracker) Active(key string) bool {
	_, ok := t.active[key]
	return ok
}

// Delay returns how long acknowledgments last.
func (t *Tracker) Delay() time.Duration {
	return t.delay
}
