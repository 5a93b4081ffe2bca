// Package focus owns the process-wide focus flag: whether the panel surface
// this agent serves currently has the user's attention. Nothing else may
// mutate the flag; the dispatcher reads it at the moment an event is
// dispatched, never earlier.
package focus

import (
	"context"
	"sync"

	"resto-notify/pkg/log"
)

// Tracker is the single writer of the focus flag.
type Tracker struct {
	l log.Logger

	mu      sync.RWMutex
	focused bool
	subs    map[int]func(bool)
	nextSub int
}

// NewTracker creates a Tracker. The surface starts unfocused until the first
// transition is reported.
func NewTracker(l log.Logger) *Tracker {
	return &Tracker{
		l:    l,
		subs: make(map[int]func(bool)),
	}
}

// SetFocused records a visibility/focus/blur transition reported by the
// panel surface.
func (t *Tracker) SetFocused(ctx context.Context, focused bool) {
	t.mu.Lock()
	changed := t.focused != focused
	t.focused = focused
	subs := make([]func(bool), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	if !changed {
		return
	}

	t.l.Debugf(ctx, "internal.focus.SetFocused: focused=%v", focused)
	for _, fn := range subs {
		fn(focused)
	}
}

// Focused returns the current focus flag.
func (t *Tracker) Focused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.focused
}

// Subscribe registers a change callback and returns an unsubscribe func.
func (t *Tracker) Subscribe(fn func(focused bool)) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}
