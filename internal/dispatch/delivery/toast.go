// Package delivery holds the display sinks the dispatcher routes to.
package delivery

import (
	"context"
	"sync"

	"resto-notify/internal/dispatch"
)

// ToastFeed is the in-app transient toast surface. The panel UI drains it
// through the control server; each toast carries the deep link for its
// "view" action.
type ToastFeed struct {
	mu       sync.Mutex
	items    []dispatch.Notification
	capacity int
}

// NewToastFeed creates a feed holding at most capacity pending toasts.
func NewToastFeed(capacity int) *ToastFeed {
	if capacity <= 0 {
		capacity = 32
	}
	return &ToastFeed{capacity: capacity}
}

// Show implements dispatch.Sink.
func (f *ToastFeed) Show(ctx context.Context, n dispatch.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.capacity {
		f.items = f.items[len(f.items)-f.capacity:]
	}
	return nil
}

// Drain returns all pending toasts and clears the feed.
func (f *ToastFeed) Drain() []dispatch.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items
	f.items = nil
	return items
}

// Pending returns the number of toasts waiting to be drained.
func (f *ToastFeed) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
