package dispatch

import (
	"context"
	"encoding/json"
)

// UseCase is the single normalization and display-policy decision point for
// events arriving over the live channel and over foreground push.
type UseCase interface {
	// Handle normalizes a raw transport payload into a canonical event and
	// dispatches it: cache invalidation, dedup by id, focus-aware routing
	// to the toast or OS sink, best-effort sound. A malformed payload is
	// logged and degraded, never fatal.
	Handle(ctx context.Context, raw json.RawMessage, source Source) error
	// MarkRead marks a displayed notification as read: local state first,
	// then the backend (idempotent; failure logged, never blocking).
	MarkRead(ctx context.Context, id string) error
	// Click resolves a notification click: marks it read and returns the
	// deep link the surface should navigate to.
	Click(ctx context.Context, id string) (string, error)
	// WarmUpSound unlocks the audio cue after the first user gesture.
	WarmUpSound(ctx context.Context)
	// ResetSession clears the dedup memory. Teardown calls it so a new
	// login starts from a clean slate.
	ResetSession(ctx context.Context)
	// Stats reports dispatch counters for the control surface.
	Stats(ctx context.Context) Stats
}

// FocusReader exposes the live focus flag. Read at dispatch time, never
// cached earlier.
type FocusReader interface {
	Focused() bool
}

// Sink renders one notification on a display surface.
type Sink interface {
	Show(ctx context.Context, n Notification) error
}
