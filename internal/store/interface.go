package store

import (
	"context"

	"resto-notify/internal/model"
)

// Store holds the notification-scoped device state: unread counters and the
// transient event list (in memory), plus the small persisted subset that
// survives agent restarts (sound preference, permission decision, token
// cache). Teardown clears all of it.
type Store interface {
	// Transient notification list and unread counter.
	AddEvent(ctx context.Context, ev model.NotificationEvent)
	Events(ctx context.Context) []model.NotificationEvent
	MarkEventSeen(ctx context.Context, id string)
	Unread(ctx context.Context) int

	// Persisted preferences and token cache.
	SoundEnabled(ctx context.Context) bool
	SetSoundEnabled(ctx context.Context, enabled bool) error
	PermissionState(ctx context.Context) model.PermissionState
	SetPermissionState(ctx context.Context, state model.PermissionState) error
	DeviceToken(ctx context.Context) string
	SetDeviceToken(ctx context.Context, token string) error
	LastRegisteredToken(ctx context.Context) string
	SetLastRegisteredToken(ctx context.Context, token string) error

	// Last-known focus snapshot. Non-authoritative; the tracker owns the
	// live flag.
	SetFocusSnapshot(focused bool)
	FocusSnapshot() bool

	// Clear wipes the unread counter and the transient event list.
	Clear(ctx context.Context) error
	// ClearPersisted wipes every persisted notification-scoped key.
	ClearPersisted(ctx context.Context) error

	Close() error
}
