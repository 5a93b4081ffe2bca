package livechannel

import (
	"context"
	"encoding/json"
)

// EventHandler receives the raw payload of one inbound notification frame.
// The dispatcher is the one required subscriber.
type EventHandler func(ctx context.Context, payload json.RawMessage)

// Manager owns the single live connection for the active (user, restaurant)
// pair. Exactly one connection may exist per process; switching identity
// requires an explicit Disconnect first.
type Manager interface {
	// Connect opens the live channel for the given pair. It is a logged
	// no-op when either identifier is empty and idempotent for the same
	// pair while already connected. A different pair while connected
	// returns ErrIdentityChanged.
	Connect(ctx context.Context, userID, restaurantID string) error
	// OnEvent registers the single canonical handler for inbound
	// notification frames and returns an unsubscribe func.
	OnEvent(handler EventHandler) func()
	// Disconnect closes the channel and stops any redialing. No redial
	// happens after an explicit Disconnect.
	Disconnect(ctx context.Context) error
	// State returns the current connection state.
	State() State
}
