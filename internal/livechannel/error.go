package livechannel

import "errors"

var (
	// ErrIdentityChanged is returned when Connect is called for a
	// different (user, restaurant) pair while a connection exists.
	// The caller must Disconnect first so stale events cannot be
	// misattributed to the new identity.
	ErrIdentityChanged = errors.New("livechannel: identity changed, disconnect first")
)
