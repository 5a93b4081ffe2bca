package push

import (
	"context"

	"resto-notify/internal/model"
)

// Manager owns the device token lifecycle and the foreground push
// subscription. It keeps exactly one "latest successfully registered" token.
type Manager interface {
	// RequestPermissionAndToken resolves the permission state, verifies the
	// background worker heartbeat, and issues (or loads) the device token.
	// A denied permission or absent platform returns "" with no error and
	// no side effects; that is a normal outcome, not a failure.
	RequestPermissionAndToken(ctx context.Context) (string, error)
	// Register records the token with the backend. Guarded against an
	// in-flight call and against re-registering the last successfully
	// registered token; the guard is released whether the call succeeds or
	// fails, so a later mount can retry.
	Register(ctx context.Context, token string) error
	// DeleteLocalToken invalidates the device token and clears the
	// last-registered memory. Teardown awaits it before clearing caches so
	// a stale token cannot repopulate them.
	DeleteLocalToken(ctx context.Context) error
	// TokenState reports the device token lifecycle state.
	TokenState(ctx context.Context) model.DeviceTokenState
	// Shutdown stops the foreground subscription.
	Shutdown(ctx context.Context) error
}
