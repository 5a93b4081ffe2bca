package push

import "errors"

var (
	// ErrRegistrationInFlight is returned when a registration call is
	// already running. Callers simply wait for the next mount.
	ErrRegistrationInFlight = errors.New("push: registration already in flight")
	ErrTokenRequired        = errors.New("push: token is required")
)
