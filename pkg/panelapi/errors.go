package panelapi

import "errors"

var (
	ErrTokenRequired = errors.New("panelapi: token is required")
	ErrIDRequired    = errors.New("panelapi: notification id is required")
)
