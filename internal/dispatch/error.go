package dispatch

import "errors"

var (
	ErrUnknownNotification = errors.New("dispatch: unknown notification id")
	ErrUnknownSource       = errors.New("dispatch: unknown source")
)
