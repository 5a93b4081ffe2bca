package delivery

import (
	"context"

	"resto-notify/internal/dispatch"
	"resto-notify/pkg/osnotify"
)

// OSSink renders through the OS notification surface. Used when the panel
// is open but not the focused surface; the click link is the plain deep
// link since the open app can navigate itself.
type OSSink struct {
	notifier osnotify.Notifier
}

// NewOSSink wraps an OS notifier as a dispatch sink.
func NewOSSink(notifier osnotify.Notifier) *OSSink {
	return &OSSink{notifier: notifier}
}

// Show implements dispatch.Sink.
func (s *OSSink) Show(ctx context.Context, n dispatch.Notification) error {
	return s.notifier.Notify(ctx, osnotify.Notification{
		Title: n.Title,
		Body:  n.Body,
		Link:  n.DeepLink,
	})
}
