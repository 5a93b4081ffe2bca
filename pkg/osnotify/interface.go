package osnotify

import "context"

// Notification is one OS-level notification to render.
type Notification struct {
	Title string
	Body  string
	// Link is the navigation target attached to the notification click.
	Link string
}

// Notifier renders OS-level notifications. Used by the dispatcher when the
// surface is open but unfocused, and by the background worker always.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// New returns an exec-backed Notifier using the desktop notification
// command, or a no-op one when the command is empty.
func New(command string) Notifier {
	if command == "" {
		return &noopNotifier{}
	}
	return &execNotifier{command: command}
}
