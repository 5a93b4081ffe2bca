package osnotify

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

const notifyTimeout = 5 * time.Second

// execNotifier shells out to a notify-send compatible command. The click
// link is appended to the body: the desktop surface cannot call back into
// this process, so navigation always goes through the link.
type execNotifier struct {
	command string
}

func (n *execNotifier) Notify(ctx context.Context, notification Notification) error {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	body := notification.Body
	if notification.Link != "" {
		body = body + "\n" + notification.Link
	}

	cmd := exec.CommandContext(ctx, n.command, notification.Title, body)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osnotify: render failed: %w", err)
	}
	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) Notify(ctx context.Context, notification Notification) error { return nil }
