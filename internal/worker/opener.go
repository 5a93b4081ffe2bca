package worker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const openTimeout = 5 * time.Second

// Opener navigates the user's browser to a URL. The worker cannot touch a
// tab's router directly; opening (or refocusing) a window is the only
// channel it has.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// NewOpener returns an exec-backed Opener (xdg-open style). BaseURL is
// prefixed to app-relative paths.
func NewOpener(command, baseURL string) Opener {
	return &execOpener{command: command, baseURL: strings.TrimSuffix(baseURL, "/")}
}

type execOpener struct {
	command string
	baseURL string
}

func (o *execOpener) Open(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "/") {
		url = o.baseURL + url
	}

	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, o.command, url)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("worker: opening %s: %w", url, err)
	}
	return nil
}
