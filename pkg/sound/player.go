package sound

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync/atomic"
	"time"
)

// ErrNotWarmedUp is returned when playback is attempted before the first
// user gesture unlocked audio output.
var ErrNotWarmedUp = errors.New("sound: player not warmed up")

const playTimeout = 5 * time.Second

type execPlayer struct {
	cfg      Config
	warmedUp atomic.Bool
}

func (p *execPlayer) WarmUp(ctx context.Context) {
	p.warmedUp.Store(true)
}

func (p *execPlayer) Play(ctx context.Context) error {
	if !p.warmedUp.Load() {
		return ErrNotWarmedUp
	}

	ctx, cancel := context.WithTimeout(ctx, playTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.cfg.Command, p.cfg.File)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sound: playback failed: %w", err)
	}
	return nil
}

type noopPlayer struct{}

func (p *noopPlayer) WarmUp(ctx context.Context)     {}
func (p *noopPlayer) Play(ctx context.Context) error { return nil }
