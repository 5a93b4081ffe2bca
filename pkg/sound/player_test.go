package sound

import (
	"context"
	"errors"
	"testing"
)

func TestExecPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("gated until warmed up", func(t *testing.T) {
		p := New(Config{Command: "true", File: "/dev/null"})
		if err := p.Play(ctx); !errors.Is(err, ErrNotWarmedUp) {
			t.Errorf("expected ErrNotWarmedUp, got %v", err)
		}

		p.WarmUp(ctx)
		if err := p.Play(ctx); err != nil {
			t.Errorf("unexpected error after warm-up: %v", err)
		}
	})

	t.Run("playback failure surfaces", func(t *testing.T) {
		p := New(Config{Command: "false", File: "/dev/null"})
		p.WarmUp(ctx)
		if err := p.Play(ctx); err == nil {
			t.Error("expected playback error")
		}
	})
}

func TestNoopPlayer(t *testing.T) {
	ctx := context.Background()
	p := New(Config{})

	// Without a configured command the player accepts everything silently.
	if err := p.Play(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
