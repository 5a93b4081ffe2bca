package sound

import "context"

// Player plays the short notification audio cue. Playback is best effort:
// a failed or suppressed cue must never block dispatch.
type Player interface {
	// WarmUp marks the player as allowed to emit audio. Platforms gate
	// audio output behind a first user gesture; the control surface calls
	// this when that gesture is reported.
	WarmUp(ctx context.Context)
	// Play emits the cue. Before WarmUp it returns ErrNotWarmedUp.
	Play(ctx context.Context) error
}

// Config holds the external player command and the cue file it plays.
type Config struct {
	Command string
	File    string
}

// New returns an exec-backed Player, or a no-op one when no command is
// configured.
func New(cfg Config) Player {
	if cfg.Command == "" {
		return &noopPlayer{}
	}
	return &execPlayer{cfg: cfg}
}
