// Package worker is the background delivery path. It runs as its own
// process with no shared memory with the agent: push payloads come in over
// the broker, and the only outputs are OS notifications and browser
// navigations carrying serialized deep links.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"resto-notify/internal/model"
	"resto-notify/pkg/deeplink"
	"resto-notify/pkg/format"
	"resto-notify/pkg/log"
	"resto-notify/pkg/osnotify"
	pkgRedis "resto-notify/pkg/redis"
)

// Config holds worker settings.
type Config struct {
	ChannelPrefix string
	HeartbeatKey  string
	HeartbeatTTL  time.Duration
}

// Worker subscribes to this device's push channels and renders OS
// notifications. There is no focus check here: this path only matters when
// no surface owns focus.
type Worker struct {
	l        log.Logger
	cfg      Config
	client   *pkgRedis.Client
	notifier osnotify.Notifier
	opener   Opener

	pubsub *goredis.PubSub

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// Reconnection settings
	maxRetries int
	retryDelay time.Duration

	rendered atomic.Int64
	dropped  atomic.Int64
}

// New creates a Worker.
func New(l log.Logger, cfg Config, client *pkgRedis.Client, notifier osnotify.Notifier, opener Opener) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		l:          l,
		cfg:        cfg,
		client:     client,
		notifier:   notifier,
		opener:     opener,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		maxRetries: 10,
		retryDelay: 5 * time.Second,
	}
}

// Start subscribes to the push channel pattern and begins delivering.
func (w *Worker) Start() error {
	w.pubsub = w.client.PSubscribe(w.ctx, w.cfg.ChannelPrefix+"*")

	go w.heartbeat()
	go w.listen()

	w.l.Infof(w.ctx, "internal.worker.Start: listening on pattern %s*", w.cfg.ChannelPrefix)
	return nil
}

func (w *Worker) listen() {
	defer close(w.done)

	ch := w.pubsub.Channel()
	for {
		select {
		case <-w.ctx.Done():
			w.l.Info(context.Background(), "internal.worker.listen: shutting down")
			return

		case msg, ok := <-ch:
			if !ok {
				w.l.Error(w.ctx, "internal.worker.listen: channel closed, reconnecting")
				if err := w.reconnect(); err != nil {
					w.l.Errorf(w.ctx, "internal.worker.listen: reconnect failed: %v", err)
					return
				}
				ch = w.pubsub.Channel()
				continue
			}
			w.handleMessage(w.ctx, msg.Payload)
		}
	}
}

// handleMessage parses one push payload and renders it. Parse failures
// degrade to placeholders; nothing on this path may panic or stop the loop.
func (w *Worker) handleMessage(ctx context.Context, payload string) {
	var push model.PushPayload
	if err := json.Unmarshal([]byte(payload), &push); err != nil {
		w.dropped.Add(1)
		w.l.Warnf(ctx, "internal.worker.handleMessage: malformed push payload dropped: %v", err)
		return
	}

	data := push.Data
	title := data.Title
	if title == "" {
		title = format.Placeholder(data.Type)
	}
	body := format.Body(data.Type, data.Body)

	link := ""
	if target, err := deeplink.Build(data.Type, data.EntityID); err == nil {
		// A closed-app click cannot reach a live router; the link is
		// wrapped so the app unwraps it on load.
		link = deeplink.WrapRedirect(target)
	}

	if err := w.notifier.Notify(ctx, osnotify.Notification{
		Title: title,
		Body:  body,
		Link:  link,
	}); err != nil {
		w.dropped.Add(1)
		w.l.Errorf(ctx, "internal.worker.handleMessage: render failed: %v", err)
		return
	}
	w.rendered.Add(1)
}

// HandleClick resolves a notification click from the OS surface: it either
// focuses an existing window or opens a new one with the redirect-wrapped
// deep link.
func (w *Worker) HandleClick(ctx context.Context, t model.EventType, entityID string) error {
	target, err := deeplink.Build(t, entityID)
	if err != nil {
		return err
	}
	return w.opener.Open(ctx, deeplink.WrapRedirect(target))
}

// heartbeat keeps the worker-installed marker alive so the agent's
// registration path can tell whether background delivery is available.
func (w *Worker) heartbeat() {
	interval := w.cfg.HeartbeatTTL / 3
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.beat()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.beat()
		}
	}
}

func (w *Worker) beat() {
	if err := w.client.Set(w.ctx, w.cfg.HeartbeatKey, time.Now().UTC().Format(time.RFC3339), w.cfg.HeartbeatTTL).Err(); err != nil {
		w.l.Warnf(w.ctx, "internal.worker.beat: heartbeat write failed: %v", err)
	}
}

func (w *Worker) reconnect() error {
	for i := 0; i < w.maxRetries; i++ {
		w.l.Infof(w.ctx, "internal.worker.reconnect: attempt %d/%d", i+1, w.maxRetries)

		if w.pubsub != nil {
			w.pubsub.Close()
		}
		w.pubsub = w.client.PSubscribe(w.ctx, w.cfg.ChannelPrefix+"*")

		if _, err := w.pubsub.Receive(w.ctx); err == nil {
			w.l.Info(w.ctx, "internal.worker.reconnect: resubscribed")
			return nil
		}

		time.Sleep(w.retryDelay)
	}
	return fmt.Errorf("failed to resubscribe after %d attempts", w.maxRetries)
}

// Stats returns delivery counters.
func (w *Worker) Stats() (rendered, dropped int64) {
	return w.rendered.Load(), w.dropped.Load()
}

// Shutdown stops the worker and waits for the listen loop to exit.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.cancel()
	if w.pubsub != nil {
		if err := w.pubsub.Close(); err != nil {
			w.l.Errorf(context.Background(), "internal.worker.Shutdown: closing pubsub: %v", err)
		}
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
