package usecase

import (
	"context"
	"encoding/json"

	"resto-notify/internal/dispatch"
)

// startForeground subscribes to this device's push channel while the app is
// active, so pushes arriving in the foreground funnel into the same
// dispatcher as live-channel events instead of a second rendering path.
func (m *implManager) startForeground(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.subCancel = cancel
	m.subDone = make(chan struct{})

	channel := m.cfg.ChannelPrefix + token
	go m.listen(ctx, channel, m.subDone)
}

func (m *implManager) listen(ctx context.Context, channel string, done chan struct{}) {
	defer close(done)

	pubsub := m.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	m.l.Infof(ctx, "internal.push.usecase.listen: foreground subscription on %s", channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				m.l.Warn(ctx, "internal.push.usecase.listen: subscription channel closed")
				return
			}
			if err := m.dispatcher.Handle(ctx, json.RawMessage(msg.Payload), dispatch.SourcePush); err != nil {
				m.l.Errorf(ctx, "internal.push.usecase.listen: dispatch failed: %v", err)
			}
		}
	}
}

func (m *implManager) stopForeground(ctx context.Context) {
	m.mu.Lock()
	cancel := m.subCancel
	done := m.subDone
	m.subCancel = nil
	m.subDone = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		m.l.Warn(ctx, "internal.push.usecase.stopForeground: timed out waiting for subscriber")
	}
}
