package usecase

import (
	"context"
	"net/url"

	"resto-notify/internal/livechannel"
)

func (m *implManager) Connect(ctx context.Context, userID, restaurantID string) error {
	if userID == "" || restaurantID == "" {
		// Normal during app boot before the session is resolved.
		m.l.Infof(ctx, "internal.livechannel.usecase.Connect: missing identifiers, skipping (user=%q restaurant=%q)", userID, restaurantID)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != livechannel.StateDisconnected {
		if m.userID == userID && m.restaurantID == restaurantID {
			return nil
		}
		m.l.Warnf(ctx, "internal.livechannel.usecase.Connect: connection exists for %s/%s, refusing %s/%s",
			m.userID, m.restaurantID, userID, restaurantID)
		return livechannel.ErrIdentityChanged
	}

	m.userID = userID
	m.restaurantID = restaurantID
	m.state = livechannel.StateConnecting

	runCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(runCtx, m.done, userID, restaurantID)

	return nil
}

func (m *implManager) OnEvent(handler livechannel.EventHandler) func() {
	m.handlerMu.Lock()
	m.handler = handler
	m.handlerMu.Unlock()

	return func() {
		m.handlerMu.Lock()
		m.handler = nil
		m.handlerMu.Unlock()
	}
}

func (m *implManager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	if m.state == livechannel.StateDisconnected {
		m.mu.Unlock()
		return nil
	}

	cancel := m.cancel
	conn := m.conn
	done := m.done
	m.cancel = nil
	m.conn = nil
	m.state = livechannel.StateDisconnected
	m.userID = ""
	m.restaurantID = ""
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.l.Info(ctx, "internal.livechannel.usecase.Disconnect: live channel released")
	return nil
}

func (m *implManager) State() livechannel.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// dialURL builds the connect URL with identity query parameters.
func (m *implManager) dialURL(userID, restaurantID string) (string, error) {
	u, err := url.Parse(m.cfg.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("userId", userID)
	q.Set("restaurantId", restaurantID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (m *implManager) emit(ctx context.Context, frame livechannel.Frame) {
	if frame.Type != livechannel.FrameTypeNotification {
		m.l.Debugf(ctx, "internal.livechannel.usecase.emit: ignoring frame type %q", frame.Type)
		return
	}

	m.handlerMu.RLock()
	handler := m.handler
	m.handlerMu.RUnlock()

	if handler == nil {
		m.l.Warn(ctx, "internal.livechannel.usecase.emit: no handler registered, dropping frame")
		return
	}
	handler(ctx, frame.Payload)
}
