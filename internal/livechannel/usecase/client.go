package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"resto-notify/internal/livechannel"
)

// run owns the connection for one Connect intent. It redials with bounded
// backoff while the intent holds; an explicit Disconnect cancels ctx and
// ends the loop without further redialing.
func (m *implManager) run(ctx context.Context, done chan struct{}, userID, restaurantID string) {
	defer close(done)

	delay := m.cfg.RedialBaseDelay

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		target, err := m.dialURL(userID, restaurantID)
		if err != nil {
			m.l.Errorf(ctx, "internal.livechannel.usecase.run: bad live channel URL: %v", err)
			return
		}

		dialer := websocket.Dialer{HandshakeTimeout: m.cfg.HandshakeWait}
		conn, resp, err := dialer.DialContext(ctx, target, nil)
		if resp != nil {
			resp.Body.Close()
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.l.Warnf(ctx, "internal.livechannel.usecase.run: dial failed, retrying in %s: %v", delay, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > m.cfg.RedialMaxDelay {
				delay = m.cfg.RedialMaxDelay
			}
			continue
		}

		m.mu.Lock()
		if m.state == livechannel.StateDisconnected {
			// Disconnect raced the dial.
			m.mu.Unlock()
			conn.Close()
			return
		}
		m.conn = conn
		m.state = livechannel.StateConnected
		m.mu.Unlock()

		m.l.Infof(ctx, "internal.livechannel.usecase.run: connected for user %s, restaurant %s", userID, restaurantID)
		delay = m.cfg.RedialBaseDelay

		m.serve(ctx, conn)

		m.mu.Lock()
		if m.state == livechannel.StateDisconnected {
			m.mu.Unlock()
			return
		}
		m.conn = nil
		m.state = livechannel.StateConnecting
		m.mu.Unlock()

		m.l.Warn(ctx, "internal.livechannel.usecase.run: connection dropped, redialing")
	}
}

// serve runs the read loop and the ping ticker for one established
// connection. It returns when the connection dies or ctx is cancelled.
func (m *implManager) serve(ctx context.Context, conn *websocket.Conn) {
	closed := make(chan struct{})
	defer close(closed)

	go m.pingLoop(ctx, conn, closed)

	conn.SetReadLimit(m.cfg.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(m.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(m.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.l.Errorf(ctx, "internal.livechannel.usecase.serve: read error: %v", err)
			}
			conn.Close()
			return
		}

		var frame livechannel.Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			m.l.Warnf(ctx, "internal.livechannel.usecase.serve: malformed frame dropped: %v", err)
			continue
		}

		m.emit(ctx, frame)
	}
}

// pingLoop keeps the connection alive with periodic pings. It stops when the
// read loop exits or ctx is cancelled.
func (m *implManager) pingLoop(ctx context.Context, conn *websocket.Conn, closed <-chan struct{}) {
	ticker := time.NewTicker(m.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close()
			return
		case <-closed:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(m.cfg.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
