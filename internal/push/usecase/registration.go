package usecase

import (
	"context"

	"github.com/google/uuid"

	"resto-notify/internal/model"
	"resto-notify/internal/push"
)

func (m *implManager) RequestPermissionAndToken(ctx context.Context) (string, error) {
	if m.client == nil {
		// No push transport on this platform. Same treatment as denied.
		m.l.Info(ctx, "internal.push.usecase.RequestPermissionAndToken: push unsupported, live channel only")
		return "", nil
	}

	state := m.store.PermissionState(ctx)
	if state == model.PermissionUnset {
		state = model.PermissionDenied
		if m.cfg.PermissionPrompt {
			state = model.PermissionGranted
		}
		if err := m.store.SetPermissionState(ctx, state); err != nil {
			m.l.Warnf(ctx, "internal.push.usecase.RequestPermissionAndToken: persisting permission: %v", err)
		}
	}
	if state == model.PermissionDenied {
		return "", nil
	}

	m.checkWorker(ctx)

	token := m.store.DeviceToken(ctx)
	if token == "" {
		token = uuid.NewString()
		if err := m.store.SetDeviceToken(ctx, token); err != nil {
			m.l.Errorf(ctx, "internal.push.usecase.RequestPermissionAndToken: persisting token: %v", err)
			return "", err
		}
		m.l.Infof(ctx, "internal.push.usecase.RequestPermissionAndToken: issued device token %s", token)
	}

	m.startForeground(token)

	return token, nil
}

func (m *implManager) Register(ctx context.Context, token string) error {
	if token == "" {
		return push.ErrTokenRequired
	}

	m.mu.Lock()
	if m.registering {
		m.mu.Unlock()
		m.l.Debug(ctx, "internal.push.usecase.Register: registration already in flight")
		return push.ErrRegistrationInFlight
	}
	if m.store.LastRegisteredToken(ctx) == token {
		m.mu.Unlock()
		m.l.Debugf(ctx, "internal.push.usecase.Register: token already registered, skipping")
		return nil
	}
	m.registering = true
	m.mu.Unlock()

	// Release the guard regardless of outcome so the next mount can retry.
	defer func() {
		m.mu.Lock()
		m.registering = false
		m.mu.Unlock()
	}()

	if err := m.api.RegisterToken(ctx, token); err != nil {
		m.l.Warnf(ctx, "internal.push.usecase.Register: backend registration failed: %v", err)
		return err
	}

	if err := m.store.SetLastRegisteredToken(ctx, token); err != nil {
		m.l.Warnf(ctx, "internal.push.usecase.Register: persisting registered token: %v", err)
	}

	m.l.Info(ctx, "internal.push.usecase.Register: device token registered")
	return nil
}

func (m *implManager) DeleteLocalToken(ctx context.Context) error {
	m.stopForeground(ctx)

	token := m.store.DeviceToken(ctx)
	if token != "" {
		if err := m.api.RevokeToken(ctx, token); err != nil {
			// Best effort; local state is cleared regardless so the token
			// cannot be silently reused.
			m.l.Warnf(ctx, "internal.push.usecase.DeleteLocalToken: backend revoke failed: %v", err)
		}
	}

	if err := m.store.SetDeviceToken(ctx, ""); err != nil {
		return err
	}
	if err := m.store.SetLastRegisteredToken(ctx, ""); err != nil {
		return err
	}

	m.l.Info(ctx, "internal.push.usecase.DeleteLocalToken: device token revoked")
	return nil
}

func (m *implManager) TokenState(ctx context.Context) model.DeviceTokenState {
	token := m.store.DeviceToken(ctx)
	if token == "" {
		return model.TokenUnissued
	}
	if m.store.LastRegisteredToken(ctx) == token {
		return model.TokenRegistered
	}
	return model.TokenIssued
}

func (m *implManager) Shutdown(ctx context.Context) error {
	m.stopForeground(ctx)
	return nil
}

// checkWorker verifies the background worker heartbeat. Absence is logged,
// not fatal: foreground delivery still works without the worker.
func (m *implManager) checkWorker(ctx context.Context) {
	exists, err := m.client.Exists(ctx, m.cfg.HeartbeatKey).Result()
	if err != nil {
		m.l.Warnf(ctx, "internal.push.usecase.checkWorker: heartbeat check failed: %v", err)
		return
	}
	if exists == 0 {
		m.l.Warn(ctx, "internal.push.usecase.checkWorker: background worker heartbeat missing")
	}
}
