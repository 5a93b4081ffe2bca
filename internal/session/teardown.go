package session

import (
	"context"
	"errors"
	"fmt"

	"resto-notify/internal/cache"
	"resto-notify/internal/dispatch"
	"resto-notify/internal/livechannel"
	"resto-notify/internal/push"
	"resto-notify/internal/store"
	"resto-notify/pkg/alerting"
	"resto-notify/pkg/log"
)

// Teardown runs the logout sequence. The order is fixed: revoking the device
// token before clearing caches prevents a cleared cache from being
// repopulated by an in-flight registration retry with a stale token. A
// failed step is logged and the remaining steps still run; stale local
// state is worse than a partial best-effort teardown.
type Teardown struct {
	l           log.Logger
	live        livechannel.Manager
	push        push.Manager
	store       store.Store
	dispatcher  dispatch.UseCase
	invalidator cache.Invalidator
	alerter     *alerting.Alerter
}

// NewTeardown creates the orchestrator.
func NewTeardown(
	l log.Logger,
	live livechannel.Manager,
	pushManager push.Manager,
	st store.Store,
	dispatcher dispatch.UseCase,
	invalidator cache.Invalidator,
	alerter *alerting.Alerter,
) *Teardown {
	return &Teardown{
		l:           l,
		live:        live,
		push:        pushManager,
		store:       st,
		dispatcher:  dispatcher,
		invalidator: invalidator,
		alerter:     alerter,
	}
}

// Run executes the teardown steps in order and returns the combined
// failures, if any. A subsequent login on this device starts from a clean
// slate regardless.
func (t *Teardown) Run(ctx context.Context) error {
	var failures []error

	// 1. Close the live channel so no event can arrive mid-teardown.
	if err := t.live.Disconnect(ctx); err != nil {
		t.l.Errorf(ctx, "internal.session.Teardown: live disconnect: %v", err)
		failures = append(failures, fmt.Errorf("live disconnect: %w", err))
	}

	// 2. Revoke the device token. Awaited: a revoked-but-cached token must
	// not survive into the next login.
	if err := t.push.DeleteLocalToken(ctx); err != nil {
		t.l.Errorf(ctx, "internal.session.Teardown: token revoke: %v", err)
		failures = append(failures, fmt.Errorf("token revoke: %w", err))
	}

	// 3. Clear unread counters, the transient list and the dedup memory.
	t.dispatcher.ResetSession(ctx)
	if err := t.store.Clear(ctx); err != nil {
		t.l.Errorf(ctx, "internal.session.Teardown: store clear: %v", err)
		failures = append(failures, fmt.Errorf("store clear: %w", err))
	}

	// 4. Clear persisted notification-scoped keys.
	if err := t.store.ClearPersisted(ctx); err != nil {
		t.l.Errorf(ctx, "internal.session.Teardown: persisted clear: %v", err)
		failures = append(failures, fmt.Errorf("persisted clear: %w", err))
	}

	// 5. Clear transport-scoped cached responses.
	if err := t.invalidator.Clear(ctx); err != nil {
		t.l.Errorf(ctx, "internal.session.Teardown: cache clear: %v", err)
		failures = append(failures, fmt.Errorf("cache clear: %w", err))
	}

	if len(failures) > 0 {
		err := errors.Join(failures...)
		if alertErr := t.alerter.Alert(ctx, "Teardown incomplete", err.Error()); alertErr != nil {
			t.l.Warnf(ctx, "internal.session.Teardown: alert failed: %v", alertErr)
		}
		return err
	}

	t.l.Info(ctx, "internal.session.Teardown: completed cleanly")
	return nil
}
