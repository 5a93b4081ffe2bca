package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"resto-notify/internal/dispatch"
	"resto-notify/internal/livechannel"
	"resto-notify/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// calls records the step order across all teardown fakes.
type calls struct {
	order []string
}

func (c *calls) record(step string) { c.order = append(c.order, step) }

type fakeLive struct {
	calls *calls
	err   error
}

func (f *fakeLive) Connect(ctx context.Context, userID, restaurantID string) error { return nil }
func (f *fakeLive) OnEvent(h livechannel.EventHandler) func()                      { return func() {} }
func (f *fakeLive) Disconnect(ctx context.Context) error {
	f.calls.record("live.disconnect")
	return f.err
}
func (f *fakeLive) State() livechannel.State { return livechannel.StateDisconnected }

type fakePush struct {
	calls *calls
	err   error
}

func (f *fakePush) RequestPermissionAndToken(ctx context.Context) (string, error) { return "", nil }
func (f *fakePush) Register(ctx context.Context, token string) error              { return nil }
func (f *fakePush) DeleteLocalToken(ctx context.Context) error {
	f.calls.record("push.delete")
	return f.err
}
func (f *fakePush) TokenState(ctx context.Context) model.DeviceTokenState { return model.TokenUnissued }
func (f *fakePush) Shutdown(ctx context.Context) error                    { return nil }

type fakeTeardownStore struct {
	calls        *calls
	persistedErr error
}

func (s *fakeTeardownStore) AddEvent(ctx context.Context, ev model.NotificationEvent) {}
func (s *fakeTeardownStore) Events(ctx context.Context) []model.NotificationEvent     { return nil }
func (s *fakeTeardownStore) MarkEventSeen(ctx context.Context, id string)             {}
func (s *fakeTeardownStore) Unread(ctx context.Context) int                           { return 0 }
func (s *fakeTeardownStore) SoundEnabled(ctx context.Context) bool                    { return true }
func (s *fakeTeardownStore) SetSoundEnabled(ctx context.Context, enabled bool) error  { return nil }
func (s *fakeTeardownStore) PermissionState(ctx context.Context) model.PermissionState {
	return model.PermissionUnset
}
func (s *fakeTeardownStore) SetPermissionState(ctx context.Context, st model.PermissionState) error {
	return nil
}
func (s *fakeTeardownStore) DeviceToken(ctx context.Context) string                 { return "" }
func (s *fakeTeardownStore) SetDeviceToken(ctx context.Context, token string) error { return nil }
func (s *fakeTeardownStore) LastRegisteredToken(ctx context.Context) string         { return "" }
func (s *fakeTeardownStore) SetLastRegisteredToken(ctx context.Context, token string) error {
	return nil
}
func (s *fakeTeardownStore) SetFocusSnapshot(focused bool) {}
func (s *fakeTeardownStore) FocusSnapshot() bool           { return false }
func (s *fakeTeardownStore) Clear(ctx context.Context) error {
	s.calls.record("store.clear")
	return nil
}
func (s *fakeTeardownStore) ClearPersisted(ctx context.Context) error {
	s.calls.record("store.persisted")
	return s.persistedErr
}
func (s *fakeTeardownStore) Close() error { return nil }

type fakeDispatcher struct {
	calls *calls
}

func (d *fakeDispatcher) Handle(ctx context.Context, raw json.RawMessage, source dispatch.Source) error {
	return nil
}
func (d *fakeDispatcher) MarkRead(ctx context.Context, id string) error        { return nil }
func (d *fakeDispatcher) Click(ctx context.Context, id string) (string, error) { return "", nil }
func (d *fakeDispatcher) WarmUpSound(ctx context.Context)                      {}
func (d *fakeDispatcher) ResetSession(ctx context.Context)                     { d.calls.record("dispatch.reset") }
func (d *fakeDispatcher) Stats(ctx context.Context) dispatch.Stats             { return dispatch.Stats{} }

type fakeCache struct {
	calls *calls
	err   error
}

func (f *fakeCache) InvalidateTag(ctx context.Context, tag string) error { return nil }
func (f *fakeCache) Clear(ctx context.Context) error {
	f.calls.record("cache.clear")
	return f.err
}

func TestTeardownRun(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*Teardown, *calls, *fakeLive, *fakePush, *fakeTeardownStore, *fakeCache) {
		c := &calls{}
		live := &fakeLive{calls: c}
		pushMgr := &fakePush{calls: c}
		st := &fakeTeardownStore{calls: c}
		cacheInv := &fakeCache{calls: c}
		td := NewTeardown(&mockLogger{}, live, pushMgr, st, &fakeDispatcher{calls: c}, cacheInv, nil)
		return td, c, live, pushMgr, st, cacheInv
	}

	t.Run("runs every step in order", func(t *testing.T) {
		td, c, _, _, _, _ := newFixture()

		if err := td.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"live.disconnect",
			"push.delete",
			"dispatch.reset",
			"store.clear",
			"store.persisted",
			"cache.clear",
		}
		if len(c.order) != len(want) {
			t.Fatalf("expected %d steps, got %v", len(want), c.order)
		}
		for i, step := range want {
			if c.order[i] != step {
				t.Errorf("step %d: expected %s, got %s", i, step, c.order[i])
			}
		}
	})

	t.Run("a failing step does not stop the rest", func(t *testing.T) {
		td, c, _, pushMgr, st, _ := newFixture()
		pushMgr.err = errors.New("revoke timeout")
		st.persistedErr = errors.New("disk full")

		err := td.Run(ctx)
		if err == nil {
			t.Fatal("expected combined error")
		}
		if c.order[len(c.order)-1] != "cache.clear" {
			t.Errorf("teardown must reach the last step, got %v", c.order)
		}
	})

	t.Run("single failure is reported", func(t *testing.T) {
		td, _, live, _, _, _ := newFixture()
		live.err = errors.New("socket stuck")

		if err := td.Run(ctx); err == nil {
			t.Fatal("expected error")
		}
	})
}
