package focus

import (
	"context"
	"testing"
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

func TestTracker(t *testing.T) {
	ctx := context.Background()

	t.Run("starts unfocused", func(t *testing.T) {
		tracker := NewTracker(&mockLogger{})
		if tracker.Focused() {
			t.Error("expected unfocused start")
		}
	})

	t.Run("records transitions", func(t *testing.T) {
		tracker := NewTracker(&mockLogger{})
		tracker.SetFocused(ctx, true)
		if !tracker.Focused() {
			t.Error("expected focused")
		}
		tracker.SetFocused(ctx, false)
		if tracker.Focused() {
			t.Error("expected unfocused")
		}
	})

	t.Run("notifies subscribers on change only", func(t *testing.T) {
		tracker := NewTracker(&mockLogger{})
		var got []bool
		unsubscribe := tracker.Subscribe(func(focused bool) {
			got = append(got, focused)
		})

		tracker.SetFocused(ctx, true)
		tracker.SetFocused(ctx, true) // no change, no callback
		tracker.SetFocused(ctx, false)

		if len(got) != 2 || got[0] != true || got[1] != false {
			t.Errorf("unexpected callbacks: %v", got)
		}

		unsubscribe()
		tracker.SetFocused(ctx, true)
		if len(got) != 2 {
			t.Errorf("unsubscribed callback must not fire, got %v", got)
		}
	})
}
