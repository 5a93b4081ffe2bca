package delivery

import (
	"context"
	"fmt"
	"testing"

	"resto-notify/internal/dispatch"
)

func TestToastFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("drain returns pending toasts once", func(t *testing.T) {
		feed := NewToastFeed(8)

		_ = feed.Show(ctx, dispatch.Notification{ID: "n1"})
		_ = feed.Show(ctx, dispatch.Notification{ID: "n2"})

		if feed.Pending() != 2 {
			t.Errorf("expected 2 pending, got %d", feed.Pending())
		}

		items := feed.Drain()
		if len(items) != 2 || items[0].ID != "n1" || items[1].ID != "n2" {
			t.Errorf("unexpected drain result: %+v", items)
		}

		if feed.Pending() != 0 {
			t.Errorf("expected empty feed after drain, got %d", feed.Pending())
		}
		if len(feed.Drain()) != 0 {
			t.Error("second drain must be empty")
		}
	})

	t.Run("drops oldest beyond capacity", func(t *testing.T) {
		feed := NewToastFeed(3)
		for i := 0; i < 5; i++ {
			_ = feed.Show(ctx, dispatch.Notification{ID: fmt.Sprintf("n%d", i)})
		}

		items := feed.Drain()
		if len(items) != 3 {
			t.Fatalf("expected 3 toasts, got %d", len(items))
		}
		if items[0].ID != "n2" || items[2].ID != "n4" {
			t.Errorf("expected newest toasts kept, got %+v", items)
		}
	})
}
