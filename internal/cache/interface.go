package cache

import "context"

// Domain tags for cached panel responses.
const (
	TagOrders        = "orders"
	TagReservations  = "reservations"
	TagNotifications = "notifications"
)

// Invalidator drops cached panel responses so the next read refetches.
// Invalidation is idempotent; repeating it for a deduplicated event is
// harmless.
type Invalidator interface {
	// InvalidateTag drops every cache entry under the given domain tag.
	InvalidateTag(ctx context.Context, tag string) error
	// Clear drops all notification- and user-scoped cache entries.
	// Teardown calls this after token revocation.
	Clear(ctx context.Context) error
}
