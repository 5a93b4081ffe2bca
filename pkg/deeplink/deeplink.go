// Package deeplink builds in-app routes for notification click-through and
// the redirect wrapping used when the click originates outside an open tab.
package deeplink

import (
	"errors"
	"net/url"

	"resto-notify/internal/model"
)

var ErrUnknownType = errors.New("deeplink: unknown event type")

const (
	ordersPath       = "/orders"
	reservationsPath = "/reservations"
	redirectParam    = "redirect"
)

// Build returns the in-app route pointing at the entity behind a notification:
// /orders?orderId={id} or /reservations?reservationId={id}.
func Build(t model.EventType, entityID string) (string, error) {
	switch t {
	case model.EventTypeOrder:
		return ordersPath + "?orderId=" + url.QueryEscape(entityID), nil
	case model.EventTypeReservation:
		return reservationsPath + "?reservationId=" + url.QueryEscape(entityID), nil
	default:
		return "", ErrUnknownType
	}
}

// WrapRedirect encodes a deep link as /?redirect={link} so a freshly opened
// app instance can unwrap it on load. Used by contexts that cannot navigate
// an existing tab directly.
func WrapRedirect(link string) string {
	return "/?" + redirectParam + "=" + url.QueryEscape(link)
}

// UnwrapRedirect extracts the wrapped deep link from an app-load URL.
// The second return is false when no redirect parameter is present.
func UnwrapRedirect(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	link := u.Query().Get(redirectParam)
	if link == "" {
		return "", false
	}
	return link, true
}
