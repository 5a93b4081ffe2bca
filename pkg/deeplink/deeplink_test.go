package deeplink

import (
	"errors"
	"testing"

	"resto-notify/internal/model"
)

func TestBuild(t *testing.T) {
	t.Run("order link", func(t *testing.T) {
		got, err := Build(model.EventTypeOrder, "ord-42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/orders?orderId=ord-42" {
			t.Errorf("unexpected link: %q", got)
		}
	})

	t.Run("reservation link", func(t *testing.T) {
		got, err := Build(model.EventTypeReservation, "res-7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/reservations?reservationId=res-7" {
			t.Errorf("unexpected link: %q", got)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Build(model.EventType("chat"), "x")
		if !errors.Is(err, ErrUnknownType) {
			t.Errorf("expected ErrUnknownType, got %v", err)
		}
	})

	t.Run("escapes entity id", func(t *testing.T) {
		got, err := Build(model.EventTypeOrder, "a b&c")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/orders?orderId=a+b%26c" {
			t.Errorf("unexpected link: %q", got)
		}
	})
}

func TestRedirectRoundTrip(t *testing.T) {
	link, err := Build(model.EventTypeReservation, "res-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wrapped := WrapRedirect(link)
	got, ok := UnwrapRedirect(wrapped)
	if !ok {
		t.Fatal("expected redirect parameter to be present")
	}
	if got != link {
		t.Errorf("expected %q, got %q", link, got)
	}
}

func TestUnwrapRedirect(t *testing.T) {
	if _, ok := UnwrapRedirect("/"); ok {
		t.Error("expected no redirect on bare root")
	}
	if _, ok := UnwrapRedirect("/?other=1"); ok {
		t.Error("expected no redirect when parameter is absent")
	}
}
