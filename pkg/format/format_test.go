package format

import (
	"testing"
	"time"

	"resto-notify/internal/model"
)

func TestOrderLines(t *testing.T) {
	t.Run("renders inline up to three lines", func(t *testing.T) {
		got := OrderLines([]model.OrderLine{
			{Quantity: 2, ProductName: "Pizza"},
			{Quantity: 1, ProductName: "Cola"},
		})
		want := "2x Pizza, 1x Cola"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("truncates beyond three lines", func(t *testing.T) {
		got := OrderLines([]model.OrderLine{
			{Quantity: 1, ProductName: "A"},
			{Quantity: 2, ProductName: "B"},
			{Quantity: 3, ProductName: "C"},
			{Quantity: 4, ProductName: "D"},
		})
		want := "1x A, 2x B i još 2 stavki (ukupno 10)"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("skips unusable lines", func(t *testing.T) {
		got := OrderLines([]model.OrderLine{
			{Quantity: 0, ProductName: "Free"},
			{Quantity: 2, ProductName: "  "},
			{Quantity: 1, ProductName: "Burger"},
		})
		want := "1x Burger"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("returns empty when nothing usable", func(t *testing.T) {
		if got := OrderLines(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
		if got := OrderLines([]model.OrderLine{{Quantity: -1, ProductName: "X"}}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestReservation(t *testing.T) {
	people := 2
	at := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	t.Run("renders all parts in order", func(t *testing.T) {
		got := Reservation(model.ReservationInfo{
			People: &people,
			Time:   &at,
			Table:  "5",
			Code:   "R-001",
		})
		want := "2 osobe - 01.01.2024. 20:00 (Sto 5) [R-001]"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("omits missing parts", func(t *testing.T) {
		got := Reservation(model.ReservationInfo{People: &people})
		if got != "2 osobe" {
			t.Errorf("expected %q, got %q", "2 osobe", got)
		}

		got = Reservation(model.ReservationInfo{Table: "12"})
		if got != "(Sto 12)" {
			t.Errorf("expected %q, got %q", "(Sto 12)", got)
		}
	})

	t.Run("uses code alias when code is absent", func(t *testing.T) {
		got := Reservation(model.ReservationInfo{CodeAlias: "R-777"})
		if got != "[R-777]" {
			t.Errorf("expected %q, got %q", "[R-777]", got)
		}
	})

	t.Run("returns empty when nothing set", func(t *testing.T) {
		if got := Reservation(model.ReservationInfo{}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestPersonNoun(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "osoba"},
		{2, "osobe"},
		{4, "osobe"},
		{5, "osoba"},
		{11, "osoba"},
		{12, "osoba"},
		{14, "osoba"},
		{21, "osoba"},
		{22, "osobe"},
		{111, "osoba"},
	}
	for _, tc := range tests {
		if got := personNoun(tc.n); got != tc.want {
			t.Errorf("personNoun(%d): expected %q, got %q", tc.n, tc.want, got)
		}
	}
}

func TestBody(t *testing.T) {
	t.Run("formats structured order body", func(t *testing.T) {
		raw := `[{"quantity":2,"productName":"Pizza"},{"quantity":1,"productName":"Cola"}]`
		got := Body(model.EventTypeOrder, raw)
		if got != "2x Pizza, 1x Cola" {
			t.Errorf("unexpected body: %q", got)
		}
	})

	t.Run("formats structured reservation body", func(t *testing.T) {
		raw := `{"people":3,"table":"7"}`
		got := Body(model.EventTypeReservation, raw)
		if got != "3 osobe (Sto 7)" {
			t.Errorf("unexpected body: %q", got)
		}
	})

	t.Run("falls back to raw text on parse failure", func(t *testing.T) {
		got := Body(model.EventTypeOrder, "not json at all")
		if got != "not json at all" {
			t.Errorf("expected raw passthrough, got %q", got)
		}
	})

	t.Run("uses placeholder for empty body", func(t *testing.T) {
		if got := Body(model.EventTypeOrder, ""); got != PlaceholderOrder {
			t.Errorf("expected %q, got %q", PlaceholderOrder, got)
		}
		if got := Body(model.EventTypeReservation, "  "); got != PlaceholderReservation {
			t.Errorf("expected %q, got %q", PlaceholderReservation, got)
		}
		if got := Body(model.EventType("unknown"), ""); got != PlaceholderGeneric {
			t.Errorf("expected %q, got %q", PlaceholderGeneric, got)
		}
	})
}
