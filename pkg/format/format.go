// Package format renders notification bodies for display. The foreground
// dispatcher and the background worker both use it, so truncation wording
// stays identical on every surface.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"resto-notify/internal/model"
)

// Body renders a raw notification body for the given event type. Structured
// payloads are parsed and formatted; on parse failure the raw string is shown
// verbatim; an empty body yields a generic placeholder. It never fails.
func Body(t model.EventType, raw string) string {
	body := strings.TrimSpace(raw)

	switch t {
	case model.EventTypeOrder:
		var lines []model.OrderLine
		if err := json.Unmarshal([]byte(body), &lines); err == nil {
			if s := OrderLines(lines); s != "" {
				return s
			}
		}
	case model.EventTypeReservation:
		var info model.ReservationInfo
		if err := json.Unmarshal([]byte(body), &info); err == nil {
			if s := Reservation(info); s != "" {
				return s
			}
		}
	}

	if body != "" {
		return body
	}
	return Placeholder(t)
}

// Placeholder returns the generic body for an event type.
func Placeholder(t model.EventType) string {
	switch t {
	case model.EventTypeOrder:
		return PlaceholderOrder
	case model.EventTypeReservation:
		return PlaceholderReservation
	default:
		return PlaceholderGeneric
	}
}

// OrderLines renders order lines as "2x Pizza, 1x Cola". Beyond three lines
// the first two are kept and the rest summarized:
// "1x A, 2x B i još 2 stavki (ukupno 10)". Returns "" when no line is usable.
func OrderLines(lines []model.OrderLine) string {
	valid := lines[:0:0]
	total := 0
	for _, l := range lines {
		if l.Quantity <= 0 || strings.TrimSpace(l.ProductName) == "" {
			continue
		}
		valid = append(valid, l)
		total += l.Quantity
	}
	if len(valid) == 0 {
		return ""
	}

	if len(valid) <= maxInlineLines {
		parts := make([]string, 0, len(valid))
		for _, l := range valid {
			parts = append(parts, fmt.Sprintf("%dx %s", l.Quantity, l.ProductName))
		}
		return strings.Join(parts, ", ")
	}

	return fmt.Sprintf("%dx %s, %dx %s i još %d stavki (ukupno %d)",
		valid[0].Quantity, valid[0].ProductName,
		valid[1].Quantity, valid[1].ProductName,
		len(valid)-2, total,
	)
}

// Reservation renders a reservation body as
// "2 osobe - 01.01.2024. 20:00 (Sto 5) [R-001]", omitting missing parts.
// Returns "" when nothing is set.
func Reservation(info model.ReservationInfo) string {
	var b strings.Builder

	if info.People != nil {
		fmt.Fprintf(&b, "%d %s", *info.People, personNoun(*info.People))
	}
	if info.Time != nil {
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(info.Time.Format(TimeLayout))
	}
	if table := strings.TrimSpace(info.Table); table != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "(Sto %s)", table)
	}
	if code := strings.TrimSpace(info.ReservationCode()); code != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "[%s]", code)
	}

	return b.String()
}

// personNoun declines "osoba" for the given count.
func personNoun(n int) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return "osoba"
	case n%10 == 1:
		return "osoba"
	case n%10 >= 2 && n%10 <= 4:
		return "osobe"
	default:
		return "osoba"
	}
}
