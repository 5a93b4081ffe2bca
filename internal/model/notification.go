package model

import "time"

// EventType is the variant tag of a notification event.
type EventType string

const (
	EventTypeOrder       EventType = "order"
	EventTypeReservation EventType = "reservation"
)

// Valid reports whether the event type is one of the known variants.
func (t EventType) Valid() bool {
	return t == EventTypeOrder || t == EventTypeReservation
}

// NotificationEvent is the canonical unit flowing through the dispatcher.
// ID is globally unique across both transports: the same logical event
// arriving over the live channel and over push carries the same ID.
type NotificationEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	EntityID     string    `json:"entityId"`
	RestaurantID string    `json:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt"`
	IsSeen       bool      `json:"isSeen"`
}

// OrderLine is one entry of an order-type notification body.
type OrderLine struct {
	Quantity    int    `json:"quantity"`
	ProductName string `json:"productName"`
}

// ReservationInfo is the structured body of a reservation-type notification.
// All fields are optional; the backend fills in what it knows. Some producers
// send the code under "reservation" instead of "reservationCode".
type ReservationInfo struct {
	People    *int       `json:"people"`
	Code      string     `json:"reservationCode"`
	CodeAlias string     `json:"reservation"`
	Table     string     `json:"table"`
	Time      *time.Time `json:"time"`
}

// ReservationCode returns the reservation code regardless of which key the
// producer used.
func (r ReservationInfo) ReservationCode() string {
	if r.Code != "" {
		return r.Code
	}
	return r.CodeAlias
}

// PushData is the payload the backend publishes on a device push channel.
// Body is a JSON-encoded order array or reservation object, or a plain string.
type PushData struct {
	Type         EventType `json:"type"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	EntityID     string    `json:"entityId"`
	RestaurantID string    `json:"restaurantId"`
}

// PushPayload is the envelope of a background push message.
type PushPayload struct {
	Data PushData `json:"data"`
}

// Event converts push data into a canonical notification event. Push messages
// carry no separate id; EntityID doubles as the dedup key, matching what the
// backend puts into the live-channel event id.
func (p PushData) Event() NotificationEvent {
	return NotificationEvent{
		ID:           p.EntityID,
		Type:         p.Type,
		Title:        p.Title,
		Body:         p.Body,
		EntityID:     p.EntityID,
		RestaurantID: p.RestaurantID,
		CreatedAt:    time.Now(),
	}
}
