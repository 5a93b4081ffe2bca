package format

const (
	// PlaceholderOrder is shown when an order body carries nothing usable.
	PlaceholderOrder = "Novi order"
	// PlaceholderReservation is shown when a reservation body carries nothing usable.
	PlaceholderReservation = "Nova rezervacija"
	// PlaceholderGeneric is shown for unknown event types.
	PlaceholderGeneric = "Novo obaveštenje"

	// TimeLayout is the display layout for reservation times.
	TimeLayout = "02.01.2006. 15:04"

	// maxInlineLines is the number of order lines rendered before truncation.
	maxInlineLines = 3
)
