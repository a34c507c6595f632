package ticketing

// Wire types for the upstream ticketing API. All endpoints wrap their payload
// in a {"data": ...} envelope. Only the fields the site consumes are decoded.

type eventsEnvelope struct {
	Data []apiEvent `json:"data"`
}

type datesEnvelope struct {
	Data []apiDate `json:"data"`
}

type venueEnvelope struct {
	Data apiVenue `json:"data"`
}

type apiEvent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	VenueID      string `json:"venue_id"`
}

type apiDate struct {
	ID         string `json:"id"`
	Start      string `json:"start"` // RFC 3339; malformed values are dropped
	BookingURL string `json:"booking_url"`
}

type apiVenue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}
