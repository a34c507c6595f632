package seo

import (
	"encoding/json"
	"time"

	"github.com/silversons/circus-site/internal/domain"
)

// Schema.org shapes for the Event markup embedded in town pages.
// https://schema.org/Event

type ldAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type ldPlace struct {
	Type    string    `json:"@type"`
	Name    string    `json:"name"`
	Address ldAddress `json:"address"`
}

type ldOffer struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type ldEvent struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	StartDate   string   `json:"startDate"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Location    ldPlace  `json:"location"`
	Offers      *ldOffer `json:"offers,omitempty"`
}

// TownEventsJSONLD renders schema.org Event markup for a town page: one Event
// per performance across all of the town's productions. The result is the
// JSON array for a <script type="application/ld+json"> block.
func TownEventsJSONLD(town domain.TownRecord) ([]byte, error) {
	var events []ldEvent
	for _, rec := range town.Events {
		place := ldPlace{
			Type: "Place",
			Name: rec.Venue.Name,
			Address: ldAddress{
				Type:            "PostalAddress",
				StreetAddress:   rec.Venue.Address,
				AddressLocality: town.Town,
				AddressRegion:   rec.Venue.County,
				PostalCode:      rec.Venue.Postcode,
				AddressCountry:  rec.Venue.Country,
			},
		}
		for _, d := range rec.Dates {
			ev := ldEvent{
				Context:     "https://schema.org",
				Type:        "Event",
				Name:        rec.Name,
				StartDate:   d.Start.Format(time.RFC3339),
				Description: rec.Description,
				Image:       rec.ThumbnailURL,
				Location:    place,
			}
			if d.BookingLink != "" {
				ev.Offers = &ldOffer{Type: "Offer", URL: d.BookingLink}
			}
			events = append(events, ev)
		}
	}
	return json.Marshal(events)
}
