// Package domain contains the core data types for the circus tour website.
// This package has zero external dependencies and is imported by every other
// internal package (ticketing, classifier, service, handler).
package domain

import "time"

// EventDate is one bookable performance instance of a production.
// Instances are produced by flattening the upstream ticketing API's "dates"
// records; they are immutable once built.
type EventDate struct {
	Start       time.Time `json:"start"`
	BookingLink string    `json:"bookingLink"`
}

// VenueInfo describes the primary venue of a production.
type VenueInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	County   string `json:"county,omitempty"`
	Country  string `json:"country,omitempty"`
}

// EventRecord is one ticketed production with all its performance dates.
// Town is the resolved venue locality; "Unknown Town" when the upstream
// venue record carries no locality.
//
// A record whose every date is in the past contributes nothing to a town's
// date range and is effectively invisible downstream.
type EventRecord struct {
	Name         string      `json:"eventName"`
	Description  string      `json:"description,omitempty"`
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	Town         string      `json:"town"`
	Dates        []EventDate `json:"dates"`
	Venue        VenueInfo   `json:"venueInfo"`
}
