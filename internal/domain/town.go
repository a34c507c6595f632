package domain

import "time"

// Status is the lifecycle tag describing a town's temporal relationship to
// "today". PAST is deliberately absent: towns with no remaining future dates
// are excluded from classifier output rather than emitted.
type Status string

const (
	StatusFinalDay   Status = "FINAL_DAY"
	StatusInTownNow  Status = "IN_TOWN_NOW"
	StatusNextStop   Status = "NEXT_STOP"
	StatusComingSoon Status = "COMING_SOON"
	StatusLater      Status = "LATER"
)

// Rank returns the display tier for sorting: FINAL_DAY before IN_TOWN_NOW,
// then NEXT_STOP and COMING_SOON sharing a tier, then LATER. Within a tier
// towns sort by ascending start date.
func (s Status) Rank() int {
	switch s {
	case StatusFinalDay:
		return 0
	case StatusInTownNow:
		return 1
	case StatusNextStop, StatusComingSoon:
		return 2
	default:
		return 3
	}
}

// TownRecord is the classifier's output unit, consumed by page renderers and
// serialized verbatim on the towns API. Callers treat it as read-only.
//
// Invariants: StartDate <= EndDate; both are the min/max future performance
// instants across the town's events; every emitted record has at least one
// future date.
type TownRecord struct {
	Town      string        `json:"town"`
	TownSlug  string        `json:"townSlug"`
	StartDate time.Time     `json:"startDateISO"`
	EndDate   time.Time     `json:"endDateISO"`
	Status    Status        `json:"status"`
	Events    []EventRecord `json:"events"`
}
