// Package classifier turns a grouping of ticketed events by town into an
// ordered list of town records, each tagged with a lifecycle status relative
// to the current day (in town now, final day, next stop, coming soon, later).
//
// The classifier is pure and stateless between calls: it performs no I/O and
// is safe to invoke concurrently. Time enters only through the injected clock.
package classifier

import (
	"sort"
	"strconv"
	"time"

	"github.com/silversons/circus-site/internal/clock"
	"github.com/silversons/circus-site/internal/domain"
)

// DefaultComingSoonWindowDays is the number of days ahead within which an
// upcoming town is flagged COMING_SOON rather than LATER.
const DefaultComingSoonWindowDays = 28

// Classifier groups events by town and assigns each town a status.
type Classifier struct {
	clock      clock.Clock
	windowDays int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithComingSoonWindow overrides the coming-soon window. The boundary is
// inclusive: a town starting exactly windowDays from today is COMING_SOON.
// Negative values are ignored.
func WithComingSoonWindow(days int) Option {
	return func(c *Classifier) {
		if days >= 0 {
			c.windowDays = days
		}
	}
}

// New constructs a Classifier that evaluates "today" via clk.
func New(clk clock.Clock, opts ...Option) *Classifier {
	c := &Classifier{
		clock:      clk,
		windowDays: DefaultComingSoonWindowDays,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify transforms a town-name → events mapping into an ordered list of
// TownRecords. Towns with no performance date on or after the start of the
// current day are omitted entirely; they are never emitted with a past-like
// status.
//
// Output order: FINAL_DAY, then IN_TOWN_NOW, then NEXT_STOP/COMING_SOON, then
// LATER; ascending start date within a tier.
//
// Go maps are unordered, so towns are processed in ascending town-name order.
// When two towns tie on earliest start date for the NEXT_STOP promotion, the
// alphabetically first wins; callers must not rely on a specific tie winner.
func (c *Classifier) Classify(grouped map[string][]domain.EventRecord) []domain.TownRecord {
	now := c.clock.Now()
	today := startOfDay(now, now.Location())
	windowEnd := today.AddDate(0, 0, c.windowDays)

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	towns := make([]domain.TownRecord, 0, len(names))
	for _, name := range names {
		records := grouped[name]
		start, end, ok := futureRange(records, today)
		if !ok {
			continue
		}
		status := baseStatus(start, end, today, windowEnd)
		if status == "" {
			// Past towns cannot survive the future-date filter above, but the
			// classification is kept total so a caller bypassing the filter
			// still gets a well-defined exclusion.
			continue
		}
		towns = append(towns, domain.TownRecord{
			Town:      name,
			StartDate: start,
			EndDate:   end,
			Status:    status,
			Events:    records,
		})
	}

	promoteNextStop(towns, today)
	assignSlugs(towns)

	sort.SliceStable(towns, func(i, j int) bool {
		ri, rj := towns[i].Status.Rank(), towns[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return towns[i].StartDate.Before(towns[j].StartDate)
	})
	return towns
}

// futureRange flattens all performance instants across records, drops any
// strictly before today, and returns the min/max of what remains.
// ok is false when no future instant exists. Records with missing dates
// contribute nothing rather than failing the whole pass.
func futureRange(records []domain.EventRecord, today time.Time) (start, end time.Time, ok bool) {
	for _, rec := range records {
		for _, d := range rec.Dates {
			if d.Start.Before(today) {
				continue
			}
			if !ok || d.Start.Before(start) {
				start = d.Start
			}
			if !ok || d.Start.After(end) {
				end = d.Start
			}
			ok = true
		}
	}
	return start, end, ok
}

// baseStatus classifies a town from its future date range, before the
// NEXT_STOP promotion pass. Returns "" for a town entirely in the past.
//
// Day comparisons use the calendar day in today's location, so a run ending
// at 22:00 tonight is still FINAL_DAY all day.
func baseStatus(start, end, today, windowEnd time.Time) domain.Status {
	loc := today.Location()
	startDay := startOfDay(start, loc)
	endDay := startOfDay(end, loc)

	switch {
	case today.After(endDay):
		return ""
	case today.Equal(endDay):
		return domain.StatusFinalDay
	case !startDay.After(today):
		// Run has begun and today is not the last day.
		return domain.StatusInTownNow
	case !startDay.After(windowEnd):
		return domain.StatusComingSoon
	default:
		return domain.StatusLater
	}
}

// promoteNextStop applies the second pass of the classification: exactly one
// future town may be flagged NEXT_STOP, overriding COMING_SOON or LATER.
//
// When at least one town is currently in town (IN_TOWN_NOW or FINAL_DAY), the
// next stop is the earliest-starting town whose start is strictly after the
// latest end among the in-town towns. Otherwise it is the earliest-starting
// town strictly after today.
func promoteNextStop(towns []domain.TownRecord, today time.Time) {
	var latestEnd time.Time
	inTown := false
	for _, t := range towns {
		if t.Status == domain.StatusInTownNow || t.Status == domain.StatusFinalDay {
			inTown = true
			if t.EndDate.After(latestEnd) {
				latestEnd = t.EndDate
			}
		}
	}

	best := -1
	for i, t := range towns {
		if t.Status == domain.StatusInTownNow || t.Status == domain.StatusFinalDay {
			continue
		}
		if inTown {
			if !t.StartDate.After(latestEnd) {
				continue
			}
		} else if !t.StartDate.After(today) {
			continue
		}
		if best == -1 || t.StartDate.Before(towns[best].StartDate) {
			best = i
		}
	}
	if best >= 0 {
		towns[best].Status = domain.StatusNextStop
	}
}

// assignSlugs fills TownSlug for every record, disambiguating collisions with
// a sequence suffix ("newport", "newport-2", ...) in processing order.
func assignSlugs(towns []domain.TownRecord) {
	seen := make(map[string]int, len(towns))
	for i := range towns {
		slug := Slugify(towns[i].Town)
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug = slug + "-" + strconv.Itoa(n)
		}
		towns[i].TownSlug = slug
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
