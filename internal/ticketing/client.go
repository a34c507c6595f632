// Package ticketing fetches events, performance dates, and venues from the
// upstream ticketing API and resolves them into domain records grouped by
// town. It owns all outbound HTTP: bounded parallel fan-out per event and
// retry with exponential backoff on transient failures.
package ticketing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/silversons/circus-site/internal/domain"
)

// UnknownTown is the grouping key for events whose venue carries no locality.
const UnknownTown = "Unknown Town"

const (
	defaultConcurrency = 4
	defaultMaxRetries  = 3
	defaultBackoffBase = 250 * time.Millisecond
)

// Client talks to the upstream ticketing API.
type Client struct {
	baseURL     string
	apiKey      string
	http        *http.Client
	logger      *slog.Logger
	concurrency int
	maxRetries  uint64
	backoffBase time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying *http.Client (used in tests and to
// tune timeouts).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithConcurrency caps how many per-event fetches run in parallel.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithMaxRetries overrides how many times a transient upstream failure is
// retried before the fetch gives up.
func WithMaxRetries(n uint64) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoffBase overrides the initial retry backoff (mainly for tests).
func WithBackoffBase(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.backoffBase = d
		}
	}
}

// NewClient constructs a Client for the API at baseURL, authenticating with
// apiKey as a bearer token.
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		http:        &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		concurrency: defaultConcurrency,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEvents retrieves the full event list, then fans out per event to fetch
// performance dates and venue details with bounded parallelism. A transient
// upstream failure fails the whole snapshot (the service layer falls back to
// its cache); a malformed date inside an otherwise valid event is dropped and
// logged rather than failing anything.
func (c *Client) FetchEvents(ctx context.Context) ([]domain.EventRecord, error) {
	var events eventsEnvelope
	if err := c.getJSON(ctx, "/v1/events", &events); err != nil {
		return nil, fmt.Errorf("ticketing: list events: %w", err)
	}

	records := make([]domain.EventRecord, len(events.Data))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, ev := range events.Data {
		i, ev := i, ev
		g.Go(func() error {
			rec, err := c.resolveEvent(gctx, ev)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ticketing: resolve events: %w", err)
	}
	return records, nil
}

// resolveEvent fetches the dates and venue for one event and assembles the
// domain record.
func (c *Client) resolveEvent(ctx context.Context, ev apiEvent) (domain.EventRecord, error) {
	rec := domain.EventRecord{
		Name:         ev.Name,
		Description:  ev.Description,
		ThumbnailURL: ev.ThumbnailURL,
		Town:         UnknownTown,
	}

	var dates datesEnvelope
	if err := c.getJSON(ctx, "/v1/events/"+ev.ID+"/dates", &dates); err != nil {
		return domain.EventRecord{}, fmt.Errorf("event %s dates: %w", ev.ID, err)
	}
	for _, d := range dates.Data {
		start, err := time.Parse(time.RFC3339, d.Start)
		if err != nil {
			c.logger.Warn("dropping unparseable performance date",
				"event_id", ev.ID, "date_id", d.ID, "start", d.Start)
			continue
		}
		rec.Dates = append(rec.Dates, domain.EventDate{Start: start, BookingLink: d.BookingURL})
	}

	if ev.VenueID != "" {
		var venue venueEnvelope
		if err := c.getJSON(ctx, "/v1/venues/"+ev.VenueID, &venue); err != nil {
			return domain.EventRecord{}, fmt.Errorf("event %s venue: %w", ev.ID, err)
		}
		rec.Venue = domain.VenueInfo{
			Name:     venue.Data.Name,
			Address:  venue.Data.Address,
			Postcode: venue.Data.Postcode,
			County:   venue.Data.County,
			Country:  venue.Data.Country,
		}
		if venue.Data.Town != "" {
			rec.Town = venue.Data.Town
		}
	}
	return rec, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
// 5xx responses and transport errors are retried with capped exponential
// backoff; any 4xx is permanent.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoffBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("GET %s: %w", path, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			_, _ = io.Copy(io.Discard, resp.Body)
			return retry.RetryableError(fmt.Errorf("GET %s: upstream %s", path, resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("GET %s: decode: %w", path, err)
		}
		return nil
	})
}

// GroupByTown buckets event records by their resolved town name, preserving
// the records themselves untouched. Records with no dates still appear in
// their bucket; the classifier ignores them.
func GroupByTown(records []domain.EventRecord) map[string][]domain.EventRecord {
	grouped := make(map[string][]domain.EventRecord)
	for _, rec := range records {
		town := rec.Town
		if town == "" {
			town = UnknownTown
		}
		grouped[town] = append(grouped[town], rec)
	}
	return grouped
}
