package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silversons/circus-site/internal/cache"
	"github.com/silversons/circus-site/internal/classifier"
	"github.com/silversons/circus-site/internal/clock"
	"github.com/silversons/circus-site/internal/domain"
	"github.com/silversons/circus-site/internal/service"
)

// mockFetcher is a hand-written test double for service.EventsFetcher.
type mockFetcher struct {
	fetch func(ctx context.Context) ([]domain.EventRecord, error)
	calls int
}

func (m *mockFetcher) FetchEvents(ctx context.Context) ([]domain.EventRecord, error) {
	m.calls++
	return m.fetch(ctx)
}

// compile-time check: mockFetcher must satisfy service.EventsFetcher.
var _ service.EventsFetcher = (*mockFetcher)(nil)

var testNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func fixtureRecords() []domain.EventRecord {
	return []domain.EventRecord{
		{
			Name: "The Big Top Spectacular",
			Town: "Oundle",
			Dates: []domain.EventDate{
				{Start: time.Date(2024, 1, 1, 19, 30, 0, 0, time.UTC)},
			},
		},
		{
			Name: "The Big Top Spectacular",
			Town: "Bedford",
			Dates: []domain.EventDate{
				{Start: time.Date(2024, 2, 1, 19, 30, 0, 0, time.UTC)},
			},
		},
	}
}

func newService(fetcher *mockFetcher, ttl time.Duration) *service.TownService {
	clk := clock.NewFixed(testNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewTownService(
		fetcher,
		cache.New[[]domain.EventRecord](ttl, clk),
		classifier.New(clk),
		logger,
	)
}

func TestTowns_fetchesAndClassifies(t *testing.T) {
	fetcher := &mockFetcher{fetch: func(context.Context) ([]domain.EventRecord, error) {
		return fixtureRecords(), nil
	}}
	svc := newService(fetcher, 5*time.Minute)

	towns, err := svc.Towns(context.Background())

	require.NoError(t, err)
	require.Len(t, towns, 2)
	assert.Equal(t, "Oundle", towns[0].Town)
	assert.Equal(t, domain.StatusFinalDay, towns[0].Status)
	assert.Equal(t, "Bedford", towns[1].Town)
	assert.Equal(t, domain.StatusNextStop, towns[1].Status)
}

func TestTowns_secondCallServedFromCache(t *testing.T) {
	fetcher := &mockFetcher{fetch: func(context.Context) ([]domain.EventRecord, error) {
		return fixtureRecords(), nil
	}}
	svc := newService(fetcher, 5*time.Minute)

	_, err := svc.Towns(context.Background())
	require.NoError(t, err)
	_, err = svc.Towns(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
}

func TestTowns_fetchFailureWithColdCacheIsUnavailable(t *testing.T) {
	fetcher := &mockFetcher{fetch: func(context.Context) ([]domain.EventRecord, error) {
		return nil, errors.New("connection refused")
	}}
	svc := newService(fetcher, 5*time.Minute)

	_, err := svc.Towns(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestTowns_fetchFailureFallsBackToStaleSnapshot(t *testing.T) {
	healthy := true
	fetcher := &mockFetcher{fetch: func(context.Context) ([]domain.EventRecord, error) {
		if !healthy {
			return nil, errors.New("connection refused")
		}
		return fixtureRecords(), nil
	}}
	// Zero TTL: every call misses the fresh cache but leaves a stale snapshot.
	svc := newService(fetcher, 0)

	_, err := svc.Towns(context.Background())
	require.NoError(t, err)

	healthy = false
	towns, err := svc.Towns(context.Background())

	require.NoError(t, err)
	assert.Len(t, towns, 2)
	assert.Equal(t, 2, fetcher.calls)
}

func TestTownBySlug(t *testing.T) {
	fetcher := &mockFetcher{fetch: func(context.Context) ([]domain.EventRecord, error) {
		return fixtureRecords(), nil
	}}
	svc := newService(fetcher, 5*time.Minute)

	town, err := svc.TownBySlug(context.Background(), "bedford")
	require.NoError(t, err)
	assert.Equal(t, "Bedford", town.Town)

	_, err = svc.TownBySlug(context.Background(), "atlantis")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
