package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/silversons/circus-site/internal/clock"
	"github.com/silversons/circus-site/internal/domain"
	"github.com/silversons/circus-site/internal/handler"
)

// mockTownLister is a hand-written test double for handler.TownLister.
// Set only the method fields your test needs.
type mockTownLister struct {
	towns      func(ctx context.Context) ([]domain.TownRecord, error)
	townBySlug func(ctx context.Context, slug string) (domain.TownRecord, error)
}

func (m *mockTownLister) Towns(ctx context.Context) ([]domain.TownRecord, error) {
	return m.towns(ctx)
}

func (m *mockTownLister) TownBySlug(ctx context.Context, slug string) (domain.TownRecord, error) {
	return m.townBySlug(ctx, slug)
}

// compile-time check: mockTownLister must satisfy handler.TownLister.
var _ handler.TownLister = (*mockTownLister)(nil)

var testNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

// newRouter wires a Server with the given mock exactly as main does.
func newRouter(t *testing.T, lister handler.TownLister) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := handler.NewServer(lister, "https://www.silversons.co.uk", clock.NewFixed(testNow), logger)
	require.NoError(t, err)
	return srv.Routes()
}

func fixtureTowns() []domain.TownRecord {
	return []domain.TownRecord{
		{
			Town:      "Oundle",
			TownSlug:  "oundle",
			StartDate: time.Date(2024, 1, 1, 19, 30, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 1, 1, 19, 30, 0, 0, time.UTC),
			Status:    domain.StatusFinalDay,
			Events: []domain.EventRecord{{
				Name:        "The Big Top Spectacular",
				Description: "All new 2024 show",
				Town:        "Oundle",
				Venue:       domain.VenueInfo{Name: "Embankment Fields", Postcode: "PE8 4BW"},
				Dates: []domain.EventDate{{
					Start:       time.Date(2024, 1, 1, 19, 30, 0, 0, time.UTC),
					BookingLink: "https://book.example.com/d-1",
				}},
			}},
		},
		{
			Town:      "Bedford",
			TownSlug:  "bedford",
			StartDate: time.Date(2024, 2, 1, 19, 30, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 2, 3, 19, 30, 0, 0, time.UTC),
			Status:    domain.StatusNextStop,
			Events:    []domain.EventRecord{{Name: "The Big Top Spectacular", Town: "Bedford"}},
		},
	}
}

func happyLister() *mockTownLister {
	return &mockTownLister{
		towns: func(context.Context) ([]domain.TownRecord, error) {
			return fixtureTowns(), nil
		},
		townBySlug: func(_ context.Context, slug string) (domain.TownRecord, error) {
			for _, t := range fixtureTowns() {
				if t.TownSlug == slug {
					return t, nil
				}
			}
			return domain.TownRecord{}, domain.ErrNotFound
		},
	}
}
