// Package service contains the business logic for the circus tour website.
// It orchestrates the upstream fetch, the snapshot cache, and the town
// classifier; no HTTP handling or HTML lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/silversons/circus-site/internal/cache"
	"github.com/silversons/circus-site/internal/classifier"
	"github.com/silversons/circus-site/internal/domain"
	"github.com/silversons/circus-site/internal/ticketing"
)

// EventsFetcher is the upstream dependency of TownService.
// Satisfied by *ticketing.Client; tests inject a mock.
type EventsFetcher interface {
	FetchEvents(ctx context.Context) ([]domain.EventRecord, error)
}

// TownService produces the classified town listing that every page and the
// towns API are built from.
type TownService struct {
	fetcher    EventsFetcher
	snapshot   *cache.Snapshot[[]domain.EventRecord]
	classifier *classifier.Classifier
	logger     *slog.Logger
}

// NewTownService constructs a TownService.
func NewTownService(fetcher EventsFetcher, snapshot *cache.Snapshot[[]domain.EventRecord], cls *classifier.Classifier, logger *slog.Logger) *TownService {
	return &TownService{
		fetcher:    fetcher,
		snapshot:   snapshot,
		classifier: cls,
		logger:     logger,
	}
}

// Towns returns the ordered town listing for "today".
//
// The upstream snapshot is cached; classification always runs fresh because
// its result depends on the current day, not only on the data. When a refresh
// fails, an expired snapshot is served rather than nothing; with no snapshot
// at all the error wraps domain.ErrUnavailable.
func (s *TownService) Towns(ctx context.Context) ([]domain.TownRecord, error) {
	records, ok := s.snapshot.Get()
	if !ok {
		fetched, err := s.fetcher.FetchEvents(ctx)
		switch {
		case err == nil:
			s.snapshot.Set(fetched)
			records = fetched
		default:
			stale, haveStale := s.snapshot.Stale()
			if !haveStale {
				return nil, fmt.Errorf("%w: %s", domain.ErrUnavailable, err)
			}
			s.logger.Warn("upstream fetch failed, serving stale snapshot", "error", err)
			records = stale
		}
	}
	return s.classifier.Classify(ticketing.GroupByTown(records)), nil
}

// TownBySlug returns the single town whose slug matches, or domain.ErrNotFound.
func (s *TownService) TownBySlug(ctx context.Context, slug string) (domain.TownRecord, error) {
	towns, err := s.Towns(ctx)
	if err != nil {
		return domain.TownRecord{}, err
	}
	for _, t := range towns {
		if t.TownSlug == slug {
			return t, nil
		}
	}
	return domain.TownRecord{}, fmt.Errorf("town %q: %w", slug, domain.ErrNotFound)
}
