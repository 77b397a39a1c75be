package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"cartelera-server/internal/model"
	"cartelera-server/pkg/titles"
)

// Store is the persistence surface the recalculation run needs.
type Store interface {
	ListMediaWithScores(ctx context.Context) ([]model.MediaWithScores, error)
	UpsertAggregatedScore(ctx context.Context, agg model.AggregatedScore) error
	DeleteAggregatedScoresExcept(ctx context.Context, keepIDs []string) error
}

type Service struct {
	store             Store
	recentWindowYears int
}

func NewService(store Store, recentWindowYears int) *Service {
	return &Service{store: store, recentWindowYears: recentWindowYears}
}

// RecalculateAll rebuilds every aggregated score from the current corpus:
// blacklist filter, dedup by normalized title (highest average wins), then
// one upsert per surviving scored item. Aggregates of items that lost dedup
// or have no scores are removed so the ranking never shows stale rows.
// Rerunning on unchanged data writes identical rows.
func (s *Service) RecalculateAll(ctx context.Context, now time.Time) (int, error) {
	items, err := s.store.ListMediaWithScores(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch media corpus: %w", err)
	}

	clean := titles.CleanMediaList(items,
		func(m model.MediaWithScores) string { return m.Title },
		func(m model.MediaWithScores) float64 { return AverageScore(m.Scores) },
	)

	keep := make([]string, 0, len(clean))
	processed := 0
	for _, m := range clean {
		agg, ok := Aggregate(m.MediaItem, m.Scores, now, s.recentWindowYears)
		if !ok {
			continue
		}
		if err := s.store.UpsertAggregatedScore(ctx, agg); err != nil {
			return processed, fmt.Errorf("upsert aggregate for %s: %w", m.ID, err)
		}
		keep = append(keep, m.ID)
		processed++
	}

	if err := s.store.DeleteAggregatedScoresExcept(ctx, keep); err != nil {
		return processed, fmt.Errorf("prune stale aggregates: %w", err)
	}

	log.Info().
		Int("corpus", len(items)).
		Int("ranked", processed).
		Int("dropped", len(items)-len(clean)).
		Msg("ranking recalculated")
	return processed, nil
}
