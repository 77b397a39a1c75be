package repos

import (
	"context"

	"cartelera-server/internal/model"
)

// Forwarders so *Repository satisfies the ranking.Store and recs.Store
// interfaces directly.

func (r *Repository) ListMediaWithScores(ctx context.Context) ([]model.MediaWithScores, error) {
	return r.Media.ListWithScores(ctx)
}

func (r *Repository) UpsertAggregatedScore(ctx context.Context, agg model.AggregatedScore) error {
	return r.Rankings.UpsertAggregated(ctx, agg)
}

func (r *Repository) DeleteAggregatedScoresExcept(ctx context.Context, keepIDs []string) error {
	return r.Rankings.DeleteExcept(ctx, keepIDs)
}

func (r *Repository) ListFavoriteItems(ctx context.Context, userID string) ([]model.MediaItem, error) {
	return r.Favorites.ListItems(ctx, userID)
}

func (r *Repository) ListCandidates(ctx context.Context, mediaType string, excludeIDs []string, limit int32) ([]model.MediaWithScores, error) {
	return r.Media.ListCandidates(ctx, mediaType, excludeIDs, limit)
}

func (r *Repository) ReplaceRecommendations(ctx context.Context, userID string, recs []model.Recommendation) error {
	return r.Recs.Replace(ctx, userID, recs)
}
