package recs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"cartelera-server/internal/model"
)

// Store is the persistence surface a recommendation refresh needs.
// ReplaceRecommendations must be transactional: the delete and the inserts
// either both land or neither does.
type Store interface {
	ListFavoriteItems(ctx context.Context, userID string) ([]model.MediaItem, error)
	ListCandidates(ctx context.Context, mediaType string, excludeIDs []string, limit int32) ([]model.MediaWithScores, error)
	ReplaceRecommendations(ctx context.Context, userID string, recs []model.Recommendation) error
}

type Config struct {
	CandidatePoolPerType int32
	Limit                int
	RecentWindowYears    int
}

type Service struct {
	store Store
	cfg   Config
}

func NewService(store Store, cfg Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// Result reports a refresh outcome. A zero Count with a Message is a defined
// empty case (no favorites, no candidates), not a failure.
type Result struct {
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

// Refresh recomputes a user's stored recommendations: favorites in, scored
// candidates out, then a destructive replace of the user's rows. Nothing is
// written until candidates have been fetched and scored, so a failure on the
// read side leaves the previous set intact. Concurrent refreshes for the
// same user are not safe; callers serialize per user.
func (s *Service) Refresh(ctx context.Context, userID string) (Result, error) {
	favorites, err := s.store.ListFavoriteItems(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load favorites: %w", err)
	}
	if len(favorites) == 0 {
		return Result{Message: "añade favoritos para recibir recomendaciones"}, nil
	}

	favGenres := FavoriteGenres(favorites)
	excludeIDs := make([]string, 0, len(favorites))
	for _, f := range favorites {
		excludeIDs = append(excludeIDs, f.ID)
	}

	movies, err := s.store.ListCandidates(ctx, model.TypeMovie, excludeIDs, s.cfg.CandidatePoolPerType)
	if err != nil {
		return Result{}, fmt.Errorf("load movie candidates: %w", err)
	}
	series, err := s.store.ListCandidates(ctx, model.TypeSeries, excludeIDs, s.cfg.CandidatePoolPerType)
	if err != nil {
		return Result{}, fmt.Errorf("load series candidates: %w", err)
	}
	if len(movies) == 0 && len(series) == 0 {
		return Result{Message: "sin candidatos disponibles"}, nil
	}

	now := time.Now().UTC()
	picks := BalanceByType(
		ScoreCandidates(movies, favGenres),
		ScoreCandidates(series, favGenres),
		s.cfg.Limit,
	)

	rows := make([]model.Recommendation, 0, len(picks))
	for i, p := range picks {
		rows = append(rows, model.Recommendation{
			ID:          xid.New().String(),
			UserID:      userID,
			MediaItemID: p.Item.ID,
			Reason:      ReasonFor(p, now, s.cfg.RecentWindowYears),
			Rank:        i + 1,
			CreatedAt:   now,
		})
	}

	if err := s.store.ReplaceRecommendations(ctx, userID, rows); err != nil {
		return Result{}, fmt.Errorf("store recommendations: %w", err)
	}

	log.Info().Str("user_id", userID).Int("count", len(rows)).Msg("recommendations refreshed")
	return Result{Count: len(rows)}, nil
}
