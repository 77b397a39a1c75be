package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cartelera-server/internal/model"
)

type ScoresRepo struct {
	db *pgxpool.Pool
}

var ErrInvalidSource = fmt.Errorf("invalid source")

// Upsert records one provider's rating for a media item, replacing any
// previous rating from the same source.
func (r *ScoresRepo) Upsert(ctx context.Context, s model.SourceScore) error {
	if _, ok := model.AllowedSources[s.Source]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSource, s.Source)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO sources_scores (media_item_id, source, score_normalized, votes_count, scraped_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (media_item_id, source)
		DO UPDATE SET score_normalized = EXCLUDED.score_normalized,
		              votes_count = EXCLUDED.votes_count,
		              scraped_at = EXCLUDED.scraped_at`,
		s.MediaItemID, s.Source, s.ScoreNormalized, s.VotesCount, s.ScrapedAt)
	return err
}
