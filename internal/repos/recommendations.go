package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cartelera-server/internal/model"
)

type RecsRepo struct {
	db *pgxpool.Pool
}

// Replace swaps a user's stored recommendations for the given set inside one
// transaction, so a failure mid-sequence can never leave the user with an
// empty or partial set.
func (r *RecsRepo) Replace(ctx context.Context, userID string, recs []model.Recommendation) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete prior recommendations: %w", err)
	}
	for _, rec := range recs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recommendations (id, user_id, media_item_id, reason, rank, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, rec.UserID, rec.MediaItemID, rec.Reason, rec.Rank, rec.CreatedAt); err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ListByUser returns stored recommendations with their media items, best
// rank first.
func (r *RecsRepo) ListByUser(ctx context.Context, userID string) ([]RecommendationWithItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rc.id, rc.user_id, rc.media_item_id, rc.reason, rc.rank, rc.created_at,
		       m.id, m.type, m.title, m.year, m.genres, m.poster_url, m.synopsis, m.created_at
		FROM recommendations rc
		JOIN media_items m ON m.id = rc.media_item_id
		WHERE rc.user_id = $1
		ORDER BY rc.rank`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RecommendationWithItem{}
	for rows.Next() {
		var rec RecommendationWithItem
		m := &rec.Item
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.MediaItemID, &rec.Reason, &rec.Rank, &rec.CreatedAt,
			&m.ID, &m.Type, &m.Title, &m.Year, &m.Genres, &m.PosterURL, &m.Synopsis, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type RecommendationWithItem struct {
	model.Recommendation
	Item model.MediaItem `json:"media_item"`
}
