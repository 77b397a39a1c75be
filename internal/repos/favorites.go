package repos

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cartelera-server/internal/model"
)

type FavoritesRepo struct {
	db *pgxpool.Pool
}

// Toggle flips the favorite edge for (userID, mediaItemID) and returns the
// new membership state.
func (r *FavoritesRepo) Toggle(ctx context.Context, userID, mediaItemID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM media_items WHERE id = $1)`, mediaItemID).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrMediaNotFound
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND media_item_id = $2`, userID, mediaItemID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO user_favorites (user_id, media_item_id, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, media_item_id) DO NOTHING`,
		userID, mediaItemID, time.Now().UTC())
	return err == nil, err
}

// ListItems returns the media items a user has favorited, newest edge first.
func (r *FavoritesRepo) ListItems(ctx context.Context, userID string) ([]model.MediaItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.type, m.title, m.year, m.genres, m.poster_url, m.synopsis, m.created_at
		FROM user_favorites f
		JOIN media_items m ON m.id = f.media_item_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MediaItem{}
	for rows.Next() {
		m, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// IsFavorite reports membership without modifying it.
func (r *FavoritesRepo) IsFavorite(ctx context.Context, userID, mediaItemID string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx,
		`SELECT 1 FROM user_favorites WHERE user_id = $1 AND media_item_id = $2`, userID, mediaItemID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
