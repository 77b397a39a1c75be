package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/xid"

	"cartelera-server/internal/model"
)

type MediaRepo struct {
	db *pgxpool.Pool
}

const mediaColumns = `id, type, title, year, genres, poster_url, synopsis, created_at`

func scanMediaItem(row pgx.Row) (model.MediaItem, error) {
	var m model.MediaItem
	err := row.Scan(&m.ID, &m.Type, &m.Title, &m.Year, &m.Genres, &m.PosterURL, &m.Synopsis, &m.CreatedAt)
	return m, err
}

// ListWithScores returns the full catalog with attached source scores.
// Two bulk queries joined in memory; items without scores get an empty slice.
func (r *MediaRepo) ListWithScores(ctx context.Context) ([]model.MediaWithScores, error) {
	rows, err := r.db.Query(ctx, `SELECT `+mediaColumns+` FROM media_items ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MediaWithScores
	index := make(map[string]int)
	for rows.Next() {
		m, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(out)
		out = append(out, model.MediaWithScores{MediaItem: m, Scores: []model.SourceScore{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := r.db.Query(ctx, `SELECT media_item_id, source, score_normalized, votes_count, scraped_at FROM sources_scores`)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s model.SourceScore
		if err := srows.Scan(&s.MediaItemID, &s.Source, &s.ScoreNormalized, &s.VotesCount, &s.ScrapedAt); err != nil {
			return nil, err
		}
		if i, ok := index[s.MediaItemID]; ok {
			out[i].Scores = append(out[i].Scores, s)
		}
	}
	return out, srows.Err()
}

// GetWithScores returns one media item and its source scores.
func (r *MediaRepo) GetWithScores(ctx context.Context, id string) (model.MediaWithScores, error) {
	m, err := scanMediaItem(r.db.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MediaWithScores{}, ErrMediaNotFound
		}
		return model.MediaWithScores{}, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT media_item_id, source, score_normalized, votes_count, scraped_at FROM sources_scores WHERE media_item_id = $1 ORDER BY source`, id)
	if err != nil {
		return model.MediaWithScores{}, err
	}
	defer rows.Close()
	item := model.MediaWithScores{MediaItem: m, Scores: []model.SourceScore{}}
	for rows.Next() {
		var s model.SourceScore
		if err := rows.Scan(&s.MediaItemID, &s.Source, &s.ScoreNormalized, &s.VotesCount, &s.ScrapedAt); err != nil {
			return model.MediaWithScores{}, err
		}
		item.Scores = append(item.Scores, s)
	}
	return item, rows.Err()
}

// ListCandidates returns scored catalog items of one type, excluding the
// given ids (a user's favorites), capped at limit. Newest first so fresh
// catalog entries enter the candidate pool ahead of old ones.
func (r *MediaRepo) ListCandidates(ctx context.Context, mediaType string, excludeIDs []string, limit int32) ([]model.MediaWithScores, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+mediaColumns+` FROM media_items WHERE type = $1 AND NOT (id = ANY($2)) ORDER BY created_at DESC, id LIMIT $3`,
		mediaType, excludeIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MediaWithScores
	ids := make([]string, 0, limit)
	index := make(map[string]int)
	for rows.Next() {
		m, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		ids = append(ids, m.ID)
		index[m.ID] = len(out)
		out = append(out, model.MediaWithScores{MediaItem: m, Scores: []model.SourceScore{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	srows, err := r.db.Query(ctx,
		`SELECT media_item_id, source, score_normalized, votes_count, scraped_at FROM sources_scores WHERE media_item_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s model.SourceScore
		if err := srows.Scan(&s.MediaItemID, &s.Source, &s.ScoreNormalized, &s.VotesCount, &s.ScrapedAt); err != nil {
			return nil, err
		}
		if i, ok := index[s.MediaItemID]; ok {
			out[i].Scores = append(out[i].Scores, s)
		}
	}
	return out, srows.Err()
}

// ListGenreSets returns every item's raw genre token set, the input to the
// genre grouping projection.
func (r *MediaRepo) ListGenreSets(ctx context.Context) ([][]string, error) {
	rows, err := r.db.Query(ctx, `SELECT genres FROM media_items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out [][]string
	for rows.Next() {
		var g []string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpsertScraped matches a scraped row on (title, year) and inserts a new
// item otherwise, returning the live id. Enrichment fields (poster,
// synopsis) are backfilled when the scrape carries them and the row lacks
// them. Ingestion does not dedup across title variants; the cleanup and
// ranking paths do.
func (r *MediaRepo) UpsertScraped(ctx context.Context, item model.MediaItem) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM media_items WHERE title = $1 AND year = $2 LIMIT 1`, item.Title, item.Year).Scan(&id)
	if err == nil {
		_, uerr := r.db.Exec(ctx,
			`UPDATE media_items SET poster_url = COALESCE(poster_url, $2), synopsis = COALESCE(synopsis, $3) WHERE id = $1`,
			id, item.PosterURL, item.Synopsis)
		return id, uerr
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}
	id = xid.New().String()
	_, err = r.db.Exec(ctx,
		`INSERT INTO media_items (id, type, title, year, genres, poster_url, synopsis, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, item.Type, item.Title, item.Year, item.Genres, item.PosterURL, item.Synopsis, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert media item: %w", err)
	}
	return id, nil
}

func (r *MediaRepo) HasMedia(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM media_items)`).Scan(&exists)
	return exists, err
}
