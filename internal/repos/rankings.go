package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cartelera-server/internal/model"
)

type RankingsRepo struct {
	db *pgxpool.Pool
}

// UpsertAggregated fully replaces the aggregated score for one
// (media_item_id, ranking_type) pair.
func (r *RankingsRepo) UpsertAggregated(ctx context.Context, agg model.AggregatedScore) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO aggregated_scores (media_item_id, ranking_type, final_score, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (media_item_id, ranking_type)
		DO UPDATE SET final_score = EXCLUDED.final_score, updated_at = EXCLUDED.updated_at`,
		agg.MediaItemID, agg.RankingType, agg.FinalScore, agg.UpdatedAt)
	return err
}

// DeleteExcept prunes aggregated scores whose media item is not in keepIDs.
// A recalculation run calls this so items dropped by dedup or left without
// scores disappear from the ranking.
func (r *RankingsRepo) DeleteExcept(ctx context.Context, keepIDs []string) error {
	if keepIDs == nil {
		keepIDs = []string{}
	}
	_, err := r.db.Exec(ctx, `DELETE FROM aggregated_scores WHERE NOT (media_item_id = ANY($1))`, keepIDs)
	return err
}

// ListPage returns a ranking page ordered by final score descending, with
// optional raw-genre overlap filtering and keyset pagination on
// (final_score, media_item_id).
func (r *RankingsRepo) ListPage(ctx context.Context, rankingType string, genreTokens []string, cursorScore *float64, cursorID *string, limit int32) ([]model.RankingEntry, error) {
	curScore := 11.0 // above any reachable final_score
	curID := ""
	if cursorScore != nil {
		curScore = *cursorScore
	}
	if cursorID != nil {
		curID = *cursorID
	}
	if genreTokens == nil {
		genreTokens = []string{}
	}
	rows, err := r.db.Query(ctx, `
		SELECT a.final_score, a.ranking_type, m.id, m.type, m.title, m.year, m.genres, m.poster_url, m.synopsis, m.created_at
		FROM aggregated_scores a
		JOIN media_items m ON m.id = a.media_item_id
		WHERE a.ranking_type = $1
		  AND (cardinality($2::text[]) = 0 OR m.genres && $2::text[])
		  AND (a.final_score < $3 OR (a.final_score = $3 AND a.media_item_id > $4))
		ORDER BY a.final_score DESC, a.media_item_id
		LIMIT $5`,
		rankingType, genreTokens, curScore, curID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RankingEntry, 0, limit)
	for rows.Next() {
		var e model.RankingEntry
		m := &e.Item
		if err := rows.Scan(&e.FinalScore, &e.RankingType, &m.ID, &m.Type, &m.Title, &m.Year, &m.Genres, &m.PosterURL, &m.Synopsis, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *RankingsRepo) Count(ctx context.Context, rankingType string, genreTokens []string) (int64, error) {
	if genreTokens == nil {
		genreTokens = []string{}
	}
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM aggregated_scores a
		JOIN media_items m ON m.id = a.media_item_id
		WHERE a.ranking_type = $1
		  AND (cardinality($2::text[]) = 0 OR m.genres && $2::text[])`,
		rankingType, genreTokens).Scan(&n)
	return n, err
}
