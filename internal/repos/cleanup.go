package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cartelera-server/internal/model"
	"cartelera-server/internal/ranking"
	"cartelera-server/pkg/titles"
)

type CleanupReport struct {
	BlacklistedRemoved int `json:"blacklisted_removed"`
	GroupsMerged       int `json:"groups_merged"`
	DuplicatesRemoved  int `json:"duplicates_removed"`
}

// MergeDuplicates restores the one-live-row-per-normalized-title invariant
// in the database itself: blacklisted rows are deleted, duplicate groups are
// collapsed onto the highest-scoring variant, and subordinate rows (scores,
// favorites, recommendations) are migrated to the keeper before the losers
// are deleted. FK cascades cover whatever is left behind.
func (r *Repository) MergeDuplicates(ctx context.Context) (CleanupReport, error) {
	var report CleanupReport

	items, err := r.Media.ListWithScores(ctx)
	if err != nil {
		return report, fmt.Errorf("load corpus: %w", err)
	}

	var blacklisted []string
	var live []model.MediaWithScores
	for _, it := range items {
		if titles.IsBlacklisted(it.Title) {
			blacklisted = append(blacklisted, it.ID)
		} else {
			live = append(live, it)
		}
	}

	winners := titles.DeduplicateByTitle(live,
		func(m model.MediaWithScores) string { return m.Title },
		func(m model.MediaWithScores) float64 { return ranking.AverageScore(m.Scores) },
	)
	keeperByTitle := make(map[string]string, len(winners))
	for _, w := range winners {
		keeperByTitle[titles.Normalize(w.Title)] = w.ID
	}

	type merge struct{ keepID, loserID string }
	var merges []merge
	for _, it := range live {
		keepID := keeperByTitle[titles.Normalize(it.Title)]
		if it.ID != keepID {
			merges = append(merges, merge{keepID: keepID, loserID: it.ID})
		}
	}

	if len(blacklisted) == 0 && len(merges) == 0 {
		return report, nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return report, fmt.Errorf("begin cleanup tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range blacklisted {
		if _, err := tx.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id); err != nil {
			return report, fmt.Errorf("delete blacklisted %s: %w", id, err)
		}
		report.BlacklistedRemoved++
	}

	mergedGroups := make(map[string]struct{})
	for _, m := range merges {
		// Move over scores from sources the keeper does not have yet.
		if _, err := tx.Exec(ctx, `
			UPDATE sources_scores SET media_item_id = $1
			WHERE media_item_id = $2
			  AND source NOT IN (SELECT source FROM sources_scores WHERE media_item_id = $1)`,
			m.keepID, m.loserID); err != nil {
			return report, fmt.Errorf("migrate scores %s: %w", m.loserID, err)
		}
		// Move favorites unless the user already favorites the keeper.
		if _, err := tx.Exec(ctx, `
			UPDATE user_favorites SET media_item_id = $1
			WHERE media_item_id = $2
			  AND user_id NOT IN (SELECT user_id FROM user_favorites WHERE media_item_id = $1)`,
			m.keepID, m.loserID); err != nil {
			return report, fmt.Errorf("migrate favorites %s: %w", m.loserID, err)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE recommendations SET media_item_id = $1 WHERE media_item_id = $2`,
			m.keepID, m.loserID); err != nil {
			return report, fmt.Errorf("migrate recommendations %s: %w", m.loserID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, m.loserID); err != nil {
			return report, fmt.Errorf("delete duplicate %s: %w", m.loserID, err)
		}
		report.DuplicatesRemoved++
		mergedGroups[m.keepID] = struct{}{}
	}
	report.GroupsMerged = len(mergedGroups)

	if err := tx.Commit(ctx); err != nil {
		return report, fmt.Errorf("commit cleanup: %w", err)
	}
	return report, nil
}
