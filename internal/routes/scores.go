package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cartelera-server/internal/deps"
	"cartelera-server/internal/model"
	"cartelera-server/internal/repos"

	pkghttpx "cartelera-server/pkg/httpx"
)

// IngestScore handles POST /scores: a scraped (title, year, type) row plus
// one source rating. The media item is matched on title+year or created;
// the rating upserts per (item, source). Aggregates are rebuilt by the
// periodic job or an explicit /admin/recalculate.
func IngestScore(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type ingestReq struct {
			Title     string   `json:"title"`
			Year      int      `json:"year"`
			Type      string   `json:"type"`
			Genres    []string `json:"genres"`
			PosterURL *string  `json:"poster_url"`
			Synopsis  *string  `json:"synopsis"`
			Source    string   `json:"source"`
			Score     float64  `json:"score"`
			Votes     int64    `json:"votes"`
		}
		ctx := r.Context()
		var req ingestReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.Title == "" {
			writeError(w, r, pkghttpx.BadRequest("missing title", nil))
			return
		}
		if _, ok := model.AllowedTypes[req.Type]; !ok {
			writeError(w, r, pkghttpx.BadRequest("invalid media type", nil))
			return
		}
		if _, ok := model.AllowedSources[req.Source]; !ok {
			writeError(w, r, pkghttpx.BadRequest("invalid source", nil))
			return
		}
		if req.Score < 0 || req.Score > 10 || req.Votes < 0 {
			writeError(w, r, pkghttpx.BadRequest("score out of range", nil))
			return
		}

		id, err := d.Repo.Media.UpsertScraped(ctx, model.MediaItem{
			Type:      req.Type,
			Title:     req.Title,
			Year:      req.Year,
			Genres:    req.Genres,
			PosterURL: req.PosterURL,
			Synopsis:  req.Synopsis,
		})
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to upsert media item", err))
			return
		}
		err = d.Repo.Scores.Upsert(ctx, model.SourceScore{
			MediaItemID:     id,
			Source:          req.Source,
			ScoreNormalized: req.Score,
			VotesCount:      req.Votes,
			ScrapedAt:       time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, repos.ErrInvalidSource) {
				writeError(w, r, pkghttpx.BadRequest("invalid source", err))
				return
			}
			writeError(w, r, pkghttpx.Internal("failed to upsert score", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"media_item_id": id})
	}
}
