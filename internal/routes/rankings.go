package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cartelera-server/internal/deps"
	"cartelera-server/internal/model"

	pkghttpx "cartelera-server/pkg/httpx"
)

// Rankings handles GET /rankings/{type}. Supports raw-genre filtering
// (comma-separated "genres" param, overlap semantics) and signed cursor
// pagination on (final_score, media_item_id).
func Rankings(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rankingType := r.PathValue("type")
		if _, ok := model.AllowedRankingTypes[rankingType]; !ok {
			writeError(w, r, pkghttpx.BadRequest("invalid ranking type", nil))
			return
		}
		lim, herr := parseLimit(r, 100)
		if herr != nil {
			writeError(w, r, herr)
			return
		}
		var genreTokens []string
		genresParam := r.URL.Query().Get("genres")
		if genresParam != "" {
			for _, g := range strings.Split(genresParam, ",") {
				if v := strings.TrimSpace(g); v != "" {
					genreTokens = append(genreTokens, v)
				}
			}
		}
		cursor := r.URL.Query().Get("cursor")
		var curScore *float64
		var curID *string
		if cursor != "" {
			if d.Signer == nil {
				writeError(w, r, pkghttpx.Internal("cursor signer not configured", nil))
				return
			}
			score, id, decErr := d.Signer.DecodeRankingCursor(cursor)
			if decErr != nil {
				writeError(w, r, pkghttpx.BadRequest("invalid cursor", decErr))
				return
			}
			curScore = &score
			curID = &id
		}

		cacheKey := "rankings:" + rankingType + ":genres:" + genresParam + ":cursor:" + cursor + ":limit:" + strconv.Itoa(int(lim))
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}

		entries, err := d.Repo.Rankings.ListPage(ctx, rankingType, genreTokens, curScore, curID, lim)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list rankings", err))
			return
		}
		total, err := d.Repo.Rankings.Count(ctx, rankingType, genreTokens)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to count rankings", err))
			return
		}

		resp := map[string]any{
			"items": entries,
			"count": len(entries),
			"total": total,
		}
		if len(entries) == int(lim) && d.Signer != nil {
			last := entries[len(entries)-1]
			resp["next_cursor"] = d.Signer.EncodeRankingCursor(last.FinalScore, last.Item.ID)
		}
		b, _ := json.Marshal(resp)
		_ = d.Cache.Set(ctx, cacheKey, string(b), 2*time.Minute)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
