package routes

import (
	"net/http"
	"time"

	"cartelera-server/internal/deps"

	pkghttpx "cartelera-server/pkg/httpx"
)

// Recalculate handles POST /admin/recalculate: a full ranking rebuild now.
func Recalculate(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		processed, err := d.Ranking.RecalculateAll(ctx, time.Now().UTC())
		if err != nil {
			writeError(w, r, pkghttpx.Internal("ranking recalculation failed", err))
			return
		}
		_ = d.Cache.DeletePrefix(ctx, "rankings:")
		writeJSON(w, http.StatusOK, map[string]any{"processed": processed})
	}
}

// Cleanup handles POST /admin/cleanup: removes blacklisted rows, merges
// duplicate title groups in the database, then rebuilds the rankings.
func Cleanup(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		report, err := d.Repo.MergeDuplicates(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("cleanup failed", err))
			return
		}
		processed, err := d.Ranking.RecalculateAll(ctx, time.Now().UTC())
		if err != nil {
			writeError(w, r, pkghttpx.Internal("post-cleanup recalculation failed", err))
			return
		}
		_ = d.Cache.DeletePrefix(ctx, "rankings:")
		_ = d.Cache.DeletePrefix(ctx, "genres:")
		writeJSON(w, http.StatusOK, map[string]any{
			"report":    report,
			"processed": processed,
		})
	}
}
