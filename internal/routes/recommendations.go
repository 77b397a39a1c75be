package routes

import (
	"net/http"

	"cartelera-server/internal/deps"

	pkghttpx "cartelera-server/pkg/httpx"
)

// RefreshRecommendations handles POST /users/{id}/recommendations/refresh.
// The recompute is a destructive replace of the user's stored rows; callers
// must not run two refreshes for the same user concurrently.
func RefreshRecommendations(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("id")
		if userID == "" {
			writeError(w, r, pkghttpx.BadRequest("missing user id", nil))
			return
		}
		result, err := d.Recs.Refresh(r.Context(), userID)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to refresh recommendations", err))
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// GetRecommendations handles GET /users/{id}/recommendations.
func GetRecommendations(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("id")
		if userID == "" {
			writeError(w, r, pkghttpx.BadRequest("missing user id", nil))
			return
		}
		recs, err := d.Repo.Recs.ListByUser(r.Context(), userID)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list recommendations", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": recs,
			"count": len(recs),
		})
	}
}
