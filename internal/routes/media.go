package routes

import (
	"errors"
	"net/http"

	"cartelera-server/internal/deps"
	"cartelera-server/internal/repos"

	pkghttpx "cartelera-server/pkg/httpx"
)

// MediaDetail handles GET /media/{id}. An optional "user_id" query param
// adds the caller's favorite state to the payload.
func MediaDetail(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")
		if id == "" {
			writeError(w, r, pkghttpx.BadRequest("missing media id", nil))
			return
		}
		item, err := d.Repo.Media.GetWithScores(ctx, id)
		if err != nil {
			if errors.Is(err, repos.ErrMediaNotFound) {
				writeError(w, r, pkghttpx.NotFound("media item not found", err))
				return
			}
			writeError(w, r, pkghttpx.Internal("failed to load media item", err))
			return
		}
		resp := map[string]any{"media_item": item}
		if userID := r.URL.Query().Get("user_id"); userID != "" {
			fav, err := d.Repo.Favorites.IsFavorite(ctx, userID, id)
			if err != nil {
				writeError(w, r, pkghttpx.Internal("failed to load favorite state", err))
				return
			}
			resp["favorited"] = fav
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
