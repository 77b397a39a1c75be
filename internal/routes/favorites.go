package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"cartelera-server/internal/deps"
	"cartelera-server/internal/repos"

	pkghttpx "cartelera-server/pkg/httpx"
)

// ToggleFavorite handles POST /favorites/toggle.
func ToggleFavorite(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type toggleReq struct {
			UserID      string `json:"user_id"`
			MediaItemID string `json:"media_item_id"`
		}
		var req toggleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.UserID == "" || req.MediaItemID == "" {
			writeError(w, r, pkghttpx.BadRequest("missing fields", nil))
			return
		}
		favorited, err := d.Repo.Favorites.Toggle(r.Context(), req.UserID, req.MediaItemID)
		if err != nil {
			if errors.Is(err, repos.ErrMediaNotFound) {
				writeError(w, r, pkghttpx.NotFound("media item not found", err))
				return
			}
			writeError(w, r, pkghttpx.Internal("failed to toggle favorite", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"favorited": favorited})
	}
}

// ListFavorites handles GET /users/{id}/favorites.
func ListFavorites(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("id")
		if userID == "" {
			writeError(w, r, pkghttpx.BadRequest("missing user id", nil))
			return
		}
		items, err := d.Repo.Favorites.ListItems(r.Context(), userID)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list favorites", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}
