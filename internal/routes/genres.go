package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"cartelera-server/internal/deps"
	"cartelera-server/internal/model"

	pkggenres "cartelera-server/pkg/genres"
	pkghttpx "cartelera-server/pkg/httpx"
)

// Genres handles GET /genres: the display-name groups projected from the
// live corpus. Rebuilt from current genre sets on every uncached read.
func Genres(d deps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		const cacheKey = "genres:groups"
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		sets, err := d.Repo.Media.ListGenreSets(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to load genre sets", err))
			return
		}
		grouped, names := pkggenres.GroupTokens(sets)
		groups := make([]model.GenreGroup, 0, len(names))
		for _, name := range names {
			groups = append(groups, model.GenreGroup{Name: name, Tokens: grouped[name]})
		}
		resp := map[string]any{
			"groups": groups,
			"names":  names,
		}
		b, _ := json.Marshal(resp)
		_ = d.Cache.Set(ctx, cacheKey, string(b), 10*time.Minute)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
