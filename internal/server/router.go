package server

import (
	"net/http"

	"cartelera-server/internal/deps"
	"cartelera-server/internal/routes"
)

type Server struct {
	deps.ServerDeps
	corsOrigins []string
}

func New(d deps.ServerDeps, corsOrigins []string) *Server {
	return &Server{ServerDeps: d, corsOrigins: corsOrigins}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	sd := s.ServerDeps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(sd))
	mux.HandleFunc("GET /rankings/{type}", routes.Rankings(sd))
	mux.HandleFunc("GET /media/{id}", routes.MediaDetail(sd))
	mux.HandleFunc("GET /genres", routes.Genres(sd))
	mux.HandleFunc("POST /scores", routes.IngestScore(sd))
	mux.HandleFunc("POST /favorites/toggle", routes.ToggleFavorite(sd))
	mux.HandleFunc("GET /users/{id}/favorites", routes.ListFavorites(sd))
	mux.HandleFunc("GET /users/{id}/recommendations", routes.GetRecommendations(sd))
	mux.HandleFunc("POST /users/{id}/recommendations/refresh", routes.RefreshRecommendations(sd))
	mux.HandleFunc("POST /admin/recalculate", routes.Recalculate(sd))
	mux.HandleFunc("POST /admin/cleanup", routes.Cleanup(sd))

	var h http.Handler = mux
	h = withCORS(s.corsOrigins)(h)
	h = withSecurityHeaders(h)
	return withCorrelationID(withLogging(h))
}
