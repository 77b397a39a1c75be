package deps

import (
	"time"

	"cartelera-server/internal/ranking"
	"cartelera-server/internal/recs"
	"cartelera-server/internal/repos"
	"cartelera-server/pkg/cache"
	"cartelera-server/pkg/signer"
)

// ServerDeps holds the dependencies required by handlers and server.
type ServerDeps struct {
	Repo      *repos.Repository
	Cache     cache.Cache
	Signer    signer.Codec
	Ranking   *ranking.Service
	Recs      *recs.Service
	Name      string
	StartedAt time.Time
}
