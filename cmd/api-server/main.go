package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"cartelera-server/internal/config"
	"cartelera-server/internal/deps"
	"cartelera-server/internal/jobs"
	"cartelera-server/internal/migrate"
	"cartelera-server/internal/ranking"
	"cartelera-server/internal/recs"
	"cartelera-server/internal/repos"
	"cartelera-server/internal/server"
	"cartelera-server/pkg/cache"
	pkgdb "cartelera-server/pkg/db"
	pkgfa "cartelera-server/pkg/filmaffinity"
	"cartelera-server/pkg/signer"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := migrate.Up(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	repository := repos.New(pool)
	rankingSvc := ranking.NewService(repository, cfg.RecentWindowYears)
	recsSvc := recs.NewService(repository, recs.Config{
		CandidatePoolPerType: cfg.CandidatePoolPerType,
		Limit:                cfg.RecommendationLimit,
		RecentWindowYears:    cfg.RecentWindowYears,
	})

	api := server.New(deps.ServerDeps{
		Repo:      repository,
		Cache:     c,
		Signer:    signer.NewHMAC(cfg.CursorSecret),
		Ranking:   rankingSvc,
		Recs:      recsSvc,
		Name:      "cartelera-server",
		StartedAt: time.Now().UTC(),
	}, cfg.CORSAllowedOrigins)

	// Background jobs
	var scraper *pkgfa.Client
	if cfg.ScrapeEnabled {
		scraper = pkgfa.New()
	}
	if err := jobs.SeedScrapeIfEmpty(ctx, repository, scraper); err != nil {
		log.Error().Err(err).Msg("seed from FilmAffinity failed")
	}
	jobs.StartScrapeSync(ctx, repository, scraper, cfg.ScrapeInterval)
	jobs.StartRankingRecalc(ctx, rankingSvc, cfg.RecalcInterval)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
