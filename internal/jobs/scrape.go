package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"cartelera-server/internal/model"
	"cartelera-server/internal/repos"

	pkgfa "cartelera-server/pkg/filmaffinity"
)

// scrapedGenres is the placeholder set attached to newly scraped rows until
// an enrichment pass fills in real tokens.
var scrapedGenres = []string{"Drama", "Clásico"}

// SeedScrapeIfEmpty populates the catalog from the FilmAffinity rankings
// when it is empty. Dev/test convenience; no-op when the client is nil or
// media already exists.
func SeedScrapeIfEmpty(ctx context.Context, r *repos.Repository, c *pkgfa.Client) error {
	if c == nil {
		return nil
	}
	has, err := r.Media.HasMedia(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	n, err := syncOnce(ctx, r, c)
	if err != nil {
		return err
	}
	log.Info().Int("count", n).Msg("seeded catalog from FilmAffinity as it was empty")
	return nil
}

// StartScrapeSync fetches the FilmAffinity yearly rankings on an interval
// and upserts the results through the normal ingestion path.
func StartScrapeSync(ctx context.Context, r *repos.Repository, c *pkgfa.Client, interval time.Duration) {
	if c == nil {
		log.Warn().Msg("scrape client not configured; skipping sync")
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := syncOnce(ctx, r, c); err != nil {
					log.Error().Err(err).Msg("filmaffinity sync failed")
				} else {
					log.Info().Int("count", n).Msg("filmaffinity sync upserted scores")
				}
			}
		}
	}()
}

func syncOnce(ctx context.Context, r *repos.Repository, c *pkgfa.Client) (int, error) {
	year := time.Now().UTC().Year()
	entries, err := c.FetchTopRankings(ctx, year, year-1)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		id, err := r.Media.UpsertScraped(ctx, model.MediaItem{
			Type:   e.Type,
			Title:  e.Title,
			Year:   e.Year,
			Genres: scrapedGenres,
		})
		if err != nil {
			return count, err
		}
		err = r.Scores.Upsert(ctx, model.SourceScore{
			MediaItemID:     id,
			Source:          model.SourceFilmaffinity,
			ScoreNormalized: e.Score,
			VotesCount:      0,
			ScrapedAt:       time.Now().UTC(),
		})
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
