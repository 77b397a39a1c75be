package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"cartelera-server/internal/ranking"
)

// StartRankingRecalc rebuilds all aggregated scores on a fixed interval.
// Runs once shortly after startup so a fresh deployment ranks immediately.
func StartRankingRecalc(ctx context.Context, svc *ranking.Service, interval time.Duration) {
	go func() {
		t := time.NewTimer(10 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n, err := svc.RecalculateAll(ctx, time.Now().UTC()); err != nil {
					log.Error().Err(err).Msg("ranking recalc job failed")
				} else {
					log.Info().Int("processed", n).Msg("ranking recalc job completed")
				}
				t.Reset(interval)
			}
		}
	}()
}
