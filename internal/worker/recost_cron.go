package worker

// recost_cron.go
// Background goroutine that periodically enqueues a recost sweep so cached
// product costs drift no further than one interval from their inputs
// (history entries added with past effective dates, supplier quotes crossing
// their effective date, forecast projections moving with time).

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RecostCronConfig holds the dependencies for the sweep goroutine.
type RecostCronConfig struct {
	Dispatcher *Dispatcher
	Interval   time.Duration
}

// StartRecostCron launches a background goroutine that enqueues one sweep
// per interval. It respects the context for graceful shutdown.
func StartRecostCron(ctx context.Context, cfg RecostCronConfig) {
	if cfg.Interval <= 0 {
		log.Warn().Msg("recost_cron: disabled (non-positive interval)")
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("recost_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recost_cron: shutting down")
				return
			case <-ticker.C:
				if err := cfg.Dispatcher.EnqueueRecostSweep(ctx); err != nil {
					log.Error().Err(err).Msg("recost_cron: failed to enqueue sweep")
				}
			}
		}
	}()
}
