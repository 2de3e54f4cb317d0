package app

import (
	"context"
	"time"
)

// StartScheduler launches the background overview refresh loop and
// performs the initial fetch so the cache is warm before the first
// request. It returns once the initial refresh finishes.
func (a *App) StartScheduler(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.schedulerCancel = cancel

	if err := a.RefreshOverview(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("Initial market refresh failed")
	}

	go a.runScheduler(ctx, a.Config.Market.GetRefreshInterval())
}

// runScheduler refreshes the cached overview on a fixed interval until
// the context is cancelled.
func (a *App) runScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.Logger.Info().Dur("interval", interval).Msg("Market refresh scheduler started")

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info().Msg("Market refresh scheduler stopped")
			return
		case <-ticker.C:
			start := time.Now()
			if err := a.RefreshOverview(ctx); err != nil {
				a.Logger.Warn().Err(err).Msg("Market refresh failed")
				continue
			}
			a.Logger.Debug().Dur("elapsed", time.Since(start)).Msg("Market refresh complete")
		}
	}
}
