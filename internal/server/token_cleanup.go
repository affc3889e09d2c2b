package server

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TokenCleaner deletes refresh tokens that can no longer be exchanged.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// runTokenCleanup purges dead refresh tokens once at startup and then on
// every tick until ctx is cancelled.
func runTokenCleanup(ctx context.Context, cleaner TokenCleaner, interval time.Duration, lgr zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		removed, err := cleaner.CleanupExpiredTokens(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			lgr.Error().Err(err).Msg("Refresh token cleanup failed")
		case removed > 0:
			lgr.Info().Int64("removed", removed).Msg("Expired refresh tokens removed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
