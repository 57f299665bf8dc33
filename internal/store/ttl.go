package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartSweeper drops idle sessions every interval until ctx is cancelled.
func StartSweeper(ctx context.Context, st Store, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		log.Info().Dur("interval", interval).Dur("ttl", ttl).Msg("session sweeper started")
		for {
			select {
			case <-ticker.C:
				sweep(ctx, st, ttl)
			case <-ctx.Done():
				log.Info().AnErr("reason", ctx.Err()).Msg("session sweeper stopping")
				return
			}
		}
	}()
}

func sweep(ctx context.Context, st Store, ttl time.Duration) {
	n, err := st.Expire(ctx, ttl)
	if err != nil {
		log.Warn().Err(err).Msg("expire sessions")
	}
	if n > 0 {
		log.Info().Int("expired", n).Int("live", st.Len()).Msg("expired idle sessions")
	}
}
