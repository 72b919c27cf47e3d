package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Watch pings the store every interval until ctx is done, logging when it
// becomes unreachable and when it comes back.
func Watch(ctx context.Context, s Store, every time.Duration, log zerolog.Logger) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	down := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		pctx, cancel := context.WithTimeout(ctx, every)
		err := s.Ping(pctx)
		cancel()
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil && !down:
			log.Warn().Err(err).Msg("store unreachable")
			down = true
		case err == nil && down:
			log.Info().Msg("store reachable again")
			down = false
		}
	}
}
