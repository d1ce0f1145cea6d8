package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/session"
	"github.com/rohithprakash15/dripadvisor/internal/state"
)

const (
	defaultRefreshInterval = 30 * time.Second
	maxBackoff             = 5 * time.Minute
)

// StartRefresher launches a background goroutine that keeps the wardrobe
// mirror fresh. It returns immediately. While the session is signed out the
// refresher idles at the base interval without touching the network, and
// repeated failures back the cadence off exponentially.
func StartRefresher(ctx context.Context, store *state.Store, client *advisor.Client, sess *session.Store, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		for {
			wait := interval
			if sess.Active() {
				refresh(ctx, store, client)
				snap := store.Snapshot()
				if snap.LastError != nil {
					logger.Debug().Err(snap.LastError).Int("consecutive_failures", snap.ConsecutiveFailures).Msg("wardrobe refresh failed")
				}
				wait = calculateBackoff(snap.ConsecutiveFailures, interval)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client *advisor.Client) {
	items, err := client.Wardrobe(ctx)
	if err != nil {
		store.Update(nil, err)
		return
	}
	store.Update(items, nil)
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures returns the base interval unchanged.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
