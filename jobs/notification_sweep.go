package jobs

import (
	"context"
	"log"
	"time"

	"schoolhub_backend/metrics"
)

// Sweeper deletes notifications past the retention horizon.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// StartNotificationSweep runs the retention sweep on a ticker until ctx is
// cancelled. Each tick gets its own timeout so a slow database never wedges
// the loop. The sweep is idempotent, so overlapping deployments running it
// concurrently are fine.
func StartNotificationSweep(ctx context.Context, store Sweeper, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
				deleted, err := store.SweepExpired(tickCtx, time.Now())
				cancel()
				if err != nil {
					log.Printf("notification sweep error: %v", err)
					continue
				}
				if deleted > 0 {
					metrics.NotificationsSwept.Add(float64(deleted))
					log.Printf("notification sweep deleted %d rows", deleted)
				}
			}
		}
	}()
}
