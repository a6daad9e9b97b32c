package app

import (
	"context"
	"log"
	"time"
)

// Refresher is the part of the controller the poller drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StartPoller launches a background goroutine that re-lists the collection
// at a fixed cadence. A non-positive interval disables it. It returns
// immediately. A failed poll is recorded in the store like any refresh and
// polling continues at the same cadence.
func StartPoller(ctx context.Context, r Refresher, interval time.Duration) {
	if interval <= 0 {
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
				if err := r.Refresh(ctx); err != nil {
					log.Printf("poll refresh failed: %v", err)
				}
			}
		}
	}()
}
