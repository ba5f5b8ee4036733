package app

import (
	"context"
	"log"
	"time"

	"github.com/cmags/zoneclock/internal/state"
	"github.com/cmags/zoneclock/internal/timeapi"
)

const (
	refreshCheckInterval = time.Hour
	connectivityInterval = 30 * time.Second
	pingTimeout          = 5 * time.Second
)

// StartPoller launches the background goroutines: an hourly staleness
// check and a connectivity watcher that flips the controller's offline
// flag. It returns immediately.
func StartPoller(ctx context.Context, controller *state.Controller, client *timeapi.Client) {
	go func() {
		ticker := time.NewTicker(refreshCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if _, err := controller.RefreshIfNeeded(ctx, false); err != nil {
				log.Printf("periodic refresh failed: %v", err)
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(connectivityInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			online := client.Ping(pingCtx) == nil
			cancel()
			if err := controller.SetOnline(ctx, online); err != nil {
				log.Printf("post-reconnect refresh failed: %v", err)
			}
		}
	}()
}
