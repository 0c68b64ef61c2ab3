// AngelaMos | 2026
// connect.go

package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	pingTimeout      = 5 * time.Second
	connectAttempts  = 5
	connectBaseDelay = 500 * time.Millisecond
)

// waitReady pings a backing service until it answers, backing off
// between attempts. Compose starts the API alongside Postgres and Redis,
// so the first pings commonly fail.
func waitReady(ctx context.Context, name string, ping func(context.Context) error) error {
	delay := connectBaseDelay

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = pingWithTimeout(ctx, ping); err == nil {
			return nil
		}

		if attempt == connectAttempts {
			break
		}

		slog.Warn("backing service not ready",
			"service", name,
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for %s: %w", name, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("ping %s: %w", name, err)
}

func pingWithTimeout(ctx context.Context, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return ping(ctx)
}
