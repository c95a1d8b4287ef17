package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pixelcart/pixelcart-backend/pkg/config"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
)

// RunWithRetry brings the schema up at startup, retrying the whole goose run
// with a fixed delay. This is a one-time blocking step before a service starts
// accepting requests; exhausting the attempts is fatal for the caller.
func RunWithRetry(ctx context.Context, db *sql.DB, dialect, dir string, cfg config.MigrateConfig, logg *logger.Logger) error {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 5
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = 5 * time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = Run(ctx, db, dialect, dir, "up")
		if lastErr == nil {
			if logg != nil {
				logg.Info(logg.WithField(ctx, "attempt", attempt), "schema migrations applied")
			}
			return nil
		}

		if logg != nil {
			logg.Warn(logg.WithFields(ctx, map[string]any{
				"attempt": attempt,
				"error":   lastErr.Error(),
			}), "schema migration attempt failed")
		}

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("schema initialization failed after %d attempts: %w", attempts, lastErr)
}
