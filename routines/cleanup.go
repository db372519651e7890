package routines

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Expirer drops sessions whose expiry is not after the given time.
type Expirer interface {
	ExpireBefore(t time.Time) (int, error)
}

// StartCleanupRoutine sweeps once immediately and then on every tick until
// ctx is done.
func StartCleanupRoutine(ctx context.Context, store Expirer, interval time.Duration, logger *zap.Logger) {
	cleanupRoutine(store, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupRoutine(store, logger)
		}
	}
}

func cleanupRoutine(store Expirer, logger *zap.Logger) {
	n, err := store.ExpireBefore(time.Now())
	if err != nil {
		logger.Error("session cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("expired form sessions", zap.Int("count", n))
	}
}
