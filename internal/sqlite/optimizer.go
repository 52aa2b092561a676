package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/fitnesspro/internal/errors"
)

// runOptimizer runs PRAGMA optimize at start and then every interval until ctx is done.
// See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) runOptimizer(ctx context.Context, interval time.Duration) {
	// 0x10002 also analyzes tables that have never been analyzed.
	db.optimize(ctx, "PRAGMA optimize = 0x10002")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.optimize(ctx, "PRAGMA optimize")
		}
	}
}

func (db *Database) optimize(ctx context.Context, pragma string) {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, pragma); err != nil {
		if ctx.Err() == nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "optimize database failed", errors.SlogError(err))
		}
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database", slog.Duration("duration", time.Since(start)))
}
