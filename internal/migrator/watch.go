package migrator

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/schemex/schemex/internal/logging"
)

// Watch polls for pending migrations on a cron schedule and applies them
// as they appear, the same scheduling idiom the teacher's task scheduler
// builds its cron.Cron around: seconds-resolution parsing, a fixed UTC
// location, panic recovery, and skip-if-still-running so a slow Up never
// stacks concurrent runs against the same bookkeeping table.
//
// currentVersion is called once per tick to read the version to migrate
// from — callers that track their own applied version (rather than relying
// on CurrentVersion) can supply their own reader here. Watch returns a stop
// func that halts the schedule; the caller is responsible for calling it
// during shutdown.
func (r *Runner) Watch(ctx context.Context, spec string, currentVersion func(context.Context) (int, error), logger logging.Logger) (stop func(), err error) {
	if currentVersion == nil {
		currentVersion = r.CurrentVersion
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	_, err = c.AddFunc(spec, func() {
		current, err := currentVersion(ctx)
		if err != nil {
			if logger != nil {
				logger.Error("migrator: reading current version", map[string]interface{}{"error": err.Error()})
			}
			return
		}

		runCtx := logging.WithMigrationVersion(ctx, current)
		applied, stmts, err := r.Up(runCtx, current)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(runCtx, "migrator: scheduled migration failed", map[string]interface{}{
					"error":   err.Error(),
					"applied": applied,
				})
			}
			return
		}
		if len(stmts) > 0 && logger != nil {
			logger.InfoContext(logging.WithMigrationVersion(ctx, applied), "migrator: applied pending migrations", map[string]interface{}{
				"applied": applied,
				"count":   len(stmts),
			})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("migrator: invalid schedule %q: %w", spec, err)
	}

	c.Start()
	return func() { <-c.Stop().Done() }, nil
}
