// Package migrator is the executable migration runner SPEC_FULL.md §4.9
// supplements spec.md with: it accumulates the registered step schemas
// newer than a persisted version, runs them through pkg/sqlplan, executes
// the resulting statements against a live connection, and records the new
// version in a bookkeeping table it manages itself. pkg/schema and
// pkg/sqlplan stay pure model/planner code with no I/O; this package is the
// one place that opens a transaction.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/schemex/schemex/internal/dberrors"
	"github.com/schemex/schemex/pkg/schema"
	"github.com/schemex/schemex/pkg/sqlplan"
)

// Execer is the slice of pkg/driver.Driver the runner actually needs,
// accepted as an interface so tests can exercise Runner against a fake
// without opening a real connection.
type Execer interface {
	Exec(ctx context.Context, stmt string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Begin(ctx context.Context) (*sql.Tx, error)
}

// AppliedVersion is the persisted-state record spec.md §6 names: the latest
// successfully-applied version, plus when it was applied.
type AppliedVersion struct {
	Version   int
	AppliedAt time.Time
}

// Runner applies a registered sequence of versioned step schemas in order.
type Runner struct {
	db      Execer
	dialect sqlplan.Dialect
	table   string
	steps   []*schema.Schema
	handler *dberrors.Handler
}

// New builds a Runner against db, targeting dialect, with the bookkeeping
// table named table (callers normally pass config.Settings.MigrationTable).
// steps is the full registered set of versioned diffs the embedding
// application has declared, in any order; Pending and Up sort them by
// version themselves.
func New(db Execer, dialect sqlplan.Dialect, table string, steps ...*schema.Schema) *Runner {
	if table == "" {
		table = "schema_migrations"
	}
	return &Runner{
		db:      db,
		dialect: dialect,
		table:   table,
		steps:   steps,
		handler: dberrors.NewHandler(false),
	}
}

// Handler exposes the runner's error handler so a caller can register
// reporters (internal/logging, or anything else wired in) before calling Up.
func (r *Runner) Handler() *dberrors.Handler { return r.handler }

// Pending returns the registered step schemas whose version exceeds
// current, sorted ascending by version.
func (r *Runner) Pending(current int) []*schema.Schema {
	var out []*schema.Schema
	for _, s := range r.steps {
		if s.Version > current {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// Up accumulates every pending step into a running schema, traces foreign
// keys, plans the resulting SQL per step, executes each step's statements
// in its own transaction, and records the new version in the bookkeeping
// table. It returns the version reached and the full statement stream
// executed, for logging/dry-run purposes.
//
// A step's statements execute together or not at all; a failure mid-way
// through the pending set leaves the bookkeeping table at the last
// successfully applied step's version, so a retried Up resumes from there
// rather than re-running already-applied steps.
func (r *Runner) Up(ctx context.Context, current int) (applied int, allStmts []string, err error) {
	pending := r.Pending(current)
	if len(pending) == 0 {
		return current, nil, nil
	}

	running := schema.NewSchemaVersion("", current)
	applied = current

	for _, step := range pending {
		if err := schema.SchemaAccumulate(running, step); err != nil {
			rec := r.handler.Handle(err)
			return applied, allStmts, dberrors.NewMigrationError(step.Version, "accumulate", fmt.Errorf("%s: %w", rec.Message, err))
		}
		if err := schema.TraceForeign(running); err != nil {
			rec := r.handler.Handle(err)
			return applied, allStmts, dberrors.NewMigrationError(step.Version, "trace", fmt.Errorf("%s: %w", rec.Message, err))
		}

		stmts, err := sqlplan.Plan(step, running, r.dialect)
		if err != nil {
			rec := r.handler.Handle(err)
			return applied, allStmts, dberrors.NewMigrationError(step.Version, "plan", fmt.Errorf("%s: %w", rec.Message, err))
		}

		if err := r.execStep(ctx, step.Version, stmts); err != nil {
			return applied, allStmts, err
		}

		allStmts = append(allStmts, stmts...)
		applied = step.Version
	}

	return applied, allStmts, nil
}

// execStep runs stmts and records version inside one transaction, so a
// mid-step failure never leaves the bookkeeping table pointing at a
// version whose DDL only partially applied.
func (r *Runner) execStep(ctx context.Context, version int, stmts []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dberrors.NewMigrationError(version, "begin", err)
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			rec := r.handler.Handle(err)
			return dberrors.NewMigrationError(version, "exec", fmt.Errorf("%s: %w", rec.Message, err))
		}
	}

	if _, err := tx.ExecContext(ctx, r.insertVersionSQL(), version, nowFunc()); err != nil {
		tx.Rollback()
		return dberrors.NewMigrationError(version, "record-version", err)
	}

	if err := tx.Commit(); err != nil {
		return dberrors.NewMigrationError(version, "commit", err)
	}
	return nil
}

// nowFunc is a seam so tests can stub the applied_at timestamp.
var nowFunc = time.Now
