package migrator

import (
	"context"
	"fmt"

	"github.com/schemex/schemex/pkg/schema"
	"github.com/schemex/schemex/pkg/sqlplan"
)

// quoteIdent matches the double-quoted identifier convention spec.md §6
// fixes for every generated statement.
func quoteIdent(name string) string { return `"` + name + `"` }

// bookkeepingTable builds the schema.Table describing the version-tracking
// table EnsureBookkeeping creates: an auto-increment id, the applied
// version, and the timestamp it was applied at — the Go-side shape of
// AppliedVersion.
func (r *Runner) bookkeepingTable() *schema.Table {
	t := schema.NewTable(r.table)
	t.AddInt("id").Primary().AutoIncr()
	t.AddInt("version").NotNull()
	t.AddTimestamp("applied_at").CurrentTimestamp()
	return t
}

// EnsureBookkeeping creates the bookkeeping table if it doesn't already
// exist, planning its own CREATE TABLE statement the same way any other
// table in this module is planned — the bookkeeping table is just another
// schema.Table, not a hand-written migration of its own.
func (r *Runner) EnsureBookkeeping(ctx context.Context) error {
	exists, err := r.tableExists(ctx)
	if err != nil {
		return fmt.Errorf("migrator: checking bookkeeping table: %w", err)
	}
	if exists {
		return nil
	}

	step := schema.NewSchemaVersion("bookkeeping", 0)
	step.CreateTable(r.bookkeepingTable())
	running := schema.NewSchema("bookkeeping")
	if err := schema.SchemaAccumulate(running, step); err != nil {
		return fmt.Errorf("migrator: accumulating bookkeeping schema: %w", err)
	}

	stmts, err := sqlplan.Plan(step, running, r.dialect)
	if err != nil {
		return fmt.Errorf("migrator: planning bookkeeping table: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrator: creating bookkeeping table: %w", err)
		}
	}
	return nil
}

// tableExists probes for the bookkeeping table with a cheap SELECT rather
// than querying each dialect's information_schema separately — one query
// shape that works identically against MySQL, PostgreSQL and SQLite.
func (r *Runner) tableExists(ctx context.Context) (bool, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", quoteIdent(r.table)))
	if err != nil {
		return false, nil
	}
	defer rows.Close()
	return true, nil
}

// insertVersionSQL is the parameterized INSERT execStep runs inside each
// step's transaction to record that version as applied.
func (r *Runner) insertVersionSQL() string {
	return fmt.Sprintf("INSERT INTO %s (version, applied_at) VALUES (?, ?)", quoteIdent(r.table))
}

// CurrentVersion reads the highest version recorded in the bookkeeping
// table, or 0 if none has been applied yet. Callers that persist the
// version themselves (spec.md §6's "the embedding application... stores
// the latest successfully-applied version") can use this instead, or feed
// their own stored value straight into Up.
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(
		"SELECT version FROM %s ORDER BY version DESC LIMIT 1", quoteIdent(r.table)))
	if err != nil {
		return 0, fmt.Errorf("migrator: reading current version: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, rows.Err()
	}
	var version int
	if err := rows.Scan(&version); err != nil {
		return 0, fmt.Errorf("migrator: scanning current version: %w", err)
	}
	return version, rows.Err()
}
