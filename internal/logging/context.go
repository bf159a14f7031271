package logging

import "context"

// contextKey namespaces the values this package stashes on a context.Context
// so they never collide with a caller's own keys, the idiomatic alternative
// to the teacher's raw string keys (request_id, user_id, ...) now that the
// keys carried are migration-run metadata rather than HTTP request metadata.
type contextKey int

const (
	migrationVersionKey contextKey = iota
	stepIndexKey
	tableKey
	statementIndexKey
)

// WithMigrationVersion attaches the schema version a migration run is
// currently targeting, surfaced by every context-aware log call made while
// that run is in flight.
func WithMigrationVersion(ctx context.Context, version int) context.Context {
	return context.WithValue(ctx, migrationVersionKey, version)
}

// WithStep attaches the index of the migration step currently being
// accumulated or applied.
func WithStep(ctx context.Context, step int) context.Context {
	return context.WithValue(ctx, stepIndexKey, step)
}

// WithTable attaches the name of the table a step or statement acts on.
func WithTable(ctx context.Context, table string) context.Context {
	return context.WithValue(ctx, tableKey, table)
}

// WithStatementIndex attaches the position of a statement within the SQL
// plan currently being executed, letting a failed Exec be pinned to the
// exact statement that produced it.
func WithStatementIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, statementIndexKey, index)
}
