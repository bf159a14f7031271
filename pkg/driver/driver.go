// Package driver is the external database-driver abstraction named in
// spec.md §6: a product id, the same capability flags pkg/sqlplan.Dialect
// already encodes, and the Open/Close/Exec operations against a live
// connection. Driver has no Migrate method; applying a migration is done by
// internal/migrator's Runner. The core itself never imports
// this package — pkg/schema and pkg/sqlplan only produce a model and a
// statement stream; this is where a statement stream meets a database.
//
// Grounded in the teacher's internal/database/connection.go (a thin *sql.DB
// wrapper with blank driver imports for MySQL/PostgreSQL/SQLite), trimmed
// of the query-builder surface that package owned (that's an explicit
// Non-goal here — see DESIGN.md) down to exactly the open/close/exec shape
// spec.md §6 asks for.
package driver

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/schemex/schemex/pkg/sqlplan"
)

// Driver is a live connection plus the vendor capability descriptor the
// planner needs to target it. It is the concrete collaborator spec.md §6
// describes: "open(name), close, exec(sql, converter, reserve),
// migrate(cur_schema, next_schema)". Exec/Migrate here are Go-shaped: Exec
// takes a context and returns the underlying driver result so a caller can
// inspect rows affected / last insert id; Migrate is left to
// internal/migrator, which is the one place that knows how to turn a
// planned statement stream into a transaction.
type Driver struct {
	Product string
	Dialect sqlplan.Dialect
	conn    *sql.DB
}

// Open dials driverName (one of "mysql", "postgres", "sqlite3") against dsn
// and verifies the connection with a ping, mirroring
// database.NewDB's open-then-ping sequence.
func Open(driverName, dsn string) (*Driver, error) {
	dialect, ok := dialectFor(driverName)
	if !ok {
		return nil, fmt.Errorf("driver: unsupported driver %q", driverName)
	}
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("driver: open %s: %w", driverName, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("driver: ping %s: %w", driverName, err)
	}
	return &Driver{Product: driverName, Dialect: dialect, conn: conn}, nil
}

// OpenMySQL, OpenPostgres and OpenSQLite are the three concrete
// constructors SPEC_FULL.md §6 names, each pinned to its dialect so callers
// don't have to keep the driver-name/dialect mapping straight themselves.
func OpenMySQL(dsn string) (*Driver, error)    { return Open("mysql", dsn) }
func OpenPostgres(dsn string) (*Driver, error) { return Open("postgres", dsn) }
func OpenSQLite(dsn string) (*Driver, error)   { return Open("sqlite3", dsn) }

func dialectFor(driverName string) (sqlplan.Dialect, bool) {
	switch driverName {
	case "mysql":
		return sqlplan.MySQL, true
	case "postgres":
		return sqlplan.Postgres, true
	case "sqlite3":
		return sqlplan.SQLite, true
	default:
		return sqlplan.Dialect{}, false
	}
}

// DB exposes the underlying *sql.DB for callers (pkg/codec's scanner, a
// transaction-aware migrator) that need it directly.
func (d *Driver) DB() *sql.DB { return d.conn }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.conn.Close() }

// Exec runs one SQL statement outside a transaction. The core never calls
// this itself; internal/migrator uses it for the bookkeeping table's DDL,
// while a step's planned statements run on the *sql.Tx from Begin.
func (d *Driver) Exec(ctx context.Context, stmt string, args ...any) (sql.Result, error) {
	return d.conn.ExecContext(ctx, stmt, args...)
}

// Query runs a SQL query and returns the row cursor for pkg/codec to scan.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.conn.QueryContext(ctx, query, args...)
}

// Begin starts a transaction. internal/migrator opens one for every step,
// on every dialect; no setting turns this off.
func (d *Driver) Begin(ctx context.Context) (*sql.Tx, error) {
	return d.conn.BeginTx(ctx, nil)
}
