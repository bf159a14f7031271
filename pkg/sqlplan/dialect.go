// Package sqlplan turns an accumulated, traced schema into a vendor-aware
// SQL statement stream: it orders CREATE TABLE emission around foreign-key
// dependencies, defers cycles to follow-up ALTER statements, and branches
// column/constraint serialization on a dialect's capability flags.
package sqlplan

// Dialect is a vendor capability descriptor, mirroring the product
// descriptor the planner consults in the source (product id, use_alter,
// use_modify, has_boolean, identifier-quote style) and the teacher's
// SQLGenerator.SupportsFeature switch.
type Dialect struct {
	Name string

	// UseAlter selects "ALTER TABLE t ALTER COLUMN c ..." for a column
	// CHANGED record (PostgreSQL).
	UseAlter bool
	// UseModify selects "ALTER TABLE t MODIFY COLUMN c ..." (MySQL). A
	// dialect with neither flag set cannot express a column type change;
	// the planner reports ErrNotSupport.
	UseModify bool
	// HasBoolean selects a native BOOLEAN type for schema.KindBool;
	// otherwise TINYINT is emitted (MySQL's historical convention).
	HasBoolean bool
	// RenameTableStatement selects MySQL's dedicated "RENAME TABLE a TO b"
	// over the ANSI-ish "ALTER TABLE a RENAME TO b" every other dialect
	// here accepts.
	RenameTableStatement bool
	// DefaultStringLength is the VARCHAR length used when a string column
	// declares none, mirroring DEFAULT_STRING_LENGTH in the source.
	DefaultStringLength int
}

// SQLite targets the embedded, single-file engine: no ALTER COLUMN/MODIFY
// COLUMN support (a column type change is NOT_SUPPORT), no native boolean,
// and the ANSI rename-table form.
var SQLite = Dialect{
	Name:                 "sqlite",
	UseAlter:             false,
	UseModify:            false,
	HasBoolean:           false,
	RenameTableStatement: false,
	DefaultStringLength:  191,
}

// MySQL supports MODIFY COLUMN, has no native boolean (TINYINT), and its
// own RENAME TABLE statement.
var MySQL = Dialect{
	Name:                 "mysql",
	UseAlter:             false,
	UseModify:            true,
	HasBoolean:           false,
	RenameTableStatement: true,
	DefaultStringLength:  191,
}

// Postgres supports ALTER COLUMN, has a native boolean type, and the ANSI
// rename-table form.
var Postgres = Dialect{
	Name:                 "postgres",
	UseAlter:             true,
	UseModify:            false,
	HasBoolean:           true,
	RenameTableStatement: false,
	DefaultStringLength:  191,
}
