package schema

import "sync/atomic"

const schemaInitialVersion = 1

var versionCounter int64

// nextVersion hands out a monotonically increasing default version, mirroring
// sq_schema_new's static version counter: each call to NewSchema without an
// explicit version represents one more migration step authored in process
// order.
func nextVersion() int {
	return int(atomic.AddInt64(&versionCounter, 1)-1) + schemaInitialVersion
}

// Schema is one database version: a Reentry (name/bit-field — schemas are
// never themselves renamed or dropped, but share the header for symmetry
// with Table) owning a Type of Tables, a monotonic version number, and an
// offset watermark.
type Schema struct {
	Reentry

	Tables  *Type[*Table]
	Version int

	offset int
}

// NewSchema creates an empty schema with the next default version.
func NewSchema(name string) *Schema {
	s := &Schema{Tables: NewType[*Table](true), Version: nextVersion()}
	s.SetName(name)
	s.Set(Dynamic)
	return s
}

// NewSchemaVersion creates an empty schema pinned to an explicit version,
// for callers (e.g. the migrator) that persist and restore version numbers
// rather than relying on process-order allocation.
func NewSchemaVersion(name string, version int) *Schema {
	s := &Schema{Tables: NewType[*Table](true), Version: version}
	s.SetName(name)
	s.Set(Dynamic)
	return s
}

// CreateTable appends a live (ADD) table record.
func (s *Schema) CreateTable(t *Table) *Table {
	s.Tables.Append(t)
	return t
}

// AlterTable appends a fresh, empty ALTER record for the named table; the
// caller adds only the columns that change.
func (s *Schema) AlterTable(name string) *Table {
	t := &Table{Columns: NewType[*Column](true)}
	t.SetName(name)
	t.Set(Dynamic)
	t.Set(Changed)
	s.Tables.Append(t)
	return t
}

// DropTable appends a DROP tombstone for the named table.
func (s *Schema) DropTable(name string) {
	t := &Table{Columns: NewType[*Column](true)}
	t.SetOldName(name)
	t.Set(Dynamic)
	s.Tables.Append(t)
}

// RenameTable appends a RENAME tombstone.
func (s *Schema) RenameTable(from, to string) {
	t := &Table{Columns: NewType[*Column](true)}
	t.SetOldName(from)
	t.SetName(to)
	t.Set(Dynamic)
	t.Set(Renamed)
	s.Tables.Append(t)
}

// Find returns the live table of the given name, or nil.
func (s *Schema) Find(name string) *Table {
	t, _ := s.Tables.Find(name)
	return t
}

// HasTable reports whether a live table of the given name exists.
func (s *Schema) HasTable(name string) bool {
	return s.Find(name) != nil
}
