package schema

import (
	"fmt"
	"strings"
)

// Table is one SQL relation: a Reentry (name/old_name/bit-field) owning a
// Type of Columns, plus a secondary index of foreign-key-bearing columns
// maintained by SchemaAccumulate for the planner's table ordering, and an offset
// watermark (§9, "Watermark for rename tracing").
type Table struct {
	Reentry

	Columns *Type[*Column]

	foreignColumns []*Column
	offset         int
}

// NewTable creates an empty, dynamic (owned) table ready for column
// declarations.
func NewTable(name string) *Table {
	t := &Table{Columns: NewType[*Column](true)}
	t.SetName(name)
	t.Set(Dynamic)
	return t
}

func (t *Table) addColumn(c *Column) *Column {
	t.Columns.Append(c)
	return c
}

// Typed column constructors, mirroring sq_table_add_int/uint/int64/uint64/
// double/string/custom.

func (t *Table) AddInt(name string) *Column       { return t.addColumn(NewColumn(name, KindInt)) }
func (t *Table) AddUint(name string) *Column      { return t.addColumn(NewColumn(name, KindUint)) }
func (t *Table) AddInt64(name string) *Column     { return t.addColumn(NewColumn(name, KindInt64)) }
func (t *Table) AddUint64(name string) *Column    { return t.addColumn(NewColumn(name, KindUint64)) }
func (t *Table) AddDouble(name string) *Column    { return t.addColumn(NewColumn(name, KindDouble)) }
func (t *Table) AddBool(name string) *Column      { return t.addColumn(NewColumn(name, KindBool)) }
func (t *Table) AddString(name string) *Column    { return t.addColumn(NewColumn(name, KindString)) }
func (t *Table) AddTimestamp(name string) *Column { return t.addColumn(NewColumn(name, KindTime)) }
func (t *Table) AddCustom(name string, kind Kind) *Column {
	return t.addColumn(NewColumn(name, kind))
}

// AddForeign synthesizes a constraint-only column named
// "{table}_{column}_foreign" referencing refTable(refColumn), mirroring
// sq_table_add_foreign's generated name.
func (t *Table) AddForeign(column, refTable, refColumn string) *Column {
	name := fmt.Sprintf("%s_%s_foreign", t.Name(), column)
	c := NewColumn(name, KindInt)
	c.Set(Foreign)
	c.Set(Constraint)
	c.Composite = []string{column}
	c.Foreign = &ForeignRef{Table: refTable, Column: refColumn}
	return t.addColumn(c)
}

// AddUniqueIndex synthesizes a constraint-only column recording a composite
// UNIQUE index over the given columns, named "{table}_{col1}_{col2}..._unique",
// mirroring the naming convention AddForeign uses for synthesized FK columns.
func (t *Table) AddUniqueIndex(columns ...string) *Column {
	name := fmt.Sprintf("%s_%s_unique", t.Name(), strings.Join(columns, "_"))
	c := &Column{}
	c.SetName(name)
	c.Set(Dynamic)
	c.Set(Unique)
	c.Set(Constraint)
	c.Composite = append([]string(nil), columns...)
	return t.addColumn(c)
}

// DropForeign appends a tombstone dropping the foreign-key constraint
// synthesized by AddForeign for the given column.
func (t *Table) DropForeign(column string) *Column {
	name := fmt.Sprintf("%s_%s_foreign", t.Name(), column)
	c := &Column{}
	c.SetOldName(name)
	c.Set(Dynamic)
	c.Set(Foreign)
	return t.addColumn(c)
}

// DropColumn appends a DROP tombstone (name empty, old_name set).
func (t *Table) DropColumn(name string) *Column {
	c := &Column{}
	c.SetOldName(name)
	c.Set(Dynamic)
	return t.addColumn(c)
}

// RenameColumn appends a RENAME tombstone (both names set, Renamed bit).
func (t *Table) RenameColumn(from, to string) *Column {
	c := &Column{}
	c.SetOldName(from)
	c.SetName(to)
	c.Set(Dynamic)
	c.Set(Renamed)
	return t.addColumn(c)
}

// ModifyColumn appends an ALTER record: a column carrying its full new
// definition, with the Changed bit set, to be folded over the existing
// column of the same name by TableAccumulate.
func (t *Table) ModifyColumn(name string, kind Kind) *Column {
	c := NewColumn(name, kind)
	c.Set(Changed)
	return t.addColumn(c)
}

// HasColumn reports whether a live column of the given name exists.
func (t *Table) HasColumn(name string) bool {
	c, _ := t.Columns.Find(name)
	return c != nil
}

// GetColumn returns the live column of the given name, or nil.
func (t *Table) GetColumn(name string) *Column {
	c, _ := t.Columns.Find(name)
	return c
}

// GetPrimary returns the first integral column with the Primary bit set,
// matching sq_table_get_primary (used by dialects that need the
// auto-increment primary key singled out).
func (t *Table) GetPrimary() *Column {
	for _, c := range t.Columns.Entries() {
		if c == nil || c.Name() == "" {
			continue
		}
		if c.Has(Primary) && c.Kind.IsIntegral() {
			return c
		}
	}
	return nil
}

// GetForeigns appends every column carrying a foreign-key descriptor or the
// Foreign bit to out and returns the extended slice, matching
// sq_table_get_foreigns.
func (t *Table) GetForeigns(out []*Column) []*Column {
	for _, c := range t.Columns.Entries() {
		if c == nil || c.Name() == "" {
			continue
		}
		if c.Foreign != nil || c.Has(Foreign) {
			out = append(out, c)
		}
	}
	return out
}

// ForeignColumns returns the secondary FK index maintained by
// SchemaAccumulate: the working set the planner's table ordering consults
// without rescanning every column. TraceForeign does not use it.
func (t *Table) ForeignColumns() []*Column { return t.foreignColumns }

func (t *Table) rebuildForeignIndex() {
	t.foreignColumns = t.GetForeigns(t.foreignColumns[:0])
}
