package schema

import "fmt"

// TraceForeign resolves every foreign-key column's reference to its current
// live name, following tables and columns through any number of renames and
// detecting drops.
//
// The source bounds this scan by a per-table/per-schema offset watermark so
// that only entries recorded since the last trace need rescanning (§4.7,
// "O(changes) rather than O(total entries)"). This implementation instead
// rescans every table and every column from the start on each call. Bounding
// the scan by the watermark is unsound here: a foreign-key column added in a
// later accumulation step can reference a name that was renamed in an
// earlier step, and by the time that rename runs the table's watermark may
// already have advanced past the rename record (the watermark is refreshed
// after every accumulation, whether or not that step touched foreign keys).
// A full scan trades the optimization for guaranteed correctness; offset is
// kept on Table and Schema for data-model fidelity and is not load-bearing
// here.
func TraceForeign(s *Schema) error {
	for _, t := range s.Tables.Entries() {
		if t == nil {
			continue
		}
		for _, c := range t.Columns.Entries() {
			if c == nil || c.Foreign == nil {
				continue
			}
			if err := traceForeignColumn(s, t, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// traceForeignColumn resolves one column's Foreign.Table and Foreign.Column
// to their current live names, walking a chain of rename tombstones and
// erroring if the chain ends in a drop.
func traceForeignColumn(s *Schema, owner *Table, c *Column) error {
	refTable, err := resolveTableName(s, c.Foreign.Table)
	if err != nil {
		return fmt.Errorf("foreign key %s.%s -> %s: %w", owner.Name(), c.Name(), c.Foreign.Table, err)
	}
	c.Foreign.Table = refTable

	target := s.Find(refTable)
	if target == nil {
		return fmt.Errorf("%w: referenced table %q", ErrEntryNotFound, refTable)
	}

	refColumn, err := resolveColumnName(target, c.Foreign.Column)
	if err != nil {
		return fmt.Errorf("foreign key %s.%s -> %s.%s: %w", owner.Name(), c.Name(), refTable, c.Foreign.Column, err)
	}
	c.Foreign.Column = refColumn

	return nil
}

// resolveTableName follows a chain of table rename tombstones in s starting
// from name, returning the final live name.
func resolveTableName(s *Schema, name string) (string, error) {
	seen := map[string]bool{}
	for {
		if live := s.Find(name); live != nil {
			return name, nil
		}
		tomb, _ := s.Tables.FindByOldName(name)
		if tomb == nil {
			return "", ErrEntryNotFound
		}
		if tomb.Name() == "" {
			return "", ErrReentryDropped
		}
		if tomb.Has(Ignore) {
			return "", ErrEntryNotFound
		}
		if seen[tomb.Name()] {
			return "", fmt.Errorf("%w: rename cycle at %q", ErrEntryNotFound, tomb.Name())
		}
		seen[tomb.Name()] = true
		name = tomb.Name()
	}
}

// resolveColumnName follows a chain of column rename tombstones in t
// starting from name, returning the final live name.
func resolveColumnName(t *Table, name string) (string, error) {
	seen := map[string]bool{}
	for {
		if live := t.GetColumn(name); live != nil {
			return name, nil
		}
		tomb, _ := t.Columns.FindByOldName(name)
		if tomb == nil {
			return "", ErrEntryNotFound
		}
		if tomb.Name() == "" {
			return "", ErrReentryDropped
		}
		if tomb.Has(Ignore) {
			return "", ErrEntryNotFound
		}
		if seen[tomb.Name()] {
			return "", fmt.Errorf("%w: rename cycle at %q", ErrEntryNotFound, tomb.Name())
		}
		seen[tomb.Name()] = true
		name = tomb.Name()
	}
}
