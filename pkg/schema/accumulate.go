package schema

import "fmt"

// TableAccumulate folds a step table's column records into a base table,
// classifying each step column by invariant 3 and acting on the base:
//
//   - ALTER  (Changed set, Name present): locate the base column by name,
//     replace it in place with the step column (stealing ownership).
//   - DROP   (Name empty): locate the base column by the step column's
//     OldName, replace it in place with the tombstone.
//   - RENAME (both names set): locate the live base column by OldName and
//     rename it in place (SetOldName to the name it just had, SetName to
//     the step's new name), rather than replacing it with a separate
//     tombstone. The column stays live under its new name, and still
//     carries one hop of history on OldName. A reference resolved between
//     this rename and the next (TraceForeign runs after every step) has
//     its Foreign.Column rewritten to the new name immediately, so the
//     next rename only ever has to account for one hop of history — chains
//     of any length resolve a step at a time rather than needing the full
//     history preserved on a single record.
//   - ADD    (neither): append the step column as a new live entry. If the
//     name collides with an entry already live under that name, the guard
//     depends on how that entry got there: a genuine duplicate (never
//     renamed) is rejected with ErrNameCollision, but an entry that is only
//     live because an earlier rename moved it onto this name gets flagged
//     Ignore instead — the new column supersedes it, and any reference
//     still chasing the old name through the rename chain (trace.go) must
//     come back unresolved rather than silently land on the new column.
//
// The step table's own Columns are left untouched (Go's garbage collector
// is the "caller frees the source container" story from the concurrency
// model — see §5 in SPEC_FULL.md); base.Columns is mutated in place,
// ready for the next accumulation, and only an error is returned.
func TableAccumulate(base, step *Table) error {
	for _, stepCol := range step.Columns.Entries() {
		if stepCol == nil {
			continue
		}
		switch {
		case stepCol.IsAlter():
			baseCol, idx := base.Columns.Find(stepCol.Name())
			if baseCol == nil {
				return fmt.Errorf("%w: column %q in table %q", ErrEntryNotFound, stepCol.Name(), base.Name())
			}
			base.Columns.ReplaceAt(idx, stepCol)
			base.Set(Changed)

		case stepCol.IsDrop():
			baseCol, idx := base.Columns.Find(stepCol.OldName())
			if baseCol == nil {
				return fmt.Errorf("%w: column %q in table %q", ErrEntryNotFound, stepCol.OldName(), base.Name())
			}
			base.Columns.ReplaceAt(idx, stepCol)
			base.Set(Changed)

		case stepCol.IsRename():
			baseCol, _ := base.Columns.Find(stepCol.OldName())
			if baseCol == nil {
				return fmt.Errorf("%w: column %q in table %q", ErrEntryNotFound, stepCol.OldName(), base.Name())
			}
			if collide, _ := base.Columns.Find(stepCol.Name()); collide != nil && collide != baseCol {
				return fmt.Errorf("%w: column %q in table %q", ErrNameCollision, stepCol.Name(), base.Name())
			}
			baseCol.SetOldName(baseCol.Name())
			baseCol.SetName(stepCol.Name())
			base.Columns.sorted = false
			baseCol.Set(Renamed)
			base.Set(Changed)
			base.Set(Renamed)

		default: // ADD
			if collide, _ := base.Columns.Find(stepCol.Name()); collide != nil {
				if collide.OldName() == "" {
					return fmt.Errorf("%w: column %q in table %q", ErrNameCollision, stepCol.Name(), base.Name())
				}
				// collide is live only because an earlier step renamed it
				// to this name; the new column takes the name over, so any
				// reference still chasing the rename chain toward collide
				// must report unresolved rather than land on this ADD.
				collide.Set(Ignore)
			}
			base.Columns.Append(stepCol)
			if stepCol.Has(Constraint) || len(stepCol.Composite) > 0 {
				base.Set(Changed)
			}
		}
	}
	return nil
}

// SchemaAccumulate folds a step schema's table records into a base schema,
// mirroring TableAccumulate at table granularity, then runs TraceForeign
// over every foreign-key column in the result and compacts stolen slots.
//
// Every table touched by an ADD or ALTER record has its secondary FK index
// rebuilt immediately, for the planner's table ordering (sqlplan). The
// index is not used by TraceForeign, which scans every column itself.
func SchemaAccumulate(base, step *Schema) error {
	for _, stepTable := range step.Tables.Entries() {
		if stepTable == nil {
			continue
		}
		switch {
		case stepTable.IsAlter():
			baseTable, idx := base.Tables.Find(stepTable.Name())
			if baseTable == nil {
				return fmt.Errorf("%w: table %q", ErrEntryNotFound, stepTable.Name())
			}
			if err := TableAccumulate(baseTable, stepTable); err != nil {
				return err
			}
			// "recently altered" tables move to the tail of the base list.
			// The next Find re-sorts the list by name, so this order does
			// not last; sqlplan.Plan takes its emission order from the
			// step schema, not from this list.
			base.Tables.Steal(idx)
			base.Tables.Append(baseTable)
			baseTable.rebuildForeignIndex()

		case stepTable.IsDrop():
			_, idx := base.Tables.Find(stepTable.OldName())
			if idx < 0 {
				return fmt.Errorf("%w: table %q", ErrEntryNotFound, stepTable.OldName())
			}
			base.Tables.ReplaceAt(idx, stepTable)

		case stepTable.IsRename():
			baseTable, _ := base.Tables.Find(stepTable.OldName())
			if baseTable == nil {
				return fmt.Errorf("%w: table %q", ErrEntryNotFound, stepTable.OldName())
			}
			if collide, _ := base.Tables.Find(stepTable.Name()); collide != nil && collide != baseTable {
				return fmt.Errorf("%w: table %q", ErrNameCollision, stepTable.Name())
			}
			baseTable.SetOldName(baseTable.Name())
			baseTable.SetName(stepTable.Name())
			base.Tables.sorted = false
			baseTable.Set(Renamed)

		default: // ADD
			if collide, _ := base.Tables.Find(stepTable.Name()); collide != nil {
				if collide.OldName() == "" {
					return fmt.Errorf("%w: table %q", ErrNameCollision, stepTable.Name())
				}
				// collide is live only because an earlier step renamed it
				// to this name; the new table takes the name over, so any
				// reference still chasing the rename chain toward collide
				// must report unresolved rather than land on this ADD.
				collide.Set(Ignore)
			}
			base.Tables.Append(stepTable)
			stepTable.rebuildForeignIndex()
		}
	}

	base.Version = step.Version

	if err := TraceForeign(base); err != nil {
		return err
	}

	base.Tables.CompactNulls(base.offset)
	for _, t := range base.Tables.Entries() {
		if t == nil {
			continue
		}
		t.Columns.CompactNulls(t.offset)
		t.offset = t.Columns.Len()
	}
	base.offset = base.Tables.Len()

	return nil
}
