package sqlplan

import (
	"fmt"
	"strings"

	"github.com/schemex/schemex/pkg/schema"
)

// pendingForeignKey is a foreign-key edge whose target table was still being
// checked for a cycle when its owning table was created (spec §4.8, table
// ordering). It is rendered as a trailing "ALTER TABLE ... ADD FOREIGN KEY"
// once every table involved in the cycle has been created.
type pendingForeignKey struct {
	table  *schema.Table
	column *schema.Column
}

// orderTables walks t's foreign-key edges, recursing into referenced tables
// that haven't been created yet so CREATE TABLE statements come out in an
// order a database that cannot forward-reference can execute directly. It
// returns the set of still-open ancestor tables (identified by a cycle
// found anywhere in t's subtree) so a caller higher up the recursion can
// also defer the edge that led it into that subtree — scenario 4 (spec.md
// §8) expects a mutual-reference cycle to leave FOREIGN KEY off of *both*
// CREATE TABLE statements, not just the one that closed the loop.
//
// A table already marked schema.SQLCreated is a no-op: that bit is never
// cleared once set, so it also means "this table already exists in the
// target database from an earlier Plan call" across migration steps, not
// just within a single call.
//
// A table marked schema.ReoChecking is an ancestor in the current recursion
// — referencing it (including self-reference) is the cycle case from
// spec §2/§4.8 ("self-referential or mutually-referential edges deferred to
// ALTER").
func orderTables(running *schema.Schema, t *schema.Table, d Dialect, out *[]string, pending *[]pendingForeignKey) ([]*schema.Table, error) {
	if t.Has(schema.SQLCreated) {
		return nil, nil
	}
	t.Set(schema.ReoChecking)

	var deferred []*schema.Column
	var openAncestors []*schema.Table
	for _, fk := range t.ForeignColumns() {
		if fk.Foreign == nil {
			continue
		}
		target := running.Find(fk.Foreign.Table)
		if target == nil {
			t.Clear(schema.ReoChecking)
			return nil, fmt.Errorf("%w: table %q column %q -> %q", ErrReferenceNotFound, t.Name(), fk.Name(), fk.Foreign.Table)
		}
		switch {
		case target.Has(schema.SQLCreated):
			// Already created (this step or an earlier one); the FK can be
			// expressed inline.
		case target.Has(schema.ReoChecking):
			// ErrReferenceEachOther is absorbed here, exactly as spec §7
			// describes it: non-fatal, handled by deferring the edge.
			deferred = append(deferred, fk)
			openAncestors = append(openAncestors, target)
		default:
			sub, err := orderTables(running, target, d, out, pending)
			if err != nil {
				t.Clear(schema.ReoChecking)
				return nil, err
			}
			if tableIn(sub, t) {
				// target's own subtree cycled back to t: the edge that led
				// us there is the other half of the same cycle.
				deferred = append(deferred, fk)
			}
			openAncestors = append(openAncestors, sub...)
		}
	}

	t.Clear(schema.ReoChecking)
	*out = append(*out, renderCreateTable(t, d, deferred))
	t.Set(schema.SQLCreated)

	for _, fk := range deferred {
		*pending = append(*pending, pendingForeignKey{table: t, column: fk})
	}
	return removeTable(openAncestors, t), nil
}

func tableIn(tables []*schema.Table, t *schema.Table) bool {
	for _, x := range tables {
		if x == t {
			return true
		}
	}
	return false
}

func removeTable(tables []*schema.Table, t *schema.Table) []*schema.Table {
	out := tables[:0]
	for _, x := range tables {
		if x != t {
			out = append(out, x)
		}
	}
	return out
}

// renderCreateTable renders one "CREATE TABLE ( ... );" statement, sorting
// the column list so primary-key-bearing columns come first and
// constraint-only columns (synthesized foreign keys, composite
// unique/primary indexes) come last, per §4.8's "Table ordering" production.
// Columns in skip carry foreign keys deferred to a follow-up ALTER and are
// excluded from their own constraint clause (the column itself, if it is an
// ordinary data column, is still emitted).
func renderCreateTable(t *schema.Table, d Dialect, skip []*schema.Column) string {
	deferred := make(map[*schema.Column]bool, len(skip))
	for _, c := range skip {
		deferred[c] = true
	}

	var primaryData, otherData, constraints []*schema.Column
	for _, c := range t.Columns.Entries() {
		if c == nil || c.Name() == "" {
			continue
		}
		switch {
		case c.Has(schema.Constraint):
			constraints = append(constraints, c)
		case c.Has(schema.Primary):
			primaryData = append(primaryData, c)
		default:
			otherData = append(otherData, c)
		}
	}

	var parts []string
	for _, c := range primaryData {
		parts = append(parts, columnBody(d, c))
		if c.Foreign != nil && !deferred[c] {
			parts = append(parts, foreignKeyClause(c))
		}
	}
	for _, c := range otherData {
		parts = append(parts, columnBody(d, c))
		if c.Foreign != nil && !deferred[c] {
			parts = append(parts, foreignKeyClause(c))
		}
	}
	for _, c := range constraints {
		if deferred[c] {
			continue
		}
		parts = append(parts, constraintClause(c))
	}

	return fmt.Sprintf("CREATE TABLE %s ( %s );", quoteIdent(t.Name()), strings.Join(parts, ", "))
}

// constraintClause renders a constraint-only column's clause: a foreign key,
// a composite unique index, or a composite primary key, per the column's
// modifier bits.
func constraintClause(c *schema.Column) string {
	switch {
	case c.Foreign != nil:
		return foreignKeyClause(c)
	case c.Has(schema.Primary):
		return fmt.Sprintf("PRIMARY KEY (%s)", quoteIdentList(c.Composite))
	default:
		return uniqueClause(c)
	}
}
