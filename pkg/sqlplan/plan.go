package sqlplan

import (
	"fmt"

	"github.com/schemex/schemex/pkg/schema"
)

// Plan turns one migration step into a vendor-aware SQL statement stream.
//
// step is the diff schema as authored (schema.Schema.CreateTable /
// AlterTable / DropTable / RenameTable calls for this version) — not yet
// folded into running. running is the same step after it has been passed
// through schema.SchemaAccumulate and schema.TraceForeign: the source of
// truth for foreign-key target lookups and for which tables already exist
// in the target database (schema.SQLCreated, which Plan sets and never
// clears, persists that fact across calls).
//
// Dispatch is at table granularity per invariant 4 (spec.md §3): step's own
// tombstone/Changed bits decide DROP vs RENAME vs ALTER vs CREATE for each
// table, exactly as declared. DROP, RENAME and ALTER emit directly in
// step's declaration order; CREATE tables are additionally ordered by their
// foreign-key edges (orderTables) before being appended, and any edge left
// over from a reference cycle is appended as a trailing ALTER TABLE ADD
// FOREIGN KEY once every table in the plan has been created.
func Plan(step *schema.Schema, running *schema.Schema, d Dialect) ([]string, error) {
	var out []string
	var pending []pendingForeignKey

	for _, t := range step.Tables.Entries() {
		if t == nil {
			continue
		}
		switch {
		case t.IsDrop():
			out = append(out, fmt.Sprintf("DROP TABLE %s;", quoteIdent(t.OldName())))

		case t.IsRename():
			out = append(out, renderRenameTable(t, d))

		case t.IsAlter():
			stmts, err := renderAlterTable(t, d)
			if err != nil {
				return nil, err
			}
			out = append(out, stmts...)

		default: // CREATE
			live := running.Find(t.Name())
			if live == nil {
				live = t
			}
			if _, err := orderTables(running, live, d, &out, &pending); err != nil {
				return nil, err
			}
		}
	}

	for _, fk := range pending {
		out = append(out, fmt.Sprintf("ALTER TABLE %s ADD %s;", quoteIdent(fk.table.Name()), foreignKeyClause(fk.column)))
	}

	return out, nil
}

// renderRenameTable dispatches MySQL's dedicated RENAME TABLE statement
// against every other dialect's ANSI-ish ALTER TABLE ... RENAME TO form.
func renderRenameTable(t *schema.Table, d Dialect) string {
	if d.RenameTableStatement {
		return fmt.Sprintf("RENAME TABLE %s TO %s;", quoteIdent(t.OldName()), quoteIdent(t.Name()))
	}
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", quoteIdent(t.OldName()), quoteIdent(t.Name()))
}

// renderAlterTable renders one ALTER record's column diff, dispatching each
// column by its own classification per §4.8's "ALTER TABLE" production.
func renderAlterTable(t *schema.Table, d Dialect) ([]string, error) {
	name := quoteIdent(t.Name())
	var out []string

	for _, c := range t.Columns.Entries() {
		if c == nil {
			continue
		}
		switch {
		case c.IsDrop():
			out = append(out, renderDropColumn(name, c, d))

		case c.IsRename():
			out = append(out, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s;",
				name, quoteIdent(c.OldName()), quoteIdent(c.Name())))

		case c.IsAlter():
			switch {
			case d.UseAlter:
				out = append(out, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s;", name, columnBody(d, c)))
			case d.UseModify:
				out = append(out, fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s;", name, columnBody(d, c)))
			default:
				return nil, fmt.Errorf("%w: dialect %q cannot alter a column's definition", ErrNotSupport, d.Name)
			}

		default: // ADD
			out = append(out, renderAddColumn(name, c, d)...)
		}
	}

	return out, nil
}

// renderAddColumn renders one ADD record: a data column (optionally
// followed by its own ADD FOREIGN KEY when it carries a direct reference),
// a constraint-only column (ADD FOREIGN KEY / ADD UNIQUE), or an
// index-only column (CREATE INDEX).
func renderAddColumn(table string, c *schema.Column, d Dialect) []string {
	switch {
	case c.Has(schema.Constraint) && c.Foreign != nil:
		return []string{fmt.Sprintf("ALTER TABLE %s ADD %s;", table, foreignKeyClause(c))}

	case c.Has(schema.Constraint) && c.Has(schema.Primary):
		return []string{fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s);", table, quoteIdentList(c.Composite))}

	case c.Has(schema.Constraint) && c.Has(schema.Unique):
		return []string{fmt.Sprintf("ALTER TABLE %s ADD %s;", table, uniqueClause(c))}

	case c.Has(schema.Index) && !c.Has(schema.Foreign):
		cols := c.Composite
		if len(cols) == 0 {
			cols = []string{c.Name()}
		}
		return []string{fmt.Sprintf("CREATE INDEX %s ON %s (%s);", quoteIdent(c.Name()), table, quoteIdentList(cols))}
	}

	stmts := []string{fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnBody(d, c))}
	if c.Foreign != nil {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %s;", table, foreignKeyClause(c)))
	}
	return stmts
}

// renderDropColumn picks DROP FOREIGN KEY / DROP CONSTRAINT / DROP INDEX /
// DROP COLUMN depending on which modifier bit the drop tombstone carries,
// per §4.8's "depending on which bit is set and which dialect rules apply".
func renderDropColumn(table string, c *schema.Column, d Dialect) string {
	name := quoteIdent(c.OldName())
	switch {
	case c.Has(schema.Foreign):
		if d.Name == "mysql" {
			return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s;", table, name)
		}
		return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", table, name)
	case c.Has(schema.Index):
		return fmt.Sprintf("DROP INDEX %s ON %s;", name, table)
	case c.Has(schema.Constraint):
		return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", table, name)
	default:
		return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", table, name)
	}
}
