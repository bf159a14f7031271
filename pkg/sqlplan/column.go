package sqlplan

import (
	"fmt"
	"strings"

	"github.com/schemex/schemex/pkg/schema"
)

// quoteIdent double-quotes an identifier per the generated SQL surface
// (spec §6): every emitted identifier is surrounded by a matched pair of
// double quotes, across all three dialects.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

func quoteIdentList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// typeName renders the dialect-specific SQL type name for a column, per
// §4.8's "column body" production.
func typeName(d Dialect, c *schema.Column) string {
	switch c.Kind {
	case schema.KindBool:
		if d.HasBoolean {
			return "BOOLEAN"
		}
		return "TINYINT"
	case schema.KindInt, schema.KindUint:
		if c.Size > 0 {
			return fmt.Sprintf("INT(%d)", c.Size)
		}
		return "INT"
	case schema.KindInt64, schema.KindUint64:
		return "BIGINT"
	case schema.KindDouble:
		switch {
		case c.Precision > 0 && c.Scale > 0:
			return fmt.Sprintf("DOUBLE(%d,%d)", c.Precision, c.Scale)
		case c.Precision > 0:
			return fmt.Sprintf("DOUBLE(%d)", c.Precision)
		default:
			return "DOUBLE"
		}
	case schema.KindTime:
		return "TIMESTAMP"
	case schema.KindString:
		size := c.Size
		if size == 0 {
			size = d.DefaultStringLength
		}
		return fmt.Sprintf("VARCHAR(%d)", size)
	default:
		// Object / array-of-pointer kinds have no direct scalar SQL type;
		// the codec boundary (pkg/codec) is what gives them meaning, so
		// the planner stores them as opaque text.
		return "TEXT"
	}
}

// columnBody renders one column's full body, excluding any trailing
// foreign-key/constraint clause, per §4.8: type, then UNSIGNED, then NOT
// NULL (unless nullable), then PRIMARY KEY, then AUTOINCREMENT, then
// DEFAULT, then any raw SQL fragment.
func columnBody(d Dialect, c *schema.Column) string {
	var b strings.Builder
	b.WriteString(quoteIdent(c.Name()))
	b.WriteByte(' ')
	b.WriteString(typeName(d, c))

	if (c.Kind == schema.KindUint || c.Kind == schema.KindUint64 || c.Has(schema.Unsigned)) &&
		c.Kind.IsIntegral() {
		b.WriteString(" UNSIGNED")
	}
	if !c.Has(schema.Nullable) {
		b.WriteString(" NOT NULL")
	}
	if c.Has(schema.Primary) {
		b.WriteString(" PRIMARY KEY")
	}
	if c.Has(schema.AutoIncrement) {
		b.WriteString(" AUTOINCREMENT")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(defaultLiteral(c.Default))
	}
	if c.Raw != "" {
		b.WriteByte(' ')
		b.WriteString(c.Raw)
	}
	return b.String()
}

// defaultLiteral quotes a DEFAULT expression as a string literal unless it
// looks like a SQL keyword/expression (currently only CURRENT_TIMESTAMP, the
// one default expression this package ever synthesizes itself).
func defaultLiteral(expr string) string {
	if expr == "CURRENT_TIMESTAMP" {
		return expr
	}
	return "'" + expr + "'"
}

// foreignKeyClause renders a trailing "FOREIGN KEY (cols) REFERENCES
// t(c) [ON DELETE ...] [ON UPDATE ...]" clause for a column carrying a
// foreign-key descriptor. localColumns is the set of local columns the
// constraint covers: the column's own Composite list for a synthesized
// AddForeign record, or just its own name for a direct References() column.
func foreignKeyClause(c *schema.Column) string {
	localColumns := c.Composite
	if len(localColumns) == 0 {
		localColumns = []string{c.Name()}
	}
	clause := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
		quoteIdentList(localColumns), quoteIdent(c.Foreign.Table), quoteIdent(c.Foreign.Column))
	if c.Foreign.OnDelete != schema.ActionNone {
		clause += " ON DELETE " + c.Foreign.OnDelete.String()
	}
	if c.Foreign.OnUpdate != schema.ActionNone {
		clause += " ON UPDATE " + c.Foreign.OnUpdate.String()
	}
	return clause
}

// uniqueClause renders a trailing "UNIQUE (cols)" clause for a composite
// unique-index constraint column (schema.Table.AddUniqueIndex).
func uniqueClause(c *schema.Column) string {
	return fmt.Sprintf("UNIQUE (%s)", quoteIdentList(c.Composite))
}
