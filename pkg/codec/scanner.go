package codec

import (
	"database/sql"
	"fmt"

	"github.com/schemex/schemex/pkg/schema"
)

// Scanner turns *sql.Rows cursors into typed field values keyed by column
// name, dispatching each column through a Registry hook picked by the
// column's schema.Kind rather than by reflecting over an arbitrary
// destination struct the way the teacher's scanner.go does. pkg/schema
// already knows each column's kind; asking the caller to redeclare it on a
// struct tag a second time would be the one piece of duplicated truth this
// module works hard everywhere else to avoid.
type Scanner struct {
	registry *Registry
}

// NewScanner builds a Scanner backed by reg. A nil reg falls back to
// NewRegistry's defaults.
func NewScanner(reg *Registry) *Scanner {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Scanner{registry: reg}
}

// Row scans exactly one row out of rows into a map keyed by column name,
// with each value parsed through the hook for the matching column's kind in
// table. Columns present in the result set but absent from table are left
// as their raw driver value so callers can still see unexpected columns
// rather than silently dropping them.
func (s *Scanner) Row(rows *sql.Rows, table *schema.Table) (map[string]any, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("codec: read columns: %w", err)
	}

	raw := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("codec: scan row: %w", err)
	}

	out := make(map[string]any, len(names))
	for i, name := range names {
		col := table.GetColumn(name)
		if col == nil {
			out[name] = raw[i]
			continue
		}
		v, err := s.registry.Parse(col.Kind, raw[i])
		if err != nil {
			return nil, fmt.Errorf("codec: column %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

// All scans every remaining row out of rows, closing it before returning.
func (s *Scanner) All(rows *sql.Rows, table *schema.Table) ([]map[string]any, error) {
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row, err := s.Row(rows, table)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Args converts a map of column name to Go value into the positional
// argument slice db.Exec/db.Query expects, in the column order table
// declares them, running each value through the matching Write hook. Columns
// in fields but absent from table return an error rather than being
// silently ignored, since a typo there would otherwise just bind nothing.
func (s *Scanner) Args(table *schema.Table, fields map[string]any) ([]string, []any, error) {
	var names []string
	var args []any
	for _, col := range table.Columns.Entries() {
		if col == nil || col.Name() == "" {
			continue
		}
		v, ok := fields[col.Name()]
		if !ok {
			continue
		}
		written, err := s.registry.Write(col.Kind, v)
		if err != nil {
			return nil, nil, fmt.Errorf("codec: column %q: %w", col.Name(), err)
		}
		names = append(names, col.Name())
		args = append(args, written)
	}
	if len(names) < len(fields) {
		bound := make(map[string]bool, len(names))
		for _, n := range names {
			bound[n] = true
		}
		for k := range fields {
			if !bound[k] {
				return nil, nil, fmt.Errorf("codec: field %q has no column in table %q", k, table.Name())
			}
		}
	}
	return names, args, nil
}
