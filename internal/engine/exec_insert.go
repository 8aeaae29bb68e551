package engine

import (
	"github.com/microsql/microsql/internal/sql"
)

// execInsert builds a candidate row from the schema, defaults and supplied
// values, validates it and commits. Validation failures abort before any
// mutation.
func (e *Engine) execInsert(stmt *sql.InsertStmt) (*Result, error) {
	t, err := e.table(stmt.Table)
	if err != nil {
		return nil, err
	}

	// map supplied literals to schema positions
	supplied := make(map[int]sql.Literal, len(stmt.Values))
	if len(stmt.Columns) > 0 {
		for i, name := range stmt.Columns {
			idx := t.Schema.ColIndex(name)
			if idx < 0 {
				return nil, errf(KindColumnNotFound, "column %q does not exist in table %q", name, stmt.Table)
			}
			supplied[idx] = stmt.Values[i]
		}
	} else {
		if len(stmt.Values) != len(t.Schema.Cols) {
			return nil, errf(KindArityMismatch, "table %q has %d columns, got %d values",
				stmt.Table, len(t.Schema.Cols), len(stmt.Values))
		}
		for i, lit := range stmt.Values {
			supplied[i] = lit
		}
	}

	values := make([]sql.Value, len(t.Schema.Cols))
	for i, col := range t.Schema.Cols {
		lit, ok := supplied[i]
		switch {
		case ok:
			v, err := lit.Coerce(col.Type)
			if err != nil {
				return nil, errf(KindTypeMismatch, "column %q: %v", col.Name, err)
			}
			values[i] = v
		case col.Default != nil:
			values[i] = *col.Default
		default:
			values[i] = sql.NullValue(col.Type)
		}
	}

	if err := checkNotNull(t, values); err != nil {
		return nil, err
	}
	if err := checkUnique(t, values, 0); err != nil {
		return nil, err
	}

	row := t.Insert(values)
	if err := e.persist(); err != nil {
		return nil, err
	}

	inserted := make([]sql.Value, len(row.Values))
	copy(inserted, row.Values)
	return &Result{
		Columns:  t.Schema.ColNames(),
		Rows:     [][]sql.Value{inserted},
		Affected: 1,
	}, nil
}
