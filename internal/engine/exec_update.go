package engine

import (
	"github.com/microsql/microsql/internal/sql"
)

// execUpdate applies SET assignments to every row matching WHERE. The whole
// batch is validated before anything is written: if any candidate row fails a
// constraint, zero rows are mutated.
func (e *Engine) execUpdate(stmt *sql.UpdateStmt) (*Result, error) {
	t, err := e.table(stmt.Table)
	if err != nil {
		return nil, err
	}

	targets, err := e.selectRows(t, stmt.Where)
	if err != nil {
		return nil, err
	}

	// resolve and coerce assignments once
	type assign struct {
		idx int
		val sql.Value
	}
	assigns := make([]assign, 0, len(stmt.Assigns))
	for _, a := range stmt.Assigns {
		idx := t.Schema.ColIndex(a.Column)
		if idx < 0 {
			return nil, errf(KindColumnNotFound, "column %q does not exist in table %q", a.Column, stmt.Table)
		}
		v, err := a.Value.Coerce(t.Schema.Cols[idx].Type)
		if err != nil {
			return nil, errf(KindTypeMismatch, "column %q: %v", a.Column, err)
		}
		assigns = append(assigns, assign{idx: idx, val: v})
	}

	// build and validate all candidates before applying any of them
	candidates := make([][]sql.Value, len(targets))
	batchSeen := make(map[string]map[sql.Value]bool)
	for i, row := range targets {
		values := make([]sql.Value, len(row.Values))
		copy(values, row.Values)
		for _, a := range assigns {
			values[a.idx] = a.val
		}

		if err := checkNotNull(t, values); err != nil {
			return nil, err
		}
		if err := checkUnique(t, values, row.ID()); err != nil {
			return nil, err
		}

		// two candidates in the same batch must not land on the same key
		for ci, col := range t.Schema.Cols {
			if !col.Indexed() || values[ci].Null {
				continue
			}
			seen := batchSeen[col.Name]
			if seen == nil {
				seen = make(map[sql.Value]bool)
				batchSeen[col.Name] = seen
			}
			if seen[values[ci]] {
				return nil, errf(KindConstraintViolation, "duplicate value %s for column %q of table %q", values[ci], col.Name, t.Name)
			}
			seen[values[ci]] = true
		}

		candidates[i] = values
	}

	for i, row := range targets {
		t.Update(row.ID(), candidates[i])
	}

	if err := e.persist(); err != nil {
		return nil, err
	}
	return &Result{Affected: len(targets)}, nil
}
