package engine

import (
	"github.com/microsql/microsql/internal/sql"
	"github.com/microsql/microsql/internal/storage"
)

// resolvedCond is a WHERE comparison bound to a value position, with its
// literal already coerced to the column type. Coercion happens once per
// statement: an incompatible literal fails the statement, it never silently
// excludes rows.
type resolvedCond struct {
	idx int
	op  sql.CompareOp
	val sql.Value
}

// resolveConds binds conditions to single-table column positions.
func resolveConds(t *storage.Table, conds []sql.Condition) ([]resolvedCond, error) {
	out := make([]resolvedCond, 0, len(conds))
	for _, c := range conds {
		if c.Column.Table != "" && c.Column.Table != t.Name {
			return nil, errf(KindColumnNotFound, "column %q does not belong to table %q", c.Column, t.Name)
		}
		idx := t.Schema.ColIndex(c.Column.Name)
		if idx < 0 {
			return nil, errf(KindColumnNotFound, "column %q does not exist in table %q", c.Column.Name, t.Name)
		}
		v, err := c.Value.Coerce(t.Schema.Cols[idx].Type)
		if err != nil {
			return nil, errf(KindTypeMismatch, "WHERE %s: %v", c.Column, err)
		}
		out = append(out, resolvedCond{idx: idx, op: c.Op, val: v})
	}
	return out, nil
}

// matchConds reports whether values satisfy every condition. An absent (NULL)
// column value never satisfies a comparison.
func matchConds(values []sql.Value, conds []resolvedCond) bool {
	for _, c := range conds {
		got := values[c.idx]
		if got.Null {
			return false
		}
		cmp, err := got.Compare(c.val)
		if err != nil {
			// coercion already aligned the families
			return false
		}
		if !c.op.Holds(cmp) {
			return false
		}
	}
	return true
}

// selectRows evaluates a WHERE clause over one table and returns the matching
// rows in insertion order. A single equality on an indexed column goes
// through the index; everything else is a full scan.
func (e *Engine) selectRows(t *storage.Table, where []sql.Condition) ([]*storage.Row, error) {
	conds, err := resolveConds(t, where)
	if err != nil {
		return nil, err
	}

	if len(conds) == 1 && conds[0].op == sql.OpEq {
		col := t.Schema.Cols[conds[0].idx]
		if _, ok := t.Index(col.Name); ok {
			row, ok := t.Lookup(col.Name, conds[0].val)
			if !ok {
				return nil, nil
			}
			return []*storage.Row{row}, nil
		}
	}

	var out []*storage.Row
	for _, row := range t.Rows() {
		if matchConds(row.Values, conds) {
			out = append(out, row)
		}
	}
	return out, nil
}
