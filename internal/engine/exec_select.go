package engine

import (
	"sort"

	"github.com/microsql/microsql/internal/sql"
	"github.com/microsql/microsql/internal/storage"
)

// viewCol is one column of the (possibly joined) row stream a SELECT operates
// on.
type viewCol struct {
	table string
	name  string
	typ   sql.DataType
}

func tableViewCols(t *storage.Table) []viewCol {
	cols := make([]viewCol, len(t.Schema.Cols))
	for i, c := range t.Schema.Cols {
		cols[i] = viewCol{table: t.Name, name: c.Name, typ: c.Type}
	}
	return cols
}

// resolveViewCol finds the position of a column reference: an exact
// table-qualified match, or the first bare-name match (left table wins).
func resolveViewCol(cols []viewCol, ref sql.ColumnRef) int {
	for i, c := range cols {
		if c.name != ref.Name {
			continue
		}
		if ref.Table == "" || ref.Table == c.table {
			return i
		}
	}
	return -1
}

func resolveViewConds(cols []viewCol, conds []sql.Condition) ([]resolvedCond, error) {
	out := make([]resolvedCond, 0, len(conds))
	for _, c := range conds {
		idx := resolveViewCol(cols, c.Column)
		if idx < 0 {
			return nil, errf(KindColumnNotFound, "column %q does not exist", c.Column)
		}
		v, err := c.Value.Coerce(cols[idx].typ)
		if err != nil {
			return nil, errf(KindTypeMismatch, "WHERE %s: %v", c.Column, err)
		}
		out = append(out, resolvedCond{idx: idx, op: c.Op, val: v})
	}
	return out, nil
}

// execSelect runs the query pipeline: join, filter, sort, limit, project.
// Zero matching rows is a valid, empty result.
func (e *Engine) execSelect(stmt *sql.SelectStmt) (*Result, error) {
	t, err := e.table(stmt.Table)
	if err != nil {
		return nil, err
	}

	var (
		cols []viewCol
		rows [][]sql.Value
	)

	if stmt.Join == nil {
		matched, err := e.selectRows(t, stmt.Where)
		if err != nil {
			return nil, err
		}
		cols = tableViewCols(t)
		rows = make([][]sql.Value, 0, len(matched))
		for _, r := range matched {
			rows = append(rows, r.Values)
		}
	} else {
		cols, rows, err = e.joinRows(t, stmt.Join)
		if err != nil {
			return nil, err
		}
		conds, err := resolveViewConds(cols, stmt.Where)
		if err != nil {
			return nil, err
		}
		kept := rows[:0]
		for _, row := range rows {
			if matchConds(row, conds) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	if stmt.OrderBy != nil {
		idx := resolveViewCol(cols, stmt.OrderBy.Column)
		if idx < 0 {
			return nil, errf(KindColumnNotFound, "ORDER BY column %q does not exist", stmt.OrderBy.Column)
		}
		desc := stmt.OrderBy.Desc
		// stable: ties keep their pre-sort relative order in both directions
		sort.SliceStable(rows, func(a, b int) bool {
			cmp, _ := rows[a][idx].Compare(rows[b][idx])
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if stmt.Limit >= 0 && len(rows) > stmt.Limit {
		rows = rows[:stmt.Limit]
	}

	return project(stmt, cols, rows, stmt.Join != nil)
}

// project narrows rows to the requested columns. `*` yields every view column
// in schema-declaration order, qualified with its table name when the result
// comes from a join.
func project(stmt *sql.SelectStmt, cols []viewCol, rows [][]sql.Value, joined bool) (*Result, error) {
	var (
		names   []string
		indices []int
	)

	if stmt.Star {
		names = make([]string, len(cols))
		indices = make([]int, len(cols))
		for i, c := range cols {
			if joined {
				names[i] = c.table + "." + c.name
			} else {
				names[i] = c.name
			}
			indices[i] = i
		}
	} else {
		names = make([]string, len(stmt.Columns))
		indices = make([]int, len(stmt.Columns))
		for i, ref := range stmt.Columns {
			idx := resolveViewCol(cols, ref)
			if idx < 0 {
				return nil, errf(KindColumnNotFound, "column %q does not exist", ref)
			}
			names[i] = ref.String()
			indices[i] = idx
		}
	}

	res := &Result{Columns: names, Rows: make([][]sql.Value, 0, len(rows))}
	for _, row := range rows {
		out := make([]sql.Value, len(indices))
		for i, idx := range indices {
			out[i] = row[idx]
		}
		res.Rows = append(res.Rows, out)
	}
	res.Affected = len(res.Rows)
	return res, nil
}

// joinRows builds the joined row stream for a JOIN/LEFT JOIN clause. For each
// left row the matching right row is found through the right table's index
// when the join column has one, otherwise by scanning. INNER emits matched
// pairs only; LEFT additionally emits unmatched left rows with every
// right-side column absent.
func (e *Engine) joinRows(t *storage.Table, join *sql.JoinClause) ([]viewCol, [][]sql.Value, error) {
	t2, err := e.table(join.Table)
	if err != nil {
		return nil, nil, err
	}

	li, ri, err := joinSides(t, t2, join.LeftCol, join.RightCol)
	if err != nil {
		return nil, nil, err
	}

	ltyp := t.Schema.Cols[li].Type
	rcol := t2.Schema.Cols[ri]
	if _, ok := (sql.Value{Type: ltyp}).Retag(rcol.Type); !ok {
		return nil, nil, errf(KindTypeMismatch, "cannot join %s column %q to %s column %q",
			ltyp, t.Schema.Cols[li].Name, rcol.Type, rcol.Name)
	}

	_, indexed := t2.Index(rcol.Name)

	cols := append(tableViewCols(t), tableViewCols(t2)...)
	var rows [][]sql.Value

	nullRight := make([]sql.Value, len(t2.Schema.Cols))
	for i, c := range t2.Schema.Cols {
		nullRight[i] = sql.NullValue(c.Type)
	}

	for _, lrow := range t.Rows() {
		lv := lrow.Values[li]

		var matches []*storage.Row
		if !lv.Null {
			if indexed {
				if key, ok := lv.Retag(rcol.Type); ok {
					if rrow, ok := t2.Lookup(rcol.Name, key); ok {
						matches = append(matches, rrow)
					}
				}
			} else {
				for _, rrow := range t2.Rows() {
					rv := rrow.Values[ri]
					if rv.Null {
						continue
					}
					cmp, err := lv.Compare(rv)
					if err != nil {
						return nil, nil, errf(KindTypeMismatch, "join: %v", err)
					}
					if cmp == 0 {
						matches = append(matches, rrow)
					}
				}
			}
		}

		for _, rrow := range matches {
			combined := make([]sql.Value, 0, len(cols))
			combined = append(combined, lrow.Values...)
			combined = append(combined, rrow.Values...)
			rows = append(rows, combined)
		}
		if len(matches) == 0 && join.Left {
			combined := make([]sql.Value, 0, len(cols))
			combined = append(combined, lrow.Values...)
			combined = append(combined, nullRight...)
			rows = append(rows, combined)
		}
	}

	return cols, rows, nil
}

// joinSides resolves the two ON column references to a left-table position
// and a right-table position, in either written order.
func joinSides(t, t2 *storage.Table, a, b sql.ColumnRef) (int, int, error) {
	side := func(ref sql.ColumnRef) (onLeft bool, idx int, err error) {
		switch ref.Table {
		case t.Name, "":
			if i := t.Schema.ColIndex(ref.Name); i >= 0 {
				return true, i, nil
			}
			if ref.Table != "" {
				return false, 0, errf(KindColumnNotFound, "column %q does not exist", ref)
			}
			fallthrough
		case t2.Name:
			if i := t2.Schema.ColIndex(ref.Name); i >= 0 {
				return false, i, nil
			}
		}
		return false, 0, errf(KindColumnNotFound, "column %q does not exist", ref)
	}

	aLeft, ai, err := side(a)
	if err != nil {
		return 0, 0, err
	}
	bLeft, bi, err := side(b)
	if err != nil {
		return 0, 0, err
	}
	if aLeft == bLeft {
		return 0, 0, errf(KindColumnNotFound, "ON condition must reference both %q and %q", t.Name, t2.Name)
	}
	if aLeft {
		return ai, bi, nil
	}
	return bi, ai, nil
}
