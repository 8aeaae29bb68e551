package storage

import "github.com/microsql/microsql/internal/sql"

// Row is one record: values aligned with the table schema's column order,
// keyed by an internal id that is stable for the row's lifetime.
type Row struct {
	id     uint64
	Values []sql.Value
}

// ID returns the row's internal id. Ids are never reused within a table.
func (r *Row) ID() uint64 { return r.id }

// Table holds a schema, its rows in insertion order and one Index per
// PRIMARY KEY/UNIQUE column. All row and index mutation goes through Insert,
// Update and Delete so the two can never diverge; callers validate
// constraints before mutating.
type Table struct {
	Name   string
	Schema Schema

	rows    []*Row
	byID    map[uint64]*Row
	indexes map[string]*Index
	nextID  uint64
}

// NewTable creates an empty table and allocates an index for every
// constrained column.
func NewTable(name string, schema Schema) *Table {
	t := &Table{
		Name:    name,
		Schema:  schema,
		byID:    make(map[uint64]*Row),
		indexes: make(map[string]*Index),
	}
	for _, c := range schema.Cols {
		if c.Indexed() {
			t.indexes[c.Name] = newIndex(c.Name)
		}
	}
	return t
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the rows in insertion order. The slice is shared; callers must
// not mutate it.
func (t *Table) Rows() []*Row { return t.rows }

// Get returns the row with the given internal id.
func (t *Table) Get(id uint64) (*Row, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// Index returns the index on the named column, if the column is constrained.
func (t *Table) Index(column string) (*Index, bool) {
	ix, ok := t.indexes[column]
	return ix, ok
}

// Lookup finds the unique row holding v in the named indexed column.
func (t *Table) Lookup(column string, v sql.Value) (*Row, bool) {
	ix, ok := t.indexes[column]
	if !ok {
		return nil, false
	}
	id, ok := ix.Lookup(v)
	if !ok {
		return nil, false
	}
	return t.byID[id], true
}

// Insert appends a row and registers it in every index. Values must already
// be validated against the schema.
func (t *Table) Insert(values []sql.Value) *Row {
	t.nextID++
	row := &Row{id: t.nextID, Values: values}
	t.rows = append(t.rows, row)
	t.byID[row.id] = row
	t.indexEntries(row, true)
	return row
}

// Update replaces a row's values and moves its index entries in one step.
func (t *Table) Update(id uint64, values []sql.Value) bool {
	row, ok := t.byID[id]
	if !ok {
		return false
	}
	t.indexEntries(row, false)
	row.Values = values
	t.indexEntries(row, true)
	return true
}

// Delete removes a row and its index entries. Insertion order of the
// remaining rows is preserved.
func (t *Table) Delete(id uint64) bool {
	row, ok := t.byID[id]
	if !ok {
		return false
	}
	t.indexEntries(row, false)
	delete(t.byID, id)
	for i, r := range t.rows {
		if r.id == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			break
		}
	}
	return true
}

func (t *Table) indexEntries(row *Row, add bool) {
	for i, c := range t.Schema.Cols {
		ix, ok := t.indexes[c.Name]
		if !ok {
			continue
		}
		if add {
			ix.put(row.Values[i], row.id)
		} else {
			ix.del(row.Values[i])
		}
	}
}
