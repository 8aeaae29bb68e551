package storage

import "github.com/microsql/microsql/internal/sql"

// Index is an equality lookup from a column value to the id of the unique row
// holding it. It exists for every PRIMARY KEY or UNIQUE column and is derived
// state: rows are the source of truth, the index is rebuilt from them on load.
//
// NULL values are never indexed; uniqueness applies to present values only.
type Index struct {
	Column  string
	entries map[sql.Value]uint64
}

func newIndex(column string) *Index {
	return &Index{Column: column, entries: make(map[sql.Value]uint64)}
}

// Lookup returns the id of the row holding v, if any.
func (ix *Index) Lookup(v sql.Value) (uint64, bool) {
	if v.Null {
		return 0, false
	}
	id, ok := ix.entries[v]
	return id, ok
}

// Len returns the number of indexed values.
func (ix *Index) Len() int { return len(ix.entries) }

func (ix *Index) put(v sql.Value, id uint64) {
	if v.Null {
		return
	}
	ix.entries[v] = id
}

func (ix *Index) del(v sql.Value) {
	if v.Null {
		return
	}
	delete(ix.entries, v)
}
