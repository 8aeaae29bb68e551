package engine

import (
	"github.com/microsql/microsql/internal/sql"
	"github.com/microsql/microsql/internal/storage"
)

// checkNotNull rejects a candidate row with an absent value in a NOT NULL
// column. Defaults were already substituted by the caller.
func checkNotNull(t *storage.Table, values []sql.Value) error {
	for i, col := range t.Schema.Cols {
		if col.NotNull && values[i].Null {
			return errf(KindConstraintViolation, "column %q of table %q cannot be NULL", col.Name, t.Name)
		}
	}
	return nil
}

// checkUnique rejects a candidate row whose value in a PRIMARY KEY/UNIQUE
// column is already held by a different row. selfID excludes the row being
// updated so rewriting a key to its current value is not a violation; it is 0
// for inserts (row ids start at 1).
func checkUnique(t *storage.Table, values []sql.Value, selfID uint64) error {
	for i, col := range t.Schema.Cols {
		ix, ok := t.Index(col.Name)
		if !ok {
			continue
		}
		id, ok := ix.Lookup(values[i])
		if ok && id != selfID {
			return errf(KindConstraintViolation, "duplicate value %s for column %q of table %q", values[i], col.Name, t.Name)
		}
	}
	return nil
}
