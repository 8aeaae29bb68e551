package engine

import (
	"github.com/microsql/microsql/internal/sql"
)

// execDelete removes every row matching WHERE. Deleting zero rows is success
// with count 0, which makes repeated deletes of the same key idempotent.
func (e *Engine) execDelete(stmt *sql.DeleteStmt) (*Result, error) {
	t, err := e.table(stmt.Table)
	if err != nil {
		return nil, err
	}

	targets, err := e.selectRows(t, stmt.Where)
	if err != nil {
		return nil, err
	}

	for _, row := range targets {
		t.Delete(row.ID())
	}

	if err := e.persist(); err != nil {
		return nil, err
	}
	return &Result{Affected: len(targets)}, nil
}
