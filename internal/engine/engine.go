package engine

import (
	"errors"

	"github.com/microsql/microsql/internal/sql"
	"github.com/microsql/microsql/internal/storage"
)

// Engine executes SQL statements against one Database. It is synchronous and
// single-threaded: a call parses, validates, applies and persists before
// returning. Hosts with concurrent callers must serialize all calls, a single
// mutex around the Engine is the intended contract.
type Engine struct {
	db *storage.Database
}

// New wraps an existing database.
func New(db *storage.Database) *Engine {
	return &Engine{db: db}
}

// Open loads the snapshot at path (missing file means empty database) and
// returns an engine over it. A malformed snapshot is fatal to startup.
func Open(path string) (*Engine, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, errf(KindPersistence, "%v", err)
	}
	return New(db), nil
}

// Result is the outcome of a successful statement: projected rows for a
// SELECT (and the inserted row for an INSERT), an affected-row count for
// mutations.
type Result struct {
	Columns  []string
	Rows     [][]sql.Value
	Affected int
}

// Execute runs a single SQL statement end to end. Mutations persist the
// snapshot before returning; any failure leaves the database unchanged except
// for KindPersistence, where memory and disk may have diverged.
func (e *Engine) Execute(text string) (*Result, error) {
	stmt, err := sql.Parse(text)
	if err != nil {
		if errors.Is(err, sql.ErrArity) {
			return nil, errf(KindArityMismatch, "%v", err)
		}
		return nil, errf(KindParse, "%v", err)
	}

	switch s := stmt.(type) {
	case *sql.CreateTableStmt:
		return e.execCreateTable(s)
	case *sql.InsertStmt:
		return e.execInsert(s)
	case *sql.SelectStmt:
		return e.execSelect(s)
	case *sql.UpdateStmt:
		return e.execUpdate(s)
	case *sql.DeleteStmt:
		return e.execDelete(s)
	default:
		return nil, errf(KindParse, "unsupported statement %T", stmt)
	}
}

// ListTables returns table names in creation order.
func (e *Engine) ListTables() []string {
	return e.db.TableNames()
}

// DescribeTable returns the schema of the named table.
func (e *Engine) DescribeTable(name string) (storage.Schema, error) {
	t, err := e.table(name)
	if err != nil {
		return storage.Schema{}, err
	}
	return t.Schema, nil
}

func (e *Engine) table(name string) (*storage.Table, error) {
	t, ok := e.db.Table(name)
	if !ok {
		return nil, errf(KindTableNotFound, "table %q does not exist", name)
	}
	return t, nil
}

// persist rewrites the snapshot after a successful mutation.
func (e *Engine) persist() error {
	if err := e.db.Save(); err != nil {
		return errf(KindPersistence, "%v", err)
	}
	return nil
}
