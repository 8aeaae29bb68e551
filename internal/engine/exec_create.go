package engine

import (
	"github.com/microsql/microsql/internal/sql"
	"github.com/microsql/microsql/internal/storage"
)

// execCreateTable validates a CREATE TABLE statement and registers the new
// table. FOREIGN KEY clauses were accepted by the parser but carry no
// referential-integrity semantics here.
func (e *Engine) execCreateTable(stmt *sql.CreateTableStmt) (*Result, error) {
	if _, ok := e.db.Table(stmt.Table); ok {
		return nil, errf(KindConstraintViolation, "table %q already exists", stmt.Table)
	}

	schema := storage.Schema{Cols: make([]storage.Column, 0, len(stmt.Columns))}
	seen := make(map[string]bool, len(stmt.Columns))
	pkCount := 0

	for _, def := range stmt.Columns {
		if seen[def.Name] {
			return nil, errf(KindConstraintViolation, "duplicate column %q", def.Name)
		}
		seen[def.Name] = true

		typ, ok := sql.TypeFromName(def.TypeName)
		if !ok {
			return nil, errf(KindTypeMismatch, "unknown column type %q", def.TypeName)
		}

		if def.PrimaryKey {
			pkCount++
			if pkCount > 1 {
				return nil, errf(KindConstraintViolation, "table %q declares more than one PRIMARY KEY", stmt.Table)
			}
		}

		col := storage.Column{
			Name:       def.Name,
			Type:       typ,
			PrimaryKey: def.PrimaryKey,
			Unique:     def.Unique,
			NotNull:    def.NotNull,
		}
		if def.Default != nil {
			v, err := def.Default.Coerce(typ)
			if err != nil {
				return nil, errf(KindTypeMismatch, "default for column %q: %v", def.Name, err)
			}
			col.Default = &v
		}
		schema.Cols = append(schema.Cols, col)
	}

	e.db.Add(storage.NewTable(stmt.Table, schema))
	if err := e.persist(); err != nil {
		return nil, err
	}
	return &Result{}, nil
}
