package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Database maps table names to tables and remembers the snapshot path. It is
// not safe for concurrent use; the hosting layer serializes access.
type Database struct {
	path   string
	tables map[string]*Table
	order  []string
}

// NewDatabase returns an empty database. An empty path disables persistence,
// which is what tests and ad-hoc callers want.
func NewDatabase(path string) *Database {
	return &Database{
		path:   path,
		tables: make(map[string]*Table),
	}
}

// Open loads the snapshot at path. A missing file yields an empty database; a
// malformed file is an error the caller must treat as fatal.
func Open(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDatabase(path), nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	db, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	db.path = path
	return db, nil
}

// Path returns the snapshot path, empty when persistence is disabled.
func (db *Database) Path() string { return db.path }

// Table returns the named table.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// Add registers a table. The caller has already checked for duplicates.
func (db *Database) Add(t *Table) {
	db.tables[t.Name] = t
	db.order = append(db.order, t.Name)
}

// TableNames returns table names in creation order.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// Tables returns tables in creation order.
func (db *Database) Tables() []*Table {
	out := make([]*Table, 0, len(db.order))
	for _, name := range db.order {
		out = append(out, db.tables[name])
	}
	return out
}

// Save rewrites the whole snapshot. The write goes to a temp file in the same
// directory and is renamed into place so a crash mid-write cannot leave a
// truncated snapshot behind.
func (db *Database) Save() error {
	if db.path == "" {
		return nil
	}

	data, err := encodeSnapshot(db)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(db.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), db.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
