package storage

import "github.com/microsql/microsql/internal/sql"

// Column describes one column of a stored table, with its declared type and
// constraint flags. Default, when set, is already coerced to the column type.
type Column struct {
	Name       string
	Type       sql.DataType
	PrimaryKey bool
	Unique     bool
	NotNull    bool
	Default    *sql.Value
}

// Indexed reports whether the column carries an equality index.
func (c Column) Indexed() bool {
	return c.PrimaryKey || c.Unique
}

// Schema is an ordered column list. Column order is the declaration order and
// also the order of values inside each Row.
type Schema struct {
	Cols []Column
}

// ColIndex returns the position of the named column, or -1.
func (s Schema) ColIndex(name string) int {
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i
		}
	}
	return -1
}

// ColNames returns the column names in declaration order.
func (s Schema) ColNames() []string {
	names := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		names[i] = c.Name
	}
	return names
}
