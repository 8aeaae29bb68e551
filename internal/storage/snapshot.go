package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/microsql/microsql/internal/sql"
)

// Snapshot layout: one JSON document holding every table's schema and its
// rows in insertion order. Cells are plain JSON scalars; the column type
// drives decoding, so an INT cell round-trips through json.Number instead of
// float64.

type snapshotDoc struct {
	Tables []snapshotTable `json:"tables"`
}

type snapshotTable struct {
	Name    string           `json:"name"`
	Columns []snapshotColumn `json:"columns"`
	Rows    [][]any          `json:"rows"`
}

type snapshotColumn struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	Unique     bool   `json:"unique,omitempty"`
	NotNull    bool   `json:"not_null,omitempty"`
	Default    any    `json:"default,omitempty"`
}

func encodeSnapshot(db *Database) ([]byte, error) {
	doc := snapshotDoc{Tables: make([]snapshotTable, 0, len(db.order))}

	for _, t := range db.Tables() {
		st := snapshotTable{Name: t.Name, Rows: make([][]any, 0, t.Len())}
		for _, c := range t.Schema.Cols {
			sc := snapshotColumn{
				Name:       c.Name,
				Type:       c.Type.String(),
				PrimaryKey: c.PrimaryKey,
				Unique:     c.Unique,
				NotNull:    c.NotNull,
			}
			if c.Default != nil {
				sc.Default = encodeCell(*c.Default)
			}
			st.Columns = append(st.Columns, sc)
		}
		for _, row := range t.Rows() {
			cells := make([]any, len(row.Values))
			for i, v := range row.Values {
				cells[i] = encodeCell(v)
			}
			st.Rows = append(st.Rows, cells)
		}
		doc.Tables = append(doc.Tables, st)
	}

	return json.MarshalIndent(doc, "", "  ")
}

func decodeSnapshot(data []byte) (*Database, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc snapshotDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed: %w", err)
	}

	db := NewDatabase("")
	for _, st := range doc.Tables {
		if _, ok := db.Table(st.Name); ok {
			return nil, fmt.Errorf("malformed: duplicate table %q", st.Name)
		}

		schema := Schema{Cols: make([]Column, 0, len(st.Columns))}
		for _, sc := range st.Columns {
			typ, ok := sql.TypeFromName(sc.Type)
			if !ok {
				return nil, fmt.Errorf("malformed: table %q column %q has unknown type %q", st.Name, sc.Name, sc.Type)
			}
			col := Column{
				Name:       sc.Name,
				Type:       typ,
				PrimaryKey: sc.PrimaryKey,
				Unique:     sc.Unique,
				NotNull:    sc.NotNull,
			}
			if sc.Default != nil {
				v, err := decodeCell(typ, sc.Default)
				if err != nil {
					return nil, fmt.Errorf("malformed: table %q column %q default: %w", st.Name, sc.Name, err)
				}
				col.Default = &v
			}
			schema.Cols = append(schema.Cols, col)
		}

		t := NewTable(st.Name, schema)
		for _, cells := range st.Rows {
			if len(cells) != len(schema.Cols) {
				return nil, fmt.Errorf("malformed: table %q row has %d cells, want %d", st.Name, len(cells), len(schema.Cols))
			}
			values := make([]sql.Value, len(cells))
			for i, cell := range cells {
				v, err := decodeCell(schema.Cols[i].Type, cell)
				if err != nil {
					return nil, fmt.Errorf("malformed: table %q column %q: %w", st.Name, schema.Cols[i].Name, err)
				}
				values[i] = v
			}
			t.Insert(values)
		}
		db.Add(t)
	}
	return db, nil
}

func encodeCell(v sql.Value) any {
	if v.Null {
		return nil
	}
	switch v.Type {
	case sql.TypeInt:
		return v.I64
	case sql.TypeBool:
		return v.B
	default:
		return v.S
	}
}

func decodeCell(t sql.DataType, cell any) (sql.Value, error) {
	if cell == nil {
		return sql.NullValue(t), nil
	}
	switch t {
	case sql.TypeInt:
		n, ok := cell.(json.Number)
		if !ok {
			return sql.Value{}, fmt.Errorf("cell %v is not a number", cell)
		}
		i, err := n.Int64()
		if err != nil {
			return sql.Value{}, fmt.Errorf("cell %v is not an integer", cell)
		}
		return sql.IntValue(i), nil
	case sql.TypeBool:
		b, ok := cell.(bool)
		if !ok {
			return sql.Value{}, fmt.Errorf("cell %v is not a boolean", cell)
		}
		return sql.BoolValue(b), nil
	default:
		s, ok := cell.(string)
		if !ok {
			return sql.Value{}, fmt.Errorf("cell %v is not a string", cell)
		}
		return sql.StringValue(t, s), nil
	}
}
