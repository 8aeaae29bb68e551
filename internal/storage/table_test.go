package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsql/microsql/internal/sql"
)

func usersSchema() Schema {
	return Schema{Cols: []Column{
		{Name: "id", Type: sql.TypeInt, PrimaryKey: true},
		{Name: "name", Type: sql.TypeVarchar, Unique: true},
		{Name: "age", Type: sql.TypeInt},
	}}
}

func TestNewTable_AllocatesIndexes(t *testing.T) {
	tbl := NewTable("users", usersSchema())

	_, ok := tbl.Index("id")
	assert.True(t, ok)
	_, ok = tbl.Index("name")
	assert.True(t, ok)
	_, ok = tbl.Index("age")
	assert.False(t, ok)
}

func TestTable_InsertAndLookup(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	row := tbl.Insert([]sql.Value{sql.IntValue(1), sql.StringValue(sql.TypeVarchar, "alice"), sql.IntValue(25)})

	got, ok := tbl.Lookup("id", sql.IntValue(1))
	require.True(t, ok)
	assert.Equal(t, row.ID(), got.ID())

	got, ok = tbl.Lookup("name", sql.StringValue(sql.TypeVarchar, "alice"))
	require.True(t, ok)
	assert.Equal(t, row.ID(), got.ID())

	_, ok = tbl.Lookup("id", sql.IntValue(99))
	assert.False(t, ok)
}

func TestTable_InsertionOrderPreserved(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	for i := int64(1); i <= 5; i++ {
		tbl.Insert([]sql.Value{sql.IntValue(i), sql.NullValue(sql.TypeVarchar), sql.NullValue(sql.TypeInt)})
	}

	rows := tbl.Rows()
	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, int64(i+1), row.Values[0].I64)
	}
}

func TestTable_UpdateMovesIndexEntries(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	row := tbl.Insert([]sql.Value{sql.IntValue(1), sql.StringValue(sql.TypeVarchar, "alice"), sql.IntValue(25)})

	ok := tbl.Update(row.ID(), []sql.Value{sql.IntValue(2), sql.StringValue(sql.TypeVarchar, "bob"), sql.IntValue(25)})
	require.True(t, ok)

	_, found := tbl.Lookup("id", sql.IntValue(1))
	assert.False(t, found, "old key must be gone")
	got, found := tbl.Lookup("id", sql.IntValue(2))
	require.True(t, found)
	assert.Equal(t, "bob", got.Values[1].S)
}

func TestTable_DeleteRemovesIndexEntries(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	a := tbl.Insert([]sql.Value{sql.IntValue(1), sql.StringValue(sql.TypeVarchar, "a"), sql.IntValue(1)})
	tbl.Insert([]sql.Value{sql.IntValue(2), sql.StringValue(sql.TypeVarchar, "b"), sql.IntValue(2)})

	require.True(t, tbl.Delete(a.ID()))
	assert.Equal(t, 1, tbl.Len())

	_, found := tbl.Lookup("id", sql.IntValue(1))
	assert.False(t, found)

	ix, _ := tbl.Index("id")
	assert.Equal(t, 1, ix.Len())

	// remaining row keeps its position
	assert.Equal(t, int64(2), tbl.Rows()[0].Values[0].I64)
}

func TestTable_NullValuesNotIndexed(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	tbl.Insert([]sql.Value{sql.IntValue(1), sql.NullValue(sql.TypeVarchar), sql.NullValue(sql.TypeInt)})
	tbl.Insert([]sql.Value{sql.IntValue(2), sql.NullValue(sql.TypeVarchar), sql.NullValue(sql.TypeInt)})

	ix, _ := tbl.Index("name")
	assert.Equal(t, 0, ix.Len())

	_, ok := ix.Lookup(sql.NullValue(sql.TypeVarchar))
	assert.False(t, ok)
}

func TestTable_RowIDsNotReused(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	a := tbl.Insert([]sql.Value{sql.IntValue(1), sql.NullValue(sql.TypeVarchar), sql.NullValue(sql.TypeInt)})
	tbl.Delete(a.ID())
	b := tbl.Insert([]sql.Value{sql.IntValue(1), sql.NullValue(sql.TypeVarchar), sql.NullValue(sql.TypeInt)})
	assert.Greater(t, b.ID(), a.ID())
}
