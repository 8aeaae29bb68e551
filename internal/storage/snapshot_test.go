package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsql/microsql/internal/sql"
)

func snapshotFixture(path string) *Database {
	db := NewDatabase(path)

	def := sql.BoolValue(true)
	users := NewTable("users", Schema{Cols: []Column{
		{Name: "id", Type: sql.TypeInt, PrimaryKey: true},
		{Name: "name", Type: sql.TypeVarchar, Unique: true, NotNull: true},
		{Name: "is_active", Type: sql.TypeBool, Default: &def},
		{Name: "created_at", Type: sql.TypeDatetime},
	}})
	users.Insert([]sql.Value{
		sql.IntValue(1),
		sql.StringValue(sql.TypeVarchar, "alice"),
		sql.BoolValue(true),
		sql.StringValue(sql.TypeDatetime, "2024-01-01 10:00:00"),
	})
	users.Insert([]sql.Value{
		sql.IntValue(2),
		sql.StringValue(sql.TypeVarchar, "bob"),
		sql.BoolValue(false),
		sql.NullValue(sql.TypeDatetime),
	})
	db.Add(users)

	posts := NewTable("posts", Schema{Cols: []Column{
		{Name: "id", Type: sql.TypeInt, PrimaryKey: true},
		{Name: "content", Type: sql.TypeText},
	}})
	posts.Insert([]sql.Value{sql.IntValue(1), sql.StringValue(sql.TypeText, "hello")})
	db.Add(posts)

	return db
}

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	db := snapshotFixture(path)
	require.NoError(t, db.Save())

	loaded, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, []string{"users", "posts"}, loaded.TableNames())

	users, ok := loaded.Table("users")
	require.True(t, ok)
	require.Equal(t, 2, users.Len())

	orig, _ := db.Table("users")
	assert.Equal(t, orig.Schema, users.Schema)
	for i, row := range users.Rows() {
		assert.Equal(t, orig.Rows()[i].Values, row.Values)
	}

	// indexes are rebuilt from rows on load
	got, ok := users.Lookup("name", sql.StringValue(sql.TypeVarchar, "bob"))
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Values[0].I64)
}

func TestSnapshot_DefaultSurvivesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, snapshotFixture(path).Save())

	loaded, err := Open(path)
	require.NoError(t, err)

	users, _ := loaded.Table("users")
	col := users.Schema.Cols[2]
	require.NotNil(t, col.Default)
	assert.Equal(t, sql.BoolValue(true), *col.Default)
}

func TestOpen_MissingFileYieldsEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	db, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, db.TableNames())
	assert.Equal(t, path, db.Path())
}

func TestOpen_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestOpen_RejectsRowCellTypeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	doc := `{"tables":[{"name":"t","columns":[{"name":"id","type":"INT"}],"rows":[["not-an-int"]]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestSave_NoPathIsNoop(t *testing.T) {
	db := NewDatabase("")
	require.NoError(t, db.Save())
}
