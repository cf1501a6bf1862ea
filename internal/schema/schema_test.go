package schema

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_HasColumn(t *testing.T) {
	users := NewTable("users", "id", "created_at", "description")

	assert.Equal(t, "users", users.TableName())
	assert.True(t, users.HasColumn("id"))
	assert.True(t, users.HasColumn("description"))
	assert.False(t, users.HasColumn("fake_column"))
	assert.False(t, users.HasColumn("ID"), "column lookup is case sensitive")

	var missing *Table
	assert.Empty(t, missing.TableName())
	assert.False(t, missing.HasColumn("id"))
}

func TestCatalog_Table(t *testing.T) {
	c := NewCatalog(NewTable("users", "id"), NewTable("posts", "id", "user_id"))

	got, err := c.Table("posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "user_id"}, got.Columns)

	_, err = c.Table("comments")
	require.Error(t, err)
	var unknown *UnknownTableError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "comments", unknown.Name)
	assert.Contains(t, err.Error(), `"comments"`)
}

func TestCatalog_Merge(t *testing.T) {
	base := NewCatalog(NewTable("users", "id"), NewTable("posts", "id"))
	overlay := FromMap(map[string][]string{
		"users":    {"id", "email"},
		"comments": {"id", "body"},
	})

	merged := base.Merge(overlay)
	require.Equal(t, 3, merged.Len())

	users, err := merged.Table("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email"}, users.Columns)

	names := make([]string, 0, merged.Len())
	for _, tbl := range merged.Tables() {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"comments", "posts", "users"}, names)

	// Inputs are untouched.
	orig, err := base.Table("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, orig.Columns)
	assert.Equal(t, 2, base.Len())
}

func TestLoad_SQLite(t *testing.T) {
	db, err := sql.Open(DriverSQLite, "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			created_at TIMESTAMP,
			description TEXT
		);
		CREATE TABLE posts (
			id INTEGER PRIMARY KEY,
			user_id INTEGER REFERENCES users(id),
			title TEXT
		);
		CREATE VIEW recent_posts AS SELECT id, title FROM posts;
	`)
	require.NoError(t, err)

	c, err := Load(context.Background(), db, DriverSQLite)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	users, err := c.Table("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "created_at", "description"}, users.Columns)

	view, err := c.Table("recent_posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "title"}, view.Columns)
}

func TestLoad_DuckDB(t *testing.T) {
	db, err := sql.Open(DriverDuckDB, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE users (id INTEGER, created_at TIMESTAMP, description VARCHAR)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE tags (name VARCHAR)`)
	require.NoError(t, err)

	c, err := Load(context.Background(), db, DriverDuckDB)
	require.NoError(t, err)

	users, err := c.Table("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "created_at", "description"}, users.Columns)

	tags, err := c.Table("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tags.Columns)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	_, err := Load(context.Background(), nil, "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema driver")
}
