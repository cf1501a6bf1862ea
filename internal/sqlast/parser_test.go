package sqlast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SelectList(t *testing.T) {
	stmt, err := Parse(`SELECT id, users.name AS n, u.*, count(*) total FROM users`)
	require.NoError(t, err)
	require.Len(t, stmt.Columns, 4)

	assert.Equal(t, &ColumnRef{Column: "id"}, stmt.Columns[0])
	assert.Equal(t, &AliasExpr{Expr: &ColumnRef{Table: "users", Column: "name"}, Alias: "n"}, stmt.Columns[1])
	assert.Equal(t, &StarExpr{Table: "u"}, stmt.Columns[2])
	assert.Equal(t, &AliasExpr{Expr: &FuncCall{Name: "count", Star: true}, Alias: "total"}, stmt.Columns[3])

	require.NotNil(t, stmt.From)
	assert.Equal(t, &TableName{Name: "users"}, stmt.From.Source)
}

func TestParse_OrderBy(t *testing.T) {
	stmt, err := Parse(`SELECT * FROM t ORDER BY a, b DESC, c ASC NULLS LAST`)
	require.NoError(t, err)
	require.Len(t, stmt.OrderBy, 3)

	assert.Equal(t, &ColumnRef{Column: "a"}, stmt.OrderBy[0].Expr)
	assert.False(t, stmt.OrderBy[0].Desc)
	assert.True(t, stmt.OrderBy[1].Desc)
	assert.False(t, stmt.OrderBy[2].Desc)
	require.NotNil(t, stmt.OrderBy[2].NullsFirst)
	assert.False(t, *stmt.OrderBy[2].NullsFirst)
}

func TestParse_DerivedTable(t *testing.T) {
	stmt, err := Parse(`SELECT * FROM (SELECT id FROM users) AS t1 ORDER BY id`)
	require.NoError(t, err)

	derived, ok := stmt.From.Source.(*DerivedTable)
	require.True(t, ok, "expected derived table, got %T", stmt.From.Source)
	assert.Equal(t, "t1", derived.Alias)
	assert.Equal(t, []Expr{&ColumnRef{Column: "id"}}, derived.Select.Columns)
}

func TestParse_Joins(t *testing.T) {
	stmt, err := Parse(`SELECT a.id FROM a LEFT OUTER JOIN b ON a.id = b.a_id, c CROSS JOIN d`)
	require.NoError(t, err)
	require.Len(t, stmt.From.Joins, 3)

	assert.Equal(t, JoinLeft, stmt.From.Joins[0].Type)
	assert.Equal(t, &BinaryExpr{
		Left:  &ColumnRef{Table: "a", Column: "id"},
		Op:    TOKEN_EQ,
		Right: &ColumnRef{Table: "b", Column: "a_id"},
	}, stmt.From.Joins[0].Condition)
	assert.Equal(t, JoinComma, stmt.From.Joins[1].Type)
	assert.Equal(t, JoinCross, stmt.From.Joins[2].Type)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty", "   "},
		{"not_select", "DELETE FROM t"},
		{"trailing_tokens", "SELECT a FROM t garbage more"},
		{"union", "SELECT a FROM t UNION SELECT b FROM u"},
		{"missing_by", "SELECT a FROM t ORDER a"},
		{"unterminated_in", "SELECT a FROM t WHERE a IN (1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.sql)
			assert.Error(t, err)
		})
	}
}

func TestParseExpr_Precedence(t *testing.T) {
	expr, err := ParseExpr("a + b * 2")
	require.NoError(t, err)

	assert.Equal(t, &BinaryExpr{
		Left: &ColumnRef{Column: "a"},
		Op:   TOKEN_PLUS,
		Right: &BinaryExpr{
			Left:  &ColumnRef{Column: "b"},
			Op:    TOKEN_STAR,
			Right: &Literal{Type: LiteralNumber, Value: "2"},
		},
	}, expr)
}

func TestSplitStatements(t *testing.T) {
	script := `SELECT 'a;b' FROM t; -- trailing; comment
SELECT "x;y" FROM u;

;SELECT 1`

	got := SplitStatements(script)
	assert.Equal(t, []string{
		`SELECT 'a;b' FROM t`,
		"-- trailing; comment\nSELECT \"x;y\" FROM u",
		"SELECT 1",
	}, got)
}

func TestSplitSymbol(t *testing.T) {
	tests := []struct {
		in                   string
		table, column, alias string
	}{
		{"id", "", "id", ""},
		{"users__id", "users", "id", ""},
		{"created_at___c_at", "", "created_at", "c_at"},
		{"users__created_at___c_at", "users", "created_at", "c_at"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			table, column, alias := SplitSymbol(tt.in)
			assert.Equal(t, tt.table, table)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, tt.alias, alias)
		})
	}
}
