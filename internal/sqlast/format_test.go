package sqlast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormat_RoundTrip tests that format(parse(sql)) produces functionally
// equivalent SQL. The output uses quoted identifiers and SQL-standard forms.
func TestFormat_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "select_star",
			sql:  "SELECT * FROM t",
			want: `SELECT * FROM "t"`,
		},
		{
			name: "select_alias",
			sql:  "SELECT x AS y, t.* FROM t",
			want: `SELECT "x" AS "y", "t".* FROM "t"`,
		},
		{
			name: "where_ne",
			sql:  `SELECT * FROM t WHERE x != 1 AND name = 'it''s'`,
			want: `SELECT * FROM "t" WHERE "x" <> 1 AND "name" = 'it''s'`,
		},
		{
			name: "order_by",
			sql:  "SELECT * FROM t ORDER BY x ASC, y DESC NULLS FIRST",
			want: `SELECT * FROM "t" ORDER BY "x", "y" DESC NULLS FIRST`,
		},
		{
			name: "limit_offset",
			sql:  "SELECT * FROM t LIMIT 10 OFFSET 5",
			want: `SELECT * FROM "t" LIMIT 10 OFFSET 5`,
		},
		{
			name: "group_by_having",
			sql:  "SELECT a, count(DISTINCT b) FROM t GROUP BY a HAVING count(*) > 1",
			want: `SELECT "a", count(DISTINCT "b") FROM "t" GROUP BY "a" HAVING count(*) > 1`,
		},
		{
			name: "derived_table",
			sql:  "SELECT * FROM (SELECT id FROM users) t1",
			want: `SELECT * FROM (SELECT "id" FROM "users") AS "t1"`,
		},
		{
			name: "join_using",
			sql:  "SELECT * FROM a JOIN b USING (id)",
			want: `SELECT * FROM "a" INNER JOIN "b" USING ("id")`,
		},
		{
			name: "case_cast",
			sql:  "SELECT CASE WHEN a IS NULL THEN 0 ELSE CAST(a AS integer) END, b::text FROM t",
			want: `SELECT CASE WHEN "a" IS NULL THEN 0 ELSE CAST("a" AS INTEGER) END, "b"::TEXT FROM "t"`,
		},
		{
			name: "in_between_like",
			sql:  "SELECT * FROM t WHERE a NOT IN (1, 2) AND b BETWEEN 1 AND 3 AND c LIKE 'x%'",
			want: `SELECT * FROM "t" WHERE "a" NOT IN (1, 2) AND "b" BETWEEN 1 AND 3 AND "c" LIKE 'x%'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(stmt))

			// The formatted output must parse back to the same tree.
			again, err := Parse(Format(stmt))
			require.NoError(t, err)
			assert.Equal(t, stmt, again)
		})
	}
}

func TestFormatExpr_BuilderNodes(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"identifier", &Identifier{Name: "id"}, `"id"`},
		{"qualified_ref", &QualifiedRef{Table: &Identifier{Name: "users"}, Column: &Identifier{Name: "id"}}, `"users"."id"`},
		{"symbol_full", &Symbol{Value: "users__created_at___c_at"}, `"users"."created_at" AS "c_at"`},
		{"symbol_bare", &Symbol{Value: "id"}, `"id"`},
		{"raw", &RawExpr{SQL: "function(column1, 2)"}, "function(column1, 2)"},
		{"alias_of_func", &AliasExpr{Expr: &FuncCall{Name: "lower", Args: []Expr{&ColumnRef{Column: "x"}}}, Alias: "v"}, `lower("x") AS "v"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExpr(tt.expr))
		})
	}
}

func TestEqual(t *testing.T) {
	a := &FuncCall{Name: "f", Args: []Expr{&ColumnRef{Column: "x"}, &Literal{Type: LiteralNumber, Value: "2"}}}
	b := &FuncCall{Name: "f", Args: []Expr{&ColumnRef{Column: "x"}, &Literal{Type: LiteralNumber, Value: "2"}}}
	c := &FuncCall{Name: "f", Args: []Expr{&ColumnRef{Column: "y"}, &Literal{Type: LiteralNumber, Value: "2"}}}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, &RawExpr{SQL: "f(x, 2)"}))
}
