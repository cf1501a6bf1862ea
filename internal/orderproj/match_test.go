package orderproj

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sqlorder/internal/query"
	"sqlorder/internal/schema"
	"sqlorder/internal/sqlast"
)

func TestMatches(t *testing.T) {
	users := schema.NewTable("users", "id", "created_at", "description")
	fn := func() sqlast.Expr { return query.Func("function", query.Col("column1"), query.Int(2)) }

	tests := []struct {
		name   string
		sel    Term
		exp    Term
		source string
		model  Model
		want   bool
	}{
		{"alias_by_name", Aliased{Inner: query.Col("description"), Alias: "des"}, Ident{Name: "des"}, "users", nil, true},
		{"alias_by_inner_column", Aliased{Inner: query.Col("description"), Alias: "des"}, Ident{Name: "description"}, "users", nil, true},
		{"alias_by_inner_qualified", Aliased{Inner: query.Col("description"), Alias: "des"}, Qualified{Table: "users", Column: "description"}, "users", nil, true},
		{"alias_inner_other_table", Aliased{Inner: query.Col("description"), Alias: "des"}, Qualified{Table: "posts", Column: "description"}, "users", nil, false},
		{"alias_by_inner_function", Aliased{Inner: fn(), Alias: "v"}, Opaque{Node: fn()}, "users", nil, true},
		{"alias_of_alias", Aliased{Inner: query.As(query.Col("x"), "inner"), Alias: "outer"}, Ident{Name: "inner"}, "users", nil, true},

		{"qualified_vs_bare", Qualified{Table: "users", Column: "id"}, Ident{Name: "id"}, "", nil, true},
		{"qualified_vs_bare_other", Qualified{Table: "users", Column: "id"}, Ident{Name: "name"}, "", nil, false},
		{"qualified_vs_same", Qualified{Table: "users", Column: "id"}, Qualified{Table: "users", Column: "id"}, "", nil, true},
		{"qualified_vs_other_table", Qualified{Table: "users", Column: "id"}, Qualified{Table: "posts", Column: "id"}, "", nil, false},
		{"qualified_vs_opaque", Qualified{Table: "users", Column: "id"}, Opaque{Node: fn()}, "", nil, false},

		{"wildcard_vs_qualified_same_table", Wildcard{Table: "users"}, Qualified{Table: "users", Column: "anything"}, "users", nil, true},
		{"wildcard_vs_qualified_other_table", Wildcard{Table: "users"}, Qualified{Table: "users_2", Column: "id"}, "users", nil, false},
		{"wildcard_vs_bare_without_model", Wildcard{Table: "users"}, Ident{Name: "id"}, "users", nil, false},
		{"wildcard_vs_bare_known_column", Wildcard{Table: "users"}, Ident{Name: "id"}, "users", users, true},
		{"wildcard_vs_bare_unknown_column", Wildcard{Table: "users"}, Ident{Name: "fake_column"}, "users", users, false},
		{"wildcard_vs_bare_other_model", Wildcard{Table: "posts"}, Ident{Name: "id"}, "posts", users, false},
		{"wildcard_vs_opaque", Wildcard{Table: "users"}, Opaque{Node: fn()}, "users", users, false},

		{"ident_vs_same_ident", Ident{Name: "id"}, Ident{Name: "id"}, "", nil, true},
		{"ident_vs_other_ident", Ident{Name: "id"}, Ident{Name: "name"}, "", nil, false},
		{"opaque_equal", Opaque{Node: fn()}, Opaque{Node: fn()}, "users", nil, true},
		{"opaque_different_args", Opaque{Node: fn()}, Opaque{Node: query.Func("function", query.Col("column1"), query.Int(3))}, "users", nil, false},
		{"opaque_vs_literal_sql", Opaque{Node: fn()}, Opaque{Node: query.Lit("function(column1, 2)")}, "users", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.sel, tt.exp, tt.source, tt.model))
		})
	}
}
