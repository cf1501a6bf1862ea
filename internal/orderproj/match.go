package orderproj

import "sqlorder/internal/sqlast"

// Model is the schema of the table a query is bound to.
type Model interface {
	TableName() string
	HasColumn(name string) bool
}

// Matches reports whether the selection sel always carries the value of the
// ORDER BY expression exp. sel must come from normalizeSelection with the
// same source, exp from Normalize. model may be nil when the query is not
// bound to a known table.
//
// Matching is conservative: whenever the answer cannot be confirmed the
// result is false.
func Matches(sel, exp Term, source string, model Model) bool {
	switch s := sel.(type) {
	case Aliased:
		if id, ok := exp.(Ident); ok && id.Name == s.Alias {
			return true
		}
		return Matches(normalizeSelection(s.Inner, source), exp, source, model)

	case Qualified:
		switch e := exp.(type) {
		case Ident:
			return s.Column == e.Name
		case Qualified:
			return s == e
		}
		return false

	case Wildcard:
		switch e := exp.(type) {
		case Qualified:
			return e.Table == s.Table
		case Ident:
			// A bare name only resolves through the wildcard when the bound
			// schema confirms the column.
			return model != nil && model.TableName() == s.Table && model.HasColumn(e.Name)
		}
		return false

	case Ident, Opaque:
		return sqlast.Equal(sel.Expr(), exp.Expr())
	}
	return false
}
