package orderproj

import "sqlorder/internal/sqlast"

// Normalize maps the top-level shape of an expression onto a Term. It is
// shallow: only symbols, identifiers, column references, aliases and table
// wildcards are recognized. Everything else becomes Opaque. Normalize never
// fails, and Normalize(t.Expr()) == t for every term it returns.
func Normalize(e sqlast.Expr) Term {
	switch e := e.(type) {
	case *sqlast.Symbol:
		table, column, alias := sqlast.SplitSymbol(e.Value)
		var base Term = Ident{Name: column}
		if table != "" {
			base = Qualified{Table: table, Column: column}
		}
		if alias != "" {
			return Aliased{Inner: base.Expr(), Alias: alias}
		}
		return base

	case *sqlast.Identifier:
		return Ident{Name: e.Name}

	case *sqlast.ColumnRef:
		if e.Table == "" {
			return Ident{Name: e.Column}
		}
		return Qualified{Table: e.Table, Column: e.Column}

	case *sqlast.QualifiedRef:
		table, tok := Normalize(e.Table).(Ident)
		column, cok := Normalize(e.Column).(Ident)
		if tok && cok {
			return Qualified{Table: table.Name, Column: column.Name}
		}
		return Opaque{Node: e}

	case *sqlast.AliasExpr:
		return Aliased{Inner: e.Expr, Alias: e.Alias}

	case *sqlast.StarExpr:
		if e.Table != "" {
			return Wildcard{Table: e.Table}
		}
	}
	return Opaque{Node: e}
}

// normalizeSelection normalizes an expression found in a SELECT list. A bare
// name there can only mean a column of the query's single source, so when
// source is known the name is qualified with it. ORDER BY terms must not go
// through here: a bare name in ORDER BY may refer to a SELECT alias instead.
func normalizeSelection(e sqlast.Expr, source string) Term {
	t := Normalize(e)
	if id, ok := t.(Ident); ok && source != "" {
		return Qualified{Table: source, Column: id.Name}
	}
	return t
}
