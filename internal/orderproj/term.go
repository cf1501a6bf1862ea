// Package orderproj works out how the value of every ORDER BY term of a query
// can be read back from its result rows.
//
// Each ORDER BY term is matched against the query's SELECT list. A term that
// is already selected (directly, through an alias, or through a table.*
// wildcard confirmed by schema) is recorded under that selection's name. Any
// other term is appended to the SELECT list under the alias order_<i>.
package orderproj

import "sqlorder/internal/sqlast"

// Term is the canonical shape of an expression after normalization. The set
// of shapes is closed: Ident, Qualified, Aliased, Wildcard and Opaque.
type Term interface {
	// Expr converts the term back into an expression node.
	Expr() sqlast.Expr
	term()
}

// Ident is a bare column name.
type Ident struct {
	Name string
}

// Qualified is a table-qualified column.
type Qualified struct {
	Table  string
	Column string
}

// Aliased is an expression with an alias. Inner is not normalized.
type Aliased struct {
	Inner sqlast.Expr
	Alias string
}

// Wildcard selects every column of Table.
type Wildcard struct {
	Table string
}

// Opaque is any other expression, compared only by structural equality.
type Opaque struct {
	Node sqlast.Expr
}

func (Ident) term()     {}
func (Qualified) term() {}
func (Aliased) term()   {}
func (Wildcard) term()  {}
func (Opaque) term()    {}

func (t Ident) Expr() sqlast.Expr     { return &sqlast.ColumnRef{Column: t.Name} }
func (t Qualified) Expr() sqlast.Expr { return &sqlast.ColumnRef{Table: t.Table, Column: t.Column} }
func (t Aliased) Expr() sqlast.Expr   { return &sqlast.AliasExpr{Expr: t.Inner, Alias: t.Alias} }
func (t Wildcard) Expr() sqlast.Expr  { return &sqlast.StarExpr{Table: t.Table} }
func (t Opaque) Expr() sqlast.Expr    { return t.Node }

// nameOf returns the result column name a term is read back under. Only
// identifiers, qualified columns and aliases have one.
func nameOf(t Term) (string, bool) {
	switch t := t.(type) {
	case Ident:
		return t.Name, true
	case Aliased:
		return t.Alias, true
	case Qualified:
		return t.Column, true
	}
	return "", false
}

// selectable returns the expression to put in a SELECT list for a term. An
// aliased term contributes its inner expression so that it can be re-aliased.
func selectable(t Term) sqlast.Expr {
	if a, ok := t.(Aliased); ok {
		return a.Inner
	}
	return t.Expr()
}
