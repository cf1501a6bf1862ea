package query

import (
	"slices"
	"strconv"

	"sqlorder/internal/schema"
	"sqlorder/internal/sqlast"
)

// FromSelfAlias is the alias given to a query wrapped by FromSelf.
const FromSelfAlias = "t1"

// Select replaces the select list. Calling it with no expressions removes the
// explicit list.
func (q *Query) Select(exprs ...sqlast.Expr) *Query {
	c := q.clone()
	if len(exprs) == 0 {
		c.selects = nil
	} else {
		c.selects = slices.Clone(exprs)
	}
	return c
}

// SelectAppend adds expressions to the end of the select list. A query without
// an explicit list keeps selecting every column by starting the new list
// with a bare wildcard.
func (q *Query) SelectAppend(exprs ...sqlast.Expr) *Query {
	cur := q.selects
	if len(cur) == 0 {
		cur = []sqlast.Expr{&sqlast.StarExpr{}}
	}
	c := q.clone()
	c.selects = append(slices.Clone(cur), exprs...)
	return c
}

// SelectAll selects every column of each named table (table.*).
func (q *Query) SelectAll(tables ...string) *Query {
	exprs := make([]sqlast.Expr, len(tables))
	for i, t := range tables {
		exprs[i] = &sqlast.StarExpr{Table: t}
	}
	return q.Select(exprs...)
}

// Distinct marks the query SELECT DISTINCT.
func (q *Query) Distinct() *Query {
	c := q.clone()
	c.distinct = true
	return c
}

// OrderBy replaces the ORDER BY list.
func (q *Query) OrderBy(items ...sqlast.OrderByItem) *Query {
	c := q.clone()
	c.order = slices.Clone(items)
	return c
}

// Unordered removes the ORDER BY list.
func (q *Query) Unordered() *Query {
	return q.OrderBy()
}

// Where sets the WHERE condition, ANDing it with an existing one.
func (q *Query) Where(cond sqlast.Expr) *Query {
	c := q.clone()
	if q.where == nil {
		c.where = cond
	} else {
		c.where = &sqlast.BinaryExpr{Left: q.where, Op: sqlast.TOKEN_AND, Right: cond}
	}
	return c
}

// GroupBy replaces the GROUP BY list.
func (q *Query) GroupBy(exprs ...sqlast.Expr) *Query {
	c := q.clone()
	c.groupBy = slices.Clone(exprs)
	return c
}

// Having sets the HAVING condition.
func (q *Query) Having(cond sqlast.Expr) *Query {
	c := q.clone()
	c.having = cond
	return c
}

// Join adds an explicit join.
func (q *Query) Join(typ sqlast.JoinType, src Source, on sqlast.Expr) *Query {
	c := q.clone()
	c.joins = append(slices.Clone(q.joins), JoinClause{Type: typ, Source: src, On: on})
	return c
}

// JoinUsing adds an explicit join with a USING column list.
func (q *Query) JoinUsing(typ sqlast.JoinType, src Source, cols ...string) *Query {
	c := q.clone()
	c.joins = append(slices.Clone(q.joins), JoinClause{Type: typ, Source: src, Using: slices.Clone(cols)})
	return c
}

// Limit sets LIMIT.
func (q *Query) Limit(n int) *Query {
	c := q.clone()
	c.limit = Int(n)
	return c
}

// Offset sets OFFSET.
func (q *Query) Offset(n int) *Query {
	c := q.clone()
	c.offset = Int(n)
	return c
}

// FromSelf wraps the query as the aliased derived table of a new query. The
// bound model carries over.
func (q *Query) FromSelf() *Query {
	outer := New(&AliasedSource{Source: q, Alias: FromSelfAlias})
	outer.model = q.model
	return outer
}

// BindModel binds the query to a known table schema.
func (q *Query) BindModel(t *schema.Table) *Query {
	c := q.clone()
	c.model = t
	return c
}

// WithOrderInfo records an order projection on the query.
func (q *Query) WithOrderInfo(info []OrderColumn) *Query {
	c := q.clone()
	c.orderInfo = slices.Clone(info)
	if c.orderInfo == nil {
		c.orderInfo = []OrderColumn{}
	}
	return c
}

// Sym is the delimiter-encoded shorthand table__column___alias.
func Sym(v string) *sqlast.Symbol {
	return &sqlast.Symbol{Value: v}
}

// Col is a bare column reference.
func Col(name string) *sqlast.ColumnRef {
	return &sqlast.ColumnRef{Column: name}
}

// Qualify is a table-qualified column reference.
func Qualify(table, column string) *sqlast.ColumnRef {
	return &sqlast.ColumnRef{Table: table, Column: column}
}

// QualifyExpr qualifies an arbitrary column expression with an arbitrary
// table expression.
func QualifyExpr(table, column sqlast.Expr) *sqlast.QualifiedRef {
	return &sqlast.QualifiedRef{Table: table, Column: column}
}

// Ident is an explicit identifier wrapper.
func Ident(name string) *sqlast.Identifier {
	return &sqlast.Identifier{Name: name}
}

// As aliases an expression.
func As(e sqlast.Expr, alias string) *sqlast.AliasExpr {
	return &sqlast.AliasExpr{Expr: e, Alias: alias}
}

// Asc is an ascending ORDER BY item.
func Asc(e sqlast.Expr) sqlast.OrderByItem {
	return sqlast.OrderByItem{Expr: e}
}

// Desc is a descending ORDER BY item.
func Desc(e sqlast.Expr) sqlast.OrderByItem {
	return sqlast.OrderByItem{Expr: e, Desc: true}
}

// Func is a function call.
func Func(name string, args ...sqlast.Expr) *sqlast.FuncCall {
	return &sqlast.FuncCall{Name: name, Args: args}
}

// Lit is literal SQL, rendered verbatim.
func Lit(sql string) *sqlast.RawExpr {
	return &sqlast.RawExpr{SQL: sql}
}

// Int is an integer literal.
func Int(n int) *sqlast.Literal {
	return &sqlast.Literal{Type: sqlast.LiteralNumber, Value: strconv.Itoa(n)}
}

// Str is a string literal.
func Str(s string) *sqlast.Literal {
	return &sqlast.Literal{Type: sqlast.LiteralString, Value: s}
}
