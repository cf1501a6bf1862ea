package query

import (
	"fmt"

	"sqlorder/internal/sqlast"
)

// Parse parses a single SELECT statement into a Query. Derived tables become
// nested queries and a lone unqualified * means no explicit select list.
func Parse(sql string) (*Query, error) {
	stmt, err := sqlast.Parse(sql)
	if err != nil {
		return nil, err
	}
	return FromStmt(stmt)
}

// FromStmt converts a parsed SELECT statement into a Query.
func FromStmt(stmt *sqlast.SelectStmt) (*Query, error) {
	if stmt == nil {
		return nil, fmt.Errorf("nil statement")
	}

	q := New()
	q.distinct = stmt.Distinct
	q.where = stmt.Where
	q.having = stmt.Having
	q.limit = stmt.Limit
	q.offset = stmt.Offset
	if len(stmt.GroupBy) > 0 {
		q.groupBy = stmt.GroupBy
	}
	if len(stmt.OrderBy) > 0 {
		q.order = stmt.OrderBy
	}
	if !isBareStar(stmt.Columns) {
		q.selects = stmt.Columns
	}

	if stmt.From == nil {
		return q, nil
	}

	first, err := sourceOf(stmt.From.Source)
	if err != nil {
		return nil, err
	}
	q.sources = []Source{first}

	for _, j := range stmt.From.Joins {
		src, err := sourceOf(j.Right)
		if err != nil {
			return nil, err
		}
		if j.Type == sqlast.JoinComma {
			q.sources = append(q.sources, src)
			continue
		}
		q.joins = append(q.joins, JoinClause{Type: j.Type, Source: src, On: j.Condition, Using: j.Using})
	}
	return q, nil
}

func sourceOf(ref sqlast.TableRef) (Source, error) {
	var (
		src   Source
		alias string
	)
	switch t := ref.(type) {
	case *sqlast.TableName:
		src = &Table{Schema: t.Schema, Name: t.Name}
		alias = t.Alias
	case *sqlast.DerivedTable:
		inner, err := FromStmt(t.Select)
		if err != nil {
			return nil, fmt.Errorf("derived table: %w", err)
		}
		src = inner
		alias = t.Alias
	default:
		return nil, fmt.Errorf("unsupported table reference %T", ref)
	}

	if alias != "" {
		return &AliasedSource{Source: src, Alias: alias}, nil
	}
	return src, nil
}

func isBareStar(cols []sqlast.Expr) bool {
	if len(cols) != 1 {
		return len(cols) == 0
	}
	star, ok := cols[0].(*sqlast.StarExpr)
	return ok && star.Table == ""
}
