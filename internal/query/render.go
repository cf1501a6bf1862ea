package query

import (
	"slices"

	"sqlorder/internal/sqlast"
)

// Stmt converts the query into a SELECT statement tree. The returned tree
// shares expression nodes with the query and must not be modified.
func (q *Query) Stmt() *sqlast.SelectStmt {
	stmt := &sqlast.SelectStmt{
		Distinct: q.distinct,
		Columns:  slices.Clone(q.selects),
		Where:    q.where,
		GroupBy:  slices.Clone(q.groupBy),
		Having:   q.having,
		OrderBy:  slices.Clone(q.order),
		Limit:    q.limit,
		Offset:   q.offset,
	}

	if len(q.sources) == 0 {
		return stmt
	}

	from := &sqlast.FromClause{Source: tableRef(q.sources[0])}
	for _, src := range q.sources[1:] {
		from.Joins = append(from.Joins, &sqlast.Join{Type: sqlast.JoinComma, Right: tableRef(src)})
	}
	for _, j := range q.joins {
		from.Joins = append(from.Joins, &sqlast.Join{
			Type:      j.Type,
			Right:     tableRef(j.Source),
			Condition: j.On,
			Using:     slices.Clone(j.Using),
		})
	}
	stmt.From = from
	return stmt
}

// SQL renders the query as SQL text.
func (q *Query) SQL() string {
	return sqlast.Format(q.Stmt())
}

func (q *Query) String() string {
	return q.SQL()
}

func tableRef(src Source) sqlast.TableRef {
	switch s := src.(type) {
	case *Table:
		return &sqlast.TableName{Schema: s.Schema, Name: s.Name}
	case *Query:
		return &sqlast.DerivedTable{Select: s.Stmt()}
	case *AliasedSource:
		ref := tableRef(s.Source)
		switch r := ref.(type) {
		case *sqlast.TableName:
			r.Alias = s.Alias
		case *sqlast.DerivedTable:
			r.Alias = s.Alias
		}
		return ref
	}
	return nil
}
