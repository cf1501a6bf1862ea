package orderproj

import (
	"sqlorder/internal/query"
	"sqlorder/internal/sqlast"
)

// ExtractSelections returns the SELECT list in force for q. Without an
// explicit list it looks through a single derived-table source, unwrapping
// its alias. A base table, several sources or a join yield nil.
func ExtractSelections(q *query.Query) []sqlast.Expr {
	if q.HasSelect() {
		return q.Selects()
	}

	sources := q.Sources()
	if len(sources) != 1 || q.IsJoined() {
		return nil
	}

	src := sources[0]
	if a, ok := src.(*query.AliasedSource); ok {
		src = a.Source
	}
	if inner, ok := src.(*query.Query); ok {
		return ExtractSelections(inner)
	}
	return nil
}

// selectionSource returns the table name bare SELECT columns of q belong to,
// or "" when that cannot be known.
func selectionSource(q *query.Query) string {
	if q.IsJoined() {
		return ""
	}
	src, _ := q.FirstSource()
	return src
}
