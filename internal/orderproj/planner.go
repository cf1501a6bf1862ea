package orderproj

import (
	"log/slog"
	"strconv"

	"sqlorder/internal/query"
	"sqlorder/internal/sqlast"
)

// OrderAliasPrefix prefixes the alias of every synthesized selection.
const OrderAliasPrefix = "order_"

func orderAlias(i int) string {
	return OrderAliasPrefix + strconv.Itoa(i)
}

// Planner rewrites queries so that their sort keys can be read back from
// result rows. Results are cached on the input query, so every Planner
// returns the same value for the same *query.Query.
type Planner struct {
	logger *slog.Logger
}

// NewPlanner creates a Planner. A nil logger discards all output.
func NewPlanner(logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{logger: logger}
}

var defaultPlanner = NewPlanner(nil)

// SelectOrder calls (*Planner).SelectOrder on a planner without logging.
func SelectOrder(q *query.Query) *query.Query {
	return defaultPlanner.SelectOrder(q)
}

// AppendOrderAsSelection calls (*Planner).AppendOrderAsSelection on a planner
// without logging.
func AppendOrderAsSelection(q *query.Query) (*query.Query, error) {
	return defaultPlanner.AppendOrderAsSelection(q)
}

// SelectOrder returns a query whose SELECT list holds exactly the ORDER BY
// expressions of q, each aliased order_<i> and without its direction. A query
// without ORDER BY is returned as is.
func (p *Planner) SelectOrder(q *query.Query) *query.Query {
	if !q.HasOrder() {
		return q
	}

	res, _ := q.Cached(query.SlotSelectOrder, func() (*query.Query, error) {
		order := q.Order()
		exprs := make([]sqlast.Expr, len(order))
		for i, item := range order {
			exprs[i] = &sqlast.AliasExpr{Expr: selectable(Normalize(item.Expr)), Alias: orderAlias(i)}
		}
		return q.Select(exprs...), nil
	})
	return res
}

// AppendOrderAsSelection returns a query that selects every ORDER BY
// expression of q and records, in OrderInfo, the result column name and
// direction of each. Expressions that an existing selection already carries
// are recorded under that selection's name. The rest are appended to the
// SELECT list as order_<i>.
//
// A query without ORDER BY, or one that already has OrderInfo, is returned
// as is. If more than one selection matches an ORDER BY expression the query
// is ambiguous and an *AmbiguousMatchError is returned.
func (p *Planner) AppendOrderAsSelection(q *query.Query) (*query.Query, error) {
	if !q.HasOrder() || q.HasOrderInfo() {
		return q, nil
	}
	return q.Cached(query.SlotAppendOrder, func() (*query.Query, error) {
		return p.appendOrder(q)
	})
}

func (p *Planner) appendOrder(q *query.Query) (*query.Query, error) {
	source := selectionSource(q)
	model := modelOf(q)

	raw := ExtractSelections(q)
	selections := make([]Term, len(raw))
	for i, e := range raw {
		selections[i] = normalizeSelection(e, source)
	}

	order := q.Order()
	info := make([]query.OrderColumn, 0, len(order))
	var appended []sqlast.Expr

	for i, item := range order {
		exp := Normalize(item.Expr)

		var matched []Term
		for _, sel := range selections {
			if Matches(sel, exp, source, model) {
				matched = append(matched, sel)
			}
		}

		var (
			name string
			ok   bool
		)
		switch len(matched) {
		case 0:
		case 1:
			target := matched[0]
			// A wildcard has no single column name; the ORDER BY
			// expression names the column instead.
			if _, wild := target.(Wildcard); wild {
				target = exp
			}
			name, ok = nameOf(target)
		default:
			err := ambiguous(q, exp, matched)
			p.logger.Warn("ambiguous order term",
				"index", i, "expr", err.Expr, "candidates", err.Candidates)
			return nil, err
		}

		if !ok {
			name = orderAlias(i)
			appended = append(appended, &sqlast.AliasExpr{Expr: selectable(exp), Alias: name})
		}
		p.logger.Debug("order term resolved",
			"index", i, "name", name, "appended", !ok, "matches", len(matched))

		info = append(info, query.OrderColumn{Name: name, Direction: query.DirectionOf(item)})
	}

	res := q
	if len(appended) > 0 {
		res = res.SelectAppend(appended...)
	}
	return res.WithOrderInfo(info), nil
}

// modelOf returns the bound schema of q as a Model, or nil. A nil
// *schema.Table must not become a non-nil interface.
func modelOf(q *query.Query) Model {
	if m := q.Model(); m != nil {
		return m
	}
	return nil
}

func ambiguous(q *query.Query, exp Term, matched []Term) *AmbiguousMatchError {
	candidates := make([]string, len(matched))
	for i, m := range matched {
		candidates[i] = sqlast.FormatExpr(m.Expr())
	}
	return &AmbiguousMatchError{
		Query:      q.SQL(),
		Expr:       sqlast.FormatExpr(exp.Expr()),
		Candidates: candidates,
	}
}
