// Package query is an immutable SELECT query builder over the sqlast tree.
//
// A *Query is never modified after construction: every builder method returns
// a new value that shares the unchanged parts of its receiver. Each Query also
// owns a small cache record so that derived queries can be computed once per
// Query identity and handed back on every later request.
package query

import (
	"slices"
	"sync"

	"sqlorder/internal/schema"
	"sqlorder/internal/sqlast"
)

// Direction is the sort direction of one ORDER BY term.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// DirectionOf returns the direction of an ORDER BY item. Unmarked items are
// ascending.
func DirectionOf(item sqlast.OrderByItem) Direction {
	if item.Desc {
		return Descending
	}
	return Ascending
}

// OrderColumn records, for one ORDER BY term, the result column that carries
// its value and the direction it is sorted in.
type OrderColumn struct {
	Name      string    `json:"name"`
	Direction Direction `json:"direction"`
}

// Source is a data source in a FROM clause: a *Table, a nested *Query, or an
// *AliasedSource wrapping either.
type Source interface {
	source()
}

// Table is a base table reference.
type Table struct {
	Schema string
	Name   string
}

func (*Table) source() {}

// AliasedSource gives a source an alias.
type AliasedSource struct {
	Source Source
	Alias  string
}

func (*AliasedSource) source() {}

func (*Query) source() {}

// JoinClause is an explicit JOIN against another source.
type JoinClause struct {
	Type   sqlast.JoinType
	Source Source
	On     sqlast.Expr
	Using  []string
}

// Slot names one memoized derivation of a Query.
type Slot int

const (
	SlotSelectOrder Slot = iota
	SlotAppendOrder
	numSlots
)

type memo struct {
	once sync.Once
	q    *Query
	err  error
}

// cache is the per-Query record of memoized derivations. It is never copied
// between queries; every new Query gets a fresh record.
type cache struct {
	slots [numSlots]memo
}

// Query is an immutable SELECT statement.
type Query struct {
	distinct  bool
	selects   []sqlast.Expr // nil means no explicit list (SELECT *)
	sources   []Source
	joins     []JoinClause
	where     sqlast.Expr
	groupBy   []sqlast.Expr
	having    sqlast.Expr
	order     []sqlast.OrderByItem
	limit     sqlast.Expr
	offset    sqlast.Expr
	model     *schema.Table
	orderInfo []OrderColumn

	cache *cache
}

// New creates a query selecting from the given sources.
func New(sources ...Source) *Query {
	return &Query{sources: slices.Clone(sources), cache: &cache{}}
}

// From creates a query over the named base table.
func From(table string) *Query {
	return New(&Table{Name: table})
}

// clone returns a shallow copy with an empty cache record. Callers must
// replace, not append to, any slice they change.
func (q *Query) clone() *Query {
	c := *q
	c.cache = &cache{}
	return &c
}

// Cached returns the memoized result for slot, running compute the first time
// it is requested. Concurrent callers block until the single computation
// finishes and then all observe the same result or error.
func (q *Query) Cached(slot Slot, compute func() (*Query, error)) (*Query, error) {
	m := &q.cache.slots[slot]
	m.once.Do(func() {
		m.q, m.err = compute()
	})
	return m.q, m.err
}

// Selects returns the explicit select list, or nil when none is set.
func (q *Query) Selects() []sqlast.Expr { return slices.Clone(q.selects) }

// HasSelect reports whether the query has an explicit select list.
func (q *Query) HasSelect() bool { return q.selects != nil }

// Order returns the ORDER BY items.
func (q *Query) Order() []sqlast.OrderByItem { return slices.Clone(q.order) }

// HasOrder reports whether the query has an ORDER BY list.
func (q *Query) HasOrder() bool { return len(q.order) > 0 }

// Sources returns the FROM sources.
func (q *Query) Sources() []Source { return slices.Clone(q.sources) }

// Joins returns the explicit JOIN clauses.
func (q *Query) Joins() []JoinClause { return slices.Clone(q.joins) }

// Model returns the bound schema table, or nil.
func (q *Query) Model() *schema.Table { return q.model }

// OrderInfo returns the order projection recorded on the query, or nil when
// none has been computed.
func (q *Query) OrderInfo() []OrderColumn { return slices.Clone(q.orderInfo) }

// HasOrderInfo reports whether an order projection is recorded.
func (q *Query) HasOrderInfo() bool { return q.orderInfo != nil }

// IsJoined reports whether the query reads from more than one source.
func (q *Query) IsJoined() bool {
	return len(q.sources) > 1 || len(q.joins) > 0
}

// FirstSource returns the name under which columns of the first source are
// visible: the alias of an aliased source or the table name. A nested query
// without an alias has no name.
func (q *Query) FirstSource() (string, bool) {
	if len(q.sources) == 0 {
		return "", false
	}
	switch s := q.sources[0].(type) {
	case *AliasedSource:
		return s.Alias, s.Alias != ""
	case *Table:
		return s.Name, s.Name != ""
	}
	return "", false
}
