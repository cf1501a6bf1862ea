package sqlast

// Node is the base interface for all AST nodes.
type Node interface {
	node()
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// TableRef is a marker interface for table reference nodes.
type TableRef interface {
	Node
	tableRefNode()
}

// === Table Reference Nodes ===

// TableName represents a table name reference (optionally schema-qualified).
type TableName struct {
	Schema string
	Name   string
	Alias  string
}

func (*TableName) node()         {}
func (*TableName) tableRefNode() {}

// DerivedTable represents a subquery in FROM clause.
type DerivedTable struct {
	Select *SelectStmt
	Alias  string
}

func (*DerivedTable) node()         {}
func (*DerivedTable) tableRefNode() {}

// === Statement Nodes ===

// SelectStmt represents a single SELECT statement.
// Aliased columns are AliasExpr and table stars are StarExpr.
type SelectStmt struct {
	Distinct bool
	Columns  []Expr
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
	Limit    Expr
	Offset   Expr
}

func (*SelectStmt) node() {}

// FromClause represents the FROM clause.
type FromClause struct {
	Source TableRef
	Joins  []*Join
}

// Join represents a JOIN clause.
type Join struct {
	Type      JoinType
	Right     TableRef
	Condition Expr     // ON clause
	Using     []string // USING (col1, col2)
}

// JoinType represents the type of join.
type JoinType string

// JoinInner and friends classify SQL JOIN types.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
	JoinComma JoinType = ","
)

// OrderByItem represents an item in ORDER BY clause.
type OrderByItem struct {
	Expr       Expr
	Desc       bool
	NullsFirst *bool // nil = default, true = NULLS FIRST, false = NULLS LAST
}
