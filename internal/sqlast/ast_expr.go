package sqlast

import "strings"

// === Identifier Nodes ===

// ColumnRef represents a column reference, optionally qualified with table name.
type ColumnRef struct {
	Table  string // optional table/alias qualifier
	Column string
}

func (*ColumnRef) node()     {}
func (*ColumnRef) exprNode() {}

// Identifier wraps a single unqualified name. Builders produce it when a
// name must be treated as an identifier regardless of how it is spelled.
type Identifier struct {
	Name string
}

func (*Identifier) node()     {}
func (*Identifier) exprNode() {}

// QualifiedRef is a table-qualified reference whose parts are themselves
// expressions, e.g. a table name qualifying an Identifier.
type QualifiedRef struct {
	Table  Expr
	Column Expr
}

func (*QualifiedRef) node()     {}
func (*QualifiedRef) exprNode() {}

// Symbol is the delimiter-encoded shorthand "table__column___alias".
// Table and alias parts are optional.
type Symbol struct {
	Value string
}

func (*Symbol) node()     {}
func (*Symbol) exprNode() {}

// Symbol delimiters.
const (
	TableDelimiter = "__"
	AliasDelimiter = "___"
)

// SplitSymbol splits a symbol value into its table, column and alias parts.
// Missing parts are returned empty.
func SplitSymbol(v string) (table, column, alias string) {
	column = v
	if i := strings.Index(column, AliasDelimiter); i > 0 {
		column, alias = column[:i], column[i+len(AliasDelimiter):]
	}
	if i := strings.Index(column, TableDelimiter); i > 0 {
		table, column = column[:i], column[i+len(TableDelimiter):]
	}
	return table, column, alias
}

// AliasExpr represents "expr AS alias".
type AliasExpr struct {
	Expr  Expr
	Alias string
}

func (*AliasExpr) node()     {}
func (*AliasExpr) exprNode() {}

// StarExpr represents a * or table.* expression.
type StarExpr struct {
	Table string // optional table qualifier
}

func (*StarExpr) node()     {}
func (*StarExpr) exprNode() {}

// === Value Nodes ===

// Literal represents a literal value (number, string, bool, null).
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) node()     {}
func (*Literal) exprNode() {}

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralNumber and friends classify literal values.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// BinaryExpr represents a binary expression (left op right).
type BinaryExpr struct {
	Left  Expr
	Op    TokenType
	Right Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression (NOT x, -x, +x).
type UnaryExpr struct {
	Op   TokenType
	Expr Expr
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) node()     {}
func (*ParenExpr) exprNode() {}

// FuncCall represents a function call.
type FuncCall struct {
	Schema   string // optional schema qualifier
	Name     string // function name (stored in original case)
	Distinct bool   // COUNT(DISTINCT ...)
	Args     []Expr
	Star     bool // COUNT(*)
}

func (*FuncCall) node()     {}
func (*FuncCall) exprNode() {}

// CaseExpr represents a CASE expression.
type CaseExpr struct {
	Operand Expr // nil for searched CASE
	Whens   []WhenClause
	Else    Expr
}

func (*CaseExpr) node()     {}
func (*CaseExpr) exprNode() {}

// WhenClause represents a WHEN clause in a CASE expression.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// CastExpr represents CAST(expr AS type) or expr::type.
type CastExpr struct {
	Expr     Expr
	TypeName string
	Postfix  bool // true for the :: form
}

func (*CastExpr) node()     {}
func (*CastExpr) exprNode() {}

// InExpr represents an IN expression.
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr      // IN (1, 2, 3)
	Query  *SelectStmt // IN (SELECT ...)
}

func (*InExpr) node()     {}
func (*InExpr) exprNode() {}

// BetweenExpr represents a BETWEEN expression.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) node()     {}
func (*BetweenExpr) exprNode() {}

// IsNullExpr represents IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) node()     {}
func (*IsNullExpr) exprNode() {}

// LikeExpr represents a LIKE expression.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Pattern Expr
}

func (*LikeExpr) node()     {}
func (*LikeExpr) exprNode() {}

// SubqueryExpr represents a scalar subquery used as an expression.
type SubqueryExpr struct {
	Select *SelectStmt
}

func (*SubqueryExpr) node()     {}
func (*SubqueryExpr) exprNode() {}

// RawExpr is literal SQL text, preserved verbatim.
type RawExpr struct {
	SQL string
}

func (*RawExpr) node()     {}
func (*RawExpr) exprNode() {}
