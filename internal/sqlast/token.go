// Package sqlast provides the SQL expression AST, a SELECT parser, and a
// formatter used by the query builder and the order-projection planner.
//
// The grammar covers the SELECT subset needed to build and inspect queries:
// select lists with aliases and table stars, FROM with tables, derived tables
// and joins, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT and OFFSET.
package sqlast

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
type TokenType int

// TOKEN_EOF and friends enumerate all token types produced by the lexer.
const (
	TOKEN_EOF     TokenType = iota // end of input
	TOKEN_ILLEGAL                  // unexpected character

	TOKEN_IDENT  // identifier
	TOKEN_NUMBER // 123, 45.67, 1e10
	TOKEN_STRING // 'hello'

	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_MOD       // %
	TOKEN_DPIPE     // ||
	TOKEN_EQ        // =
	TOKEN_NE        // != or <>
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_DOT       // .
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_DCOLON    // ::

	// TOKEN_ALL and below are SQL keywords (alphabetical).
	TOKEN_ALL
	TOKEN_AND
	TOKEN_AS
	TOKEN_ASC
	TOKEN_BETWEEN
	TOKEN_BY
	TOKEN_CASE
	TOKEN_CAST
	TOKEN_CROSS
	TOKEN_DESC
	TOKEN_DISTINCT
	TOKEN_ELSE
	TOKEN_END
	TOKEN_EXCEPT
	TOKEN_FALSE
	TOKEN_FIRST
	TOKEN_FROM
	TOKEN_FULL
	TOKEN_GROUP
	TOKEN_HAVING
	TOKEN_IN
	TOKEN_INNER
	TOKEN_INTERSECT
	TOKEN_IS
	TOKEN_JOIN
	TOKEN_LAST
	TOKEN_LEFT
	TOKEN_LIKE
	TOKEN_LIMIT
	TOKEN_NOT
	TOKEN_NULL
	TOKEN_NULLS
	TOKEN_OFFSET
	TOKEN_ON
	TOKEN_OR
	TOKEN_ORDER
	TOKEN_OUTER
	TOKEN_RIGHT
	TOKEN_SELECT
	TOKEN_THEN
	TOKEN_TRUE
	TOKEN_UNION
	TOKEN_USING
	TOKEN_WHEN
	TOKEN_WHERE
	TOKEN_WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_IDENT:   "IDENT",
	TOKEN_NUMBER:  "NUMBER",
	TOKEN_STRING:  "STRING",

	TOKEN_PLUS:      "+",
	TOKEN_MINUS:     "-",
	TOKEN_STAR:      "*",
	TOKEN_SLASH:     "/",
	TOKEN_MOD:       "%",
	TOKEN_DPIPE:     "||",
	TOKEN_EQ:        "=",
	TOKEN_NE:        "!=",
	TOKEN_LT:        "<",
	TOKEN_GT:        ">",
	TOKEN_LE:        "<=",
	TOKEN_GE:        ">=",
	TOKEN_DOT:       ".",
	TOKEN_COMMA:     ",",
	TOKEN_SEMICOLON: ";",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_DCOLON:    "::",

	TOKEN_ALL:       "ALL",
	TOKEN_AND:       "AND",
	TOKEN_AS:        "AS",
	TOKEN_ASC:       "ASC",
	TOKEN_BETWEEN:   "BETWEEN",
	TOKEN_BY:        "BY",
	TOKEN_CASE:      "CASE",
	TOKEN_CAST:      "CAST",
	TOKEN_CROSS:     "CROSS",
	TOKEN_DESC:      "DESC",
	TOKEN_DISTINCT:  "DISTINCT",
	TOKEN_ELSE:      "ELSE",
	TOKEN_END:       "END",
	TOKEN_EXCEPT:    "EXCEPT",
	TOKEN_FALSE:     "FALSE",
	TOKEN_FIRST:     "FIRST",
	TOKEN_FROM:      "FROM",
	TOKEN_FULL:      "FULL",
	TOKEN_GROUP:     "GROUP",
	TOKEN_HAVING:    "HAVING",
	TOKEN_IN:        "IN",
	TOKEN_INNER:     "INNER",
	TOKEN_INTERSECT: "INTERSECT",
	TOKEN_IS:        "IS",
	TOKEN_JOIN:      "JOIN",
	TOKEN_LAST:      "LAST",
	TOKEN_LEFT:      "LEFT",
	TOKEN_LIKE:      "LIKE",
	TOKEN_LIMIT:     "LIMIT",
	TOKEN_NOT:       "NOT",
	TOKEN_NULL:      "NULL",
	TOKEN_NULLS:     "NULLS",
	TOKEN_OFFSET:    "OFFSET",
	TOKEN_ON:        "ON",
	TOKEN_OR:        "OR",
	TOKEN_ORDER:     "ORDER",
	TOKEN_OUTER:     "OUTER",
	TOKEN_RIGHT:     "RIGHT",
	TOKEN_SELECT:    "SELECT",
	TOKEN_THEN:      "THEN",
	TOKEN_TRUE:      "TRUE",
	TOKEN_UNION:     "UNION",
	TOKEN_USING:     "USING",
	TOKEN_WHEN:      "WHEN",
	TOKEN_WHERE:     "WHERE",
	TOKEN_WITH:      "WITH",
}

// keywords maps lowercase keyword text to its token type.
var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, TOKEN_WITH-TOKEN_ALL+1)
	for t := TOKEN_ALL; t <= TOKEN_WITH; t++ {
		m[strings.ToLower(tokenNames[t])] = t
	}
	return m
}()

// lookupKeyword returns the token type for the given lowercase identifier.
// Returns TOKEN_IDENT if it's not a keyword.
func lookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
}

// Precedence constants for operator precedence parsing (Pratt parser).
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT (prefix)
	PrecedencePostfix    = 8 // ::
)
