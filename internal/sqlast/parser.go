package sqlast

import (
	"fmt"
	"strings"
)

// Parser parses SQL SELECT statements into an AST.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	peek2  Token // second lookahead token
	errors []error
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string) *Parser {
	p := &Parser{lexer: NewLexer(sql)}
	// Initialize three-token lookahead
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a single SELECT statement.
// Returns an error if parsing fails or if multi-statement input is detected.
func Parse(sql string) (*SelectStmt, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, fmt.Errorf("empty SQL")
	}

	p := NewParser(sql)
	if !p.check(TOKEN_SELECT) {
		return nil, fmt.Errorf("parse error: unsupported statement starting with %s", p.token.Type)
	}
	stmt := p.parseSelectStatement()
	p.match(TOKEN_SEMICOLON)
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}

	switch p.token.Type {
	case TOKEN_EOF:
	case TOKEN_UNION, TOKEN_INTERSECT, TOKEN_EXCEPT:
		return nil, fmt.Errorf("parse error: set operations are not supported")
	default:
		return nil, fmt.Errorf("multi-statement queries are not allowed")
	}

	return stmt, nil
}

// ParseExpr parses a standalone expression from SQL text.
func ParseExpr(sql string) (Expr, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, fmt.Errorf("empty expression")
	}

	p := NewParser(sql)
	expr := p.parseExpression()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}

	if p.token.Type != TOKEN_EOF {
		return nil, fmt.Errorf("unexpected token after expression: %s", p.token.Literal)
	}

	return expr, nil
}

// SplitStatements splits a script on top-level semicolons, ignoring those
// inside quoted strings, quoted identifiers and comments. Empty statements
// are dropped.
func SplitStatements(script string) []string {
	var (
		stmts []string
		start int
	)
	l := NewLexer(script)
	for {
		tok := l.NextToken()
		if tok.Type == TOKEN_EOF {
			break
		}
		if tok.Type == TOKEN_SEMICOLON {
			// l.pos is just past the semicolon.
			if s := strings.TrimSpace(script[start : l.pos-1]); s != "" {
				stmts = append(stmts, s)
			}
			start = l.pos
		}
	}
	if s := strings.TrimSpace(script[start:]); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

// === Token Helpers ===

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

func (p *Parser) checkPeek2(t TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf("unexpected token %s, expected %s", p.token.Type, t))
	return false
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Errorf("parse error: %s", msg))
}

// isClauseKeyword returns true if token starts a new clause or join.
func (p *Parser) isClauseKeyword(tok Token) bool {
	switch tok.Type {
	case TOKEN_UNION, TOKEN_INTERSECT, TOKEN_EXCEPT,
		TOKEN_WHERE, TOKEN_GROUP, TOKEN_HAVING, TOKEN_ORDER,
		TOKEN_LIMIT, TOKEN_OFFSET,
		TOKEN_JOIN, TOKEN_ON, TOKEN_USING, TOKEN_INNER, TOKEN_LEFT,
		TOKEN_RIGHT, TOKEN_FULL, TOKEN_CROSS, TOKEN_OUTER:
		return true
	}
	return false
}
