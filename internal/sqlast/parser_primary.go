package sqlast

import (
	"fmt"
	"strings"
)

// Primary expression parsing: literals, column refs, function calls, CASE,
// CAST, parenthesized expressions and scalar subqueries.

func (p *Parser) parsePrimary() Expr {
	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := &Literal{Type: LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case TOKEN_STRING:
		lit := &Literal{Type: LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case TOKEN_TRUE:
		p.nextToken()
		return &Literal{Type: LiteralBool, Value: "true"}

	case TOKEN_FALSE:
		p.nextToken()
		return &Literal{Type: LiteralBool, Value: "false"}

	case TOKEN_NULL:
		p.nextToken()
		return &Literal{Type: LiteralNull, Value: "NULL"}

	case TOKEN_CASE:
		return p.parseCaseExpr()

	case TOKEN_CAST:
		return p.parseCastExpr()

	case TOKEN_IDENT:
		return p.parseIdentifierExpr()

	case TOKEN_LPAREN:
		return p.parseParenExpr()

	case TOKEN_STAR:
		p.nextToken()
		return &StarExpr{}

	default:
		// Keywords such as LEFT or RIGHT double as function names.
		if p.token.Type >= TOKEN_ALL && p.checkPeek(TOKEN_LPAREN) {
			return p.parseIdentifierExpr()
		}
		p.addError(fmt.Sprintf("unexpected token in expression: %s (%q)", p.token.Type, p.token.Literal))
		p.nextToken()
		return nil
	}
}

// parseIdentifierExpr parses an identifier (column ref or function call).
func (p *Parser) parseIdentifierExpr() Expr {
	name := p.token.Literal
	p.nextToken()

	if p.check(TOKEN_LPAREN) {
		return p.parseFuncCall(name, "")
	}

	if p.check(TOKEN_DOT) {
		return p.parseQualifiedRef(name)
	}

	return &ColumnRef{Column: name}
}

// parseQualifiedRef parses a qualified name (table.column, schema.table.column, or table.*).
func (p *Parser) parseQualifiedRef(firstPart string) Expr {
	parts := []string{firstPart}

	for p.match(TOKEN_DOT) {
		if p.check(TOKEN_STAR) {
			p.nextToken()
			return &StarExpr{Table: parts[len(parts)-1]}
		}

		if p.check(TOKEN_IDENT) {
			parts = append(parts, p.token.Literal)
			p.nextToken()
		} else {
			p.addError(fmt.Sprintf("expected identifier after '.', got %s", p.token.Type))
			break
		}
	}

	if p.check(TOKEN_LPAREN) && len(parts) == 2 {
		return p.parseFuncCall(parts[1], parts[0])
	}

	ref := &ColumnRef{}
	switch len(parts) {
	case 1:
		ref.Column = parts[0]
	case 2:
		ref.Table = parts[0]
		ref.Column = parts[1]
	default:
		// schema.table.column → use table.column
		ref.Table = parts[len(parts)-2]
		ref.Column = parts[len(parts)-1]
	}
	return ref
}

// parseFuncCall parses a function call: name([DISTINCT] args).
func (p *Parser) parseFuncCall(name string, schema string) Expr {
	fn := &FuncCall{Name: name, Schema: schema}

	p.expect(TOKEN_LPAREN)

	if p.check(TOKEN_STAR) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(TOKEN_RPAREN) {
		if p.match(TOKEN_DISTINCT) {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}

	p.expect(TOKEN_RPAREN)
	return fn
}

func (p *Parser) parseCaseExpr() Expr {
	p.expect(TOKEN_CASE)
	caseExpr := &CaseExpr{}

	if !p.check(TOKEN_WHEN) {
		caseExpr.Operand = p.parseExpression()
	}

	for p.match(TOKEN_WHEN) {
		when := WhenClause{}
		when.Condition = p.parseExpression()
		p.expect(TOKEN_THEN)
		when.Result = p.parseExpression()
		caseExpr.Whens = append(caseExpr.Whens, when)
	}
	if len(caseExpr.Whens) == 0 {
		p.addError("expected WHEN in CASE expression")
	}

	if p.match(TOKEN_ELSE) {
		caseExpr.Else = p.parseExpression()
	}

	p.expect(TOKEN_END)
	return caseExpr
}

// parseCastExpr parses CAST(expr AS type).
func (p *Parser) parseCastExpr() Expr {
	p.expect(TOKEN_CAST)
	p.expect(TOKEN_LPAREN)

	cast := &CastExpr{}
	cast.Expr = p.parseExpression()
	p.expect(TOKEN_AS)
	cast.TypeName = p.parseTypeName()

	p.expect(TOKEN_RPAREN)
	return cast
}

// parseTypeName parses a type name with optional parameters, e.g. DECIMAL(10, 2).
func (p *Parser) parseTypeName() string {
	if !p.check(TOKEN_IDENT) {
		p.addError("expected type name")
		return ""
	}
	typeName := strings.ToUpper(p.token.Literal)
	p.nextToken()

	// Compound type names like DOUBLE PRECISION
	for p.check(TOKEN_IDENT) {
		upper := strings.ToUpper(p.token.Literal)
		if upper != "PRECISION" && upper != "VARYING" {
			break
		}
		typeName += " " + upper
		p.nextToken()
	}

	if p.match(TOKEN_LPAREN) {
		var params []string
		for p.check(TOKEN_NUMBER) {
			params = append(params, p.token.Literal)
			p.nextToken()
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
		p.expect(TOKEN_RPAREN)
		typeName += "(" + strings.Join(params, ", ") + ")"
	}

	return typeName
}

// parseParenExpr parses a parenthesized expression or scalar subquery.
func (p *Parser) parseParenExpr() Expr {
	p.expect(TOKEN_LPAREN)

	if p.check(TOKEN_SELECT) {
		subquery := &SubqueryExpr{Select: p.parseSelectStatement()}
		p.expect(TOKEN_RPAREN)
		return subquery
	}

	expr := p.parseExpression()
	p.expect(TOKEN_RPAREN)
	return &ParenExpr{Expr: expr}
}

func (p *Parser) parseOrderByList() []OrderByItem {
	var items []OrderByItem
	for {
		items = append(items, p.parseOrderByItem())
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return items
}

func (p *Parser) parseOrderByItem() OrderByItem {
	item := OrderByItem{}
	item.Expr = p.parseExpression()

	if p.match(TOKEN_DESC) {
		item.Desc = true
	} else {
		p.match(TOKEN_ASC)
	}

	if p.match(TOKEN_NULLS) {
		if p.match(TOKEN_FIRST) {
			b := true
			item.NullsFirst = &b
		} else if p.match(TOKEN_LAST) {
			b := false
			item.NullsFirst = &b
		} else {
			p.addError("expected FIRST or LAST after NULLS")
		}
	}

	return item
}
