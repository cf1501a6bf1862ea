package sqlast

// Expression parsing using Pratt parser (precedence climbing).

func (p *Parser) parseExpression() Expr {
	return p.parseExpressionWithPrecedence(PrecedenceNone + 1)
}

func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.getInfixPrecedence()
		if prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(PrecedenceNot)
		return &UnaryExpr{Op: TOKEN_NOT, Expr: expr}

	case TOKEN_MINUS, TOKEN_PLUS:
		op := p.token.Type
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(PrecedenceUnary)
		return &UnaryExpr{Op: op, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the precedence of the current token as an infix operator.
func (p *Parser) getInfixPrecedence() int {
	switch p.token.Type {
	case TOKEN_OR:
		return PrecedenceOr
	case TOKEN_AND:
		return PrecedenceAnd
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return PrecedenceComparison
	case TOKEN_IS, TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE, TOKEN_NOT:
		return PrecedenceComparison
	case TOKEN_PLUS, TOKEN_MINUS, TOKEN_DPIPE:
		return PrecedenceAddition
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_MOD:
		return PrecedenceMultiply
	case TOKEN_DCOLON:
		return PrecedencePostfix
	default:
		return PrecedenceNone
	}
}

// parseInfixExpr parses an infix expression given the left operand.
func (p *Parser) parseInfixExpr(left Expr, prec int) Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		return p.parseNotInfixExpr(left)
	case TOKEN_IS:
		return p.parseIsExpr(left)
	case TOKEN_IN:
		p.nextToken()
		return p.parseInExpr(left, false)
	case TOKEN_BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, false)
	case TOKEN_LIKE:
		p.nextToken()
		return &LikeExpr{Expr: left, Pattern: p.parseExpressionWithPrecedence(PrecedenceAddition)}
	case TOKEN_DCOLON:
		p.nextToken()
		return &CastExpr{Expr: left, TypeName: p.parseTypeName(), Postfix: true}
	default:
		op := p.token.Type
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		return &BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// parseNotInfixExpr handles NOT as an infix modifier (NOT IN, NOT BETWEEN, NOT LIKE).
func (p *Parser) parseNotInfixExpr(left Expr) Expr {
	p.nextToken() // consume NOT

	switch p.token.Type {
	case TOKEN_IN:
		p.nextToken()
		return p.parseInExpr(left, true)
	case TOKEN_BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, true)
	case TOKEN_LIKE:
		p.nextToken()
		return &LikeExpr{Expr: left, Not: true, Pattern: p.parseExpressionWithPrecedence(PrecedenceAddition)}
	default:
		p.addError("expected IN, BETWEEN, or LIKE after NOT")
		return nil
	}
}

// parseIsExpr parses IS [NOT] NULL.
func (p *Parser) parseIsExpr(left Expr) Expr {
	p.nextToken() // consume IS
	isNot := p.match(TOKEN_NOT)
	p.expect(TOKEN_NULL)
	return &IsNullExpr{Expr: left, Not: isNot}
}

// parseInExpr parses IN (values) or IN (subquery).
func (p *Parser) parseInExpr(left Expr, not bool) Expr {
	in := &InExpr{Expr: left, Not: not}

	p.expect(TOKEN_LPAREN)
	if p.check(TOKEN_SELECT) {
		in.Query = p.parseSelectStatement()
	} else {
		in.Values = p.parseExpressionList()
	}
	p.expect(TOKEN_RPAREN)

	return in
}

// parseBetweenExpr parses BETWEEN low AND high.
func (p *Parser) parseBetweenExpr(left Expr, not bool) Expr {
	between := &BetweenExpr{Expr: left, Not: not}
	between.Low = p.parseExpressionWithPrecedence(PrecedenceAddition)
	p.expect(TOKEN_AND)
	between.High = p.parseExpressionWithPrecedence(PrecedenceAddition)
	return between
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []Expr {
	var exprs []Expr
	for {
		expr := p.parseExpression()
		if expr != nil {
			exprs = append(exprs, expr)
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return exprs
}
