package sqlast

import "fmt"

// Statement parsing: SELECT core, select list, FROM clause and joins.

func (p *Parser) parseSelectStatement() *SelectStmt {
	p.expect(TOKEN_SELECT)
	stmt := &SelectStmt{}

	if p.match(TOKEN_DISTINCT) {
		stmt.Distinct = true
	} else {
		p.match(TOKEN_ALL)
	}

	stmt.Columns = p.parseSelectList()

	if p.match(TOKEN_FROM) {
		stmt.From = p.parseFromClause()
	}

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	if p.check(TOKEN_GROUP) {
		p.nextToken()
		p.expect(TOKEN_BY)
		stmt.GroupBy = p.parseExpressionList()
	}

	if p.match(TOKEN_HAVING) {
		stmt.Having = p.parseExpression()
	}

	if p.check(TOKEN_ORDER) {
		p.nextToken()
		p.expect(TOKEN_BY)
		stmt.OrderBy = p.parseOrderByList()
	}

	if p.match(TOKEN_LIMIT) {
		stmt.Limit = p.parseExpression()
	}

	if p.match(TOKEN_OFFSET) {
		stmt.Offset = p.parseExpression()
	}

	return stmt
}

func (p *Parser) parseSelectList() []Expr {
	var items []Expr
	for {
		if item := p.parseSelectItem(); item != nil {
			items = append(items, item)
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return items
}

// parseSelectItem parses a single SELECT item, wrapping it in AliasExpr when
// an alias follows.
func (p *Parser) parseSelectItem() Expr {
	// table.* pattern using 3-token lookahead
	if p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_DOT) && p.checkPeek2(TOKEN_STAR) {
		table := p.token.Literal
		p.nextToken() // consume ident
		p.nextToken() // consume DOT
		p.nextToken() // consume STAR
		return &StarExpr{Table: table}
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if p.match(TOKEN_AS) {
		if p.check(TOKEN_IDENT) || p.check(TOKEN_STRING) {
			alias := p.token.Literal
			p.nextToken()
			return &AliasExpr{Expr: expr, Alias: alias}
		}
		p.addError("expected alias after AS")
	} else if p.check(TOKEN_IDENT) {
		alias := p.token.Literal
		p.nextToken()
		return &AliasExpr{Expr: expr, Alias: alias}
	}

	return expr
}

func (p *Parser) parseFromClause() *FromClause {
	from := &FromClause{}
	from.Source = p.parseTableRef()

	for {
		join := p.parseJoin()
		if join == nil {
			break
		}
		from.Joins = append(from.Joins, join)
	}

	return from
}

func (p *Parser) parseTableRef() TableRef {
	if p.check(TOKEN_LPAREN) {
		return p.parseDerivedTable()
	}
	return p.parseTableName()
}

// parseTableName parses a possibly schema-qualified table name with an optional alias.
func (p *Parser) parseTableName() *TableName {
	if !p.check(TOKEN_IDENT) {
		p.addError(fmt.Sprintf("expected table name, got %s", p.token.Type))
		return &TableName{}
	}

	table := &TableName{Name: p.token.Literal}
	p.nextToken()

	if p.match(TOKEN_DOT) {
		if !p.check(TOKEN_IDENT) {
			p.addError(fmt.Sprintf("expected table name after '.', got %s", p.token.Type))
			return table
		}
		table.Schema = table.Name
		table.Name = p.token.Literal
		p.nextToken()
	}

	table.Alias = p.parseTableAlias()
	return table
}

func (p *Parser) parseDerivedTable() *DerivedTable {
	p.expect(TOKEN_LPAREN)
	derived := &DerivedTable{}
	derived.Select = p.parseSelectStatement()
	p.expect(TOKEN_RPAREN)
	derived.Alias = p.parseTableAlias()
	return derived
}

// parseTableAlias parses "AS alias" or a bare alias following a table reference.
func (p *Parser) parseTableAlias() string {
	if p.match(TOKEN_AS) {
		if p.check(TOKEN_IDENT) {
			alias := p.token.Literal
			p.nextToken()
			return alias
		}
		p.addError("expected alias after AS")
		return ""
	}
	if p.check(TOKEN_IDENT) && !p.isClauseKeyword(p.token) {
		alias := p.token.Literal
		p.nextToken()
		return alias
	}
	return ""
}

func (p *Parser) parseJoin() *Join {
	join := &Join{}

	if p.match(TOKEN_COMMA) {
		join.Type = JoinComma
		join.Right = p.parseTableRef()
		return join
	}

	switch p.token.Type {
	case TOKEN_INNER:
		join.Type = JoinInner
		p.nextToken()
	case TOKEN_LEFT:
		join.Type = JoinLeft
		p.nextToken()
		p.match(TOKEN_OUTER)
	case TOKEN_RIGHT:
		join.Type = JoinRight
		p.nextToken()
		p.match(TOKEN_OUTER)
	case TOKEN_FULL:
		join.Type = JoinFull
		p.nextToken()
		p.match(TOKEN_OUTER)
	case TOKEN_CROSS:
		join.Type = JoinCross
		p.nextToken()
	case TOKEN_JOIN:
		join.Type = JoinInner
	default:
		return nil // no join
	}

	if !p.expect(TOKEN_JOIN) {
		return nil
	}

	join.Right = p.parseTableRef()

	switch {
	case join.Type == JoinCross:
	case p.match(TOKEN_ON):
		join.Condition = p.parseExpression()
	case p.match(TOKEN_USING):
		join.Using = p.parseUsingColumns()
	}
	return join
}

// parseUsingColumns parses USING (col1, col2, ...).
func (p *Parser) parseUsingColumns() []string {
	p.expect(TOKEN_LPAREN)
	var cols []string
	for {
		if !p.check(TOKEN_IDENT) {
			p.addError("expected column name in USING clause")
			break
		}
		cols = append(cols, p.token.Literal)
		p.nextToken()
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return cols
}
