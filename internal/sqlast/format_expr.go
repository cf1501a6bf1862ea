package sqlast

import "strings"

// formatExpr dispatches expression formatting by type.
func (f *formatter) formatExpr(e Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *Literal:
		f.formatLiteral(expr)
	case *ColumnRef:
		if expr.Table != "" {
			f.writeIdent(expr.Table)
			f.write(".")
		}
		f.writeIdent(expr.Column)
	case *Identifier:
		f.writeIdent(expr.Name)
	case *QualifiedRef:
		f.formatExpr(expr.Table)
		f.write(".")
		f.formatExpr(expr.Column)
	case *Symbol:
		f.formatSymbol(expr)
	case *AliasExpr:
		f.formatExpr(expr.Expr)
		f.write(" AS ")
		f.writeIdent(expr.Alias)
	case *StarExpr:
		if expr.Table != "" {
			f.writeIdent(expr.Table)
			f.write(".")
		}
		f.write("*")
	case *BinaryExpr:
		f.formatExpr(expr.Left)
		f.space()
		f.write(operatorString(expr.Op))
		f.space()
		f.formatExpr(expr.Right)
	case *UnaryExpr:
		f.formatUnaryExpr(expr)
	case *ParenExpr:
		f.write("(")
		f.formatExpr(expr.Expr)
		f.write(")")
	case *FuncCall:
		f.formatFuncCall(expr)
	case *CaseExpr:
		f.formatCaseExpr(expr)
	case *CastExpr:
		f.formatCastExpr(expr)
	case *InExpr:
		f.formatInExpr(expr)
	case *BetweenExpr:
		f.formatExpr(expr.Expr)
		if expr.Not {
			f.write(" NOT")
		}
		f.write(" BETWEEN ")
		f.formatExpr(expr.Low)
		f.write(" AND ")
		f.formatExpr(expr.High)
	case *IsNullExpr:
		f.formatExpr(expr.Expr)
		if expr.Not {
			f.write(" IS NOT NULL")
		} else {
			f.write(" IS NULL")
		}
	case *LikeExpr:
		f.formatExpr(expr.Expr)
		if expr.Not {
			f.write(" NOT")
		}
		f.write(" LIKE ")
		f.formatExpr(expr.Pattern)
	case *SubqueryExpr:
		f.write("(")
		f.formatSelect(expr.Select)
		f.write(")")
	case *RawExpr:
		f.write(expr.SQL)
	}
}

func (f *formatter) formatLiteral(lit *Literal) {
	switch lit.Type {
	case LiteralString:
		f.write("'")
		f.write(strings.ReplaceAll(lit.Value, "'", "''"))
		f.write("'")
	case LiteralBool:
		f.write(strings.ToUpper(lit.Value))
	case LiteralNull:
		f.write("NULL")
	default:
		f.write(lit.Value)
	}
}

// formatSymbol writes the table/column/alias parts of a symbol.
func (f *formatter) formatSymbol(sym *Symbol) {
	table, column, alias := SplitSymbol(sym.Value)
	if table != "" {
		f.writeIdent(table)
		f.write(".")
	}
	f.writeIdent(column)
	if alias != "" {
		f.write(" AS ")
		f.writeIdent(alias)
	}
}

// operatorString returns the SQL string for a token type used as an operator.
func operatorString(op TokenType) string {
	// Use SQL-standard <> for not-equal
	if op == TOKEN_NE {
		return "<>"
	}
	if name, ok := tokenNames[op]; ok {
		return name
	}
	return "?"
}

func (f *formatter) formatUnaryExpr(expr *UnaryExpr) {
	if expr.Op == TOKEN_NOT {
		f.write("NOT ")
	} else {
		f.write(operatorString(expr.Op))
	}
	f.formatExpr(expr.Expr)
}

func (f *formatter) formatFuncCall(fn *FuncCall) {
	if fn.Schema != "" {
		f.writeIdent(fn.Schema)
		f.write(".")
	}
	// Function names are written unquoted in original case
	f.write(fn.Name)
	f.write("(")

	if fn.Distinct {
		f.write("DISTINCT ")
	}

	if fn.Star {
		f.write("*")
	} else {
		f.commaSep(len(fn.Args), func(i int) {
			f.formatExpr(fn.Args[i])
		})
	}

	f.write(")")
}

func (f *formatter) formatCaseExpr(c *CaseExpr) {
	f.write("CASE")
	if c.Operand != nil {
		f.space()
		f.formatExpr(c.Operand)
	}
	for _, w := range c.Whens {
		f.write(" WHEN ")
		f.formatExpr(w.Condition)
		f.write(" THEN ")
		f.formatExpr(w.Result)
	}
	if c.Else != nil {
		f.write(" ELSE ")
		f.formatExpr(c.Else)
	}
	f.write(" END")
}

func (f *formatter) formatCastExpr(c *CastExpr) {
	if c.Postfix {
		f.formatExpr(c.Expr)
		f.write("::")
		f.write(c.TypeName)
		return
	}
	f.write("CAST(")
	f.formatExpr(c.Expr)
	f.write(" AS ")
	f.write(c.TypeName)
	f.write(")")
}

func (f *formatter) formatInExpr(in *InExpr) {
	f.formatExpr(in.Expr)
	if in.Not {
		f.write(" NOT")
	}
	f.write(" IN (")
	if in.Query != nil {
		f.formatSelect(in.Query)
	} else {
		f.commaSep(len(in.Values), func(i int) {
			f.formatExpr(in.Values[i])
		})
	}
	f.write(")")
}
