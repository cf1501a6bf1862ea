package sqlast

func (f *formatter) formatSelect(s *SelectStmt) {
	if s == nil {
		return
	}

	f.write("SELECT ")
	if s.Distinct {
		f.write("DISTINCT ")
	}

	if len(s.Columns) == 0 {
		f.write("*")
	} else {
		f.commaSep(len(s.Columns), func(i int) {
			f.formatExpr(s.Columns[i])
		})
	}

	if s.From != nil {
		f.write(" FROM ")
		f.formatTableRef(s.From.Source)
		for _, j := range s.From.Joins {
			f.formatJoin(j)
		}
	}

	if s.Where != nil {
		f.write(" WHERE ")
		f.formatExpr(s.Where)
	}

	if len(s.GroupBy) > 0 {
		f.write(" GROUP BY ")
		f.commaSep(len(s.GroupBy), func(i int) {
			f.formatExpr(s.GroupBy[i])
		})
	}

	if s.Having != nil {
		f.write(" HAVING ")
		f.formatExpr(s.Having)
	}

	if len(s.OrderBy) > 0 {
		f.write(" ORDER BY ")
		f.commaSep(len(s.OrderBy), func(i int) {
			f.formatOrderByItem(s.OrderBy[i])
		})
	}

	if s.Limit != nil {
		f.write(" LIMIT ")
		f.formatExpr(s.Limit)
	}

	if s.Offset != nil {
		f.write(" OFFSET ")
		f.formatExpr(s.Offset)
	}
}

func (f *formatter) formatTableRef(ref TableRef) {
	switch t := ref.(type) {
	case *TableName:
		if t.Schema != "" {
			f.writeIdent(t.Schema)
			f.write(".")
		}
		f.writeIdent(t.Name)
		if t.Alias != "" {
			f.write(" AS ")
			f.writeIdent(t.Alias)
		}
	case *DerivedTable:
		f.write("(")
		f.formatSelect(t.Select)
		f.write(")")
		if t.Alias != "" {
			f.write(" AS ")
			f.writeIdent(t.Alias)
		}
	}
}

func (f *formatter) formatJoin(j *Join) {
	if j.Type == JoinComma {
		f.write(", ")
		f.formatTableRef(j.Right)
		return
	}

	f.space()
	f.write(string(j.Type))
	f.write(" JOIN ")
	f.formatTableRef(j.Right)

	if j.Condition != nil {
		f.write(" ON ")
		f.formatExpr(j.Condition)
	} else if len(j.Using) > 0 {
		f.write(" USING (")
		f.commaSep(len(j.Using), func(i int) {
			f.writeIdent(j.Using[i])
		})
		f.write(")")
	}
}

func (f *formatter) formatOrderByItem(item OrderByItem) {
	f.formatExpr(item.Expr)
	if item.Desc {
		f.write(" DESC")
	}
	if item.NullsFirst != nil {
		if *item.NullsFirst {
			f.write(" NULLS FIRST")
		} else {
			f.write(" NULLS LAST")
		}
	}
}
