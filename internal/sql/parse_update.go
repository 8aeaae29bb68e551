package sql

// parseUpdate parses:
//
//	UPDATE name SET col = lit[, col = lit...] [WHERE cond [AND cond]...]
//
// Without WHERE the update applies to every row.
func (p *parser) parseUpdate() (Statement, error) {
	if err := p.expectKeyword("UPDATE"); err != nil {
		return nil, err
	}

	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	stmt := &UpdateStmt{Table: table}
	for {
		col, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		t := p.cur()
		if t.Type != TokenOperator || t.Text != "=" {
			return nil, p.unexpected("'='")
		}
		p.advance()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Assigns = append(stmt.Assigns, Assignment{Column: col, Value: lit})
		if !p.acceptSymbol(",") {
			break
		}
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where
	return stmt, nil
}
