package sql

// parseDelete parses:
//
//	DELETE FROM name [WHERE cond [AND cond]...]
//
// Without WHERE the delete removes every row.
func (p *parser) parseDelete() (Statement, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}

	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	return &DeleteStmt{Table: table, Where: where}, nil
}
