package sql

import "strconv"

// parseCreateTable parses:
//
//	CREATE TABLE name (col TYPE [PRIMARY KEY|UNIQUE|NOT NULL|DEFAULT lit]..., ...)
//
// FOREIGN KEY (col) REFERENCES table(col) entries are accepted alongside the
// column definitions.
func (p *parser) parseCreateTable() (Statement, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}

	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	stmt := &CreateTableStmt{Table: table}
	for {
		if p.peekKeyword("FOREIGN") {
			fk, err := p.parseForeignKey()
			if err != nil {
				return nil, err
			}
			stmt.ForeignKeys = append(stmt.ForeignKeys, fk)
		} else {
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		}

		if p.acceptSymbol(",") {
			continue
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		break
	}

	if len(stmt.Columns) == 0 {
		return nil, p.unexpected("at least one column definition")
	}
	return stmt, nil
}

func (p *parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ColumnDef{}, err
	}
	typeName, err := p.parseIdent()
	if err != nil {
		return ColumnDef{}, err
	}

	col := ColumnDef{Name: name, TypeName: typeName}

	// optional VARCHAR(n) style size
	if p.acceptSymbol("(") {
		t := p.cur()
		if t.Type != TokenNumber {
			return ColumnDef{}, p.unexpected("length")
		}
		n, err := strconv.Atoi(t.Text)
		if err != nil || n < 0 {
			return ColumnDef{}, p.unexpected("length")
		}
		p.advance()
		col.Size = n
		if err := p.expectSymbol(")"); err != nil {
			return ColumnDef{}, err
		}
	}

	for {
		switch {
		case p.acceptKeyword("PRIMARY"):
			if err := p.expectKeyword("KEY"); err != nil {
				return ColumnDef{}, err
			}
			col.PrimaryKey = true
		case p.acceptKeyword("UNIQUE"):
			col.Unique = true
		case p.acceptKeyword("NOT"):
			if err := p.expectKeyword("NULL"); err != nil {
				return ColumnDef{}, err
			}
			col.NotNull = true
		case p.acceptKeyword("DEFAULT"):
			lit, err := p.parseLiteral()
			if err != nil {
				return ColumnDef{}, err
			}
			col.Default = &lit
		default:
			return col, nil
		}
	}
}

func (p *parser) parseForeignKey() (ForeignKey, error) {
	if err := p.expectKeyword("FOREIGN"); err != nil {
		return ForeignKey{}, err
	}
	if err := p.expectKeyword("KEY"); err != nil {
		return ForeignKey{}, err
	}
	if err := p.expectSymbol("("); err != nil {
		return ForeignKey{}, err
	}
	column, err := p.parseIdent()
	if err != nil {
		return ForeignKey{}, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return ForeignKey{}, err
	}
	if err := p.expectKeyword("REFERENCES"); err != nil {
		return ForeignKey{}, err
	}
	refTable, err := p.parseIdent()
	if err != nil {
		return ForeignKey{}, err
	}
	if err := p.expectSymbol("("); err != nil {
		return ForeignKey{}, err
	}
	refColumn, err := p.parseIdent()
	if err != nil {
		return ForeignKey{}, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return ForeignKey{}, err
	}
	return ForeignKey{Column: column, RefTable: refTable, RefColumn: refColumn}, nil
}
