package sql

import "strconv"

// parseSelect parses:
//
//	SELECT *|col[, col...] FROM name
//	  [[LEFT] JOIN name ON a.col = b.col]
//	  [WHERE cond [AND cond]...]
//	  [ORDER BY col [ASC|DESC]]
//	  [LIMIT n]
func (p *parser) parseSelect() (Statement, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	stmt := &SelectStmt{Limit: -1}

	if p.acceptSymbol("*") {
		stmt.Star = true
	} else {
		for {
			col, err := p.parseColumnRef()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
			if !p.acceptSymbol(",") {
				break
			}
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if p.peekKeyword("JOIN") || p.peekKeyword("LEFT") {
		join, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		stmt.Join = join
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	if p.acceptKeyword("ORDER") {
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		ob := &OrderBy{Column: col}
		if p.acceptKeyword("DESC") {
			ob.Desc = true
		} else {
			p.acceptKeyword("ASC")
		}
		stmt.OrderBy = ob
	}

	if p.acceptKeyword("LIMIT") {
		t := p.cur()
		if t.Type != TokenNumber {
			return nil, p.unexpected("LIMIT count")
		}
		n, err := strconv.Atoi(t.Text)
		if err != nil || n < 0 {
			return nil, p.unexpected("non-negative LIMIT count")
		}
		p.advance()
		stmt.Limit = n
	}

	return stmt, nil
}

func (p *parser) parseJoin() (*JoinClause, error) {
	join := &JoinClause{}
	if p.acceptKeyword("LEFT") {
		join.Left = true
	}
	if err := p.expectKeyword("JOIN"); err != nil {
		return nil, err
	}

	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	join.Table = table

	if err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	left, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}
	t := p.cur()
	if t.Type != TokenOperator || t.Text != "=" {
		return nil, p.unexpected("'='")
	}
	p.advance()
	right, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}

	join.LeftCol = left
	join.RightCol = right
	return join, nil
}
