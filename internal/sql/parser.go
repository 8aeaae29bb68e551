package sql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrArity marks an INSERT whose column list length does not match its value
// tuple length. Callers can pick it out of a parse failure with errors.Is.
var ErrArity = errors.New("column count does not match value count")

// Parse parses a single SQL statement string into an AST Statement. Keywords
// are case-insensitive, identifiers keep their case and a trailing semicolon
// is allowed but not required.
func Parse(text string) (Statement, error) {
	toks, err := Lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	p.acceptSymbol(";")
	if p.cur().Type != TokenEOF {
		return nil, p.unexpected("end of statement")
	}
	return stmt, nil
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) parseStatement() (Statement, error) {
	switch {
	case p.peekKeyword("CREATE"):
		return p.parseCreateTable()
	case p.peekKeyword("INSERT"):
		return p.parseInsert()
	case p.peekKeyword("SELECT"):
		return p.parseSelect()
	case p.peekKeyword("UPDATE"):
		return p.parseUpdate()
	case p.peekKeyword("DELETE"):
		return p.parseDelete()
	default:
		return nil, p.unexpected("CREATE, INSERT, SELECT, UPDATE or DELETE")
	}
}

// ---- token cursor ----

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if t.Type != TokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) unexpected(want string) error {
	t := p.cur()
	return fmt.Errorf("unexpected %s at offset %d, want %s", t, t.Pos, want)
}

// peekKeyword reports whether the current token is the given keyword, without
// consuming it.
func (p *parser) peekKeyword(kw string) bool {
	t := p.cur()
	return t.Type == TokenIdent && strings.EqualFold(t.Text, kw)
}

// acceptKeyword consumes the keyword if present.
func (p *parser) acceptKeyword(kw string) bool {
	if p.peekKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw string) error {
	if !p.acceptKeyword(kw) {
		return p.unexpected(kw)
	}
	return nil
}

func (p *parser) acceptSymbol(sym string) bool {
	t := p.cur()
	if t.Type == TokenSymbol && t.Text == sym {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectSymbol(sym string) error {
	if !p.acceptSymbol(sym) {
		return p.unexpected("'" + sym + "'")
	}
	return nil
}

// reservedWords cannot be used as table or column names.
var reservedWords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "AND": {},
	"INSERT": {}, "INTO": {}, "VALUES": {},
	"UPDATE": {}, "SET": {}, "DELETE": {},
	"CREATE": {}, "TABLE": {},
	"JOIN": {}, "LEFT": {}, "ON": {},
	"ORDER": {}, "BY": {}, "ASC": {}, "DESC": {}, "LIMIT": {},
	"PRIMARY": {}, "KEY": {}, "UNIQUE": {}, "NOT": {}, "DEFAULT": {},
	"FOREIGN": {}, "REFERENCES": {},
	"NULL": {}, "TRUE": {}, "FALSE": {},
}

// parseIdent consumes an identifier token, preserving its case. Reserved
// keywords are rejected.
func (p *parser) parseIdent() (string, error) {
	t := p.cur()
	if t.Type != TokenIdent {
		return "", p.unexpected("identifier")
	}
	if _, reserved := reservedWords[strings.ToUpper(t.Text)]; reserved {
		return "", p.unexpected("identifier")
	}
	p.advance()
	return t.Text, nil
}

// parseLiteral consumes a literal: number, single-quoted string, TRUE/FALSE
// or NULL.
func (p *parser) parseLiteral() (Literal, error) {
	t := p.cur()
	switch t.Type {
	case TokenNumber:
		i, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return Literal{}, fmt.Errorf("bad number %q at offset %d", t.Text, t.Pos)
		}
		p.advance()
		return Literal{Kind: LitInt, I64: i}, nil
	case TokenString:
		p.advance()
		return Literal{Kind: LitString, S: t.Text}, nil
	case TokenIdent:
		switch strings.ToUpper(t.Text) {
		case "TRUE":
			p.advance()
			return Literal{Kind: LitBool, B: true}, nil
		case "FALSE":
			p.advance()
			return Literal{Kind: LitBool, B: false}, nil
		case "NULL":
			p.advance()
			return Literal{Kind: LitNull}, nil
		}
	}
	return Literal{}, p.unexpected("literal")
}

// parseColumnRef consumes "column" or "table.column".
func (p *parser) parseColumnRef() (ColumnRef, error) {
	first, err := p.parseIdent()
	if err != nil {
		return ColumnRef{}, err
	}
	if !p.acceptSymbol(".") {
		return ColumnRef{Name: first}, nil
	}
	second, err := p.parseIdent()
	if err != nil {
		return ColumnRef{}, err
	}
	return ColumnRef{Table: first, Name: second}, nil
}

// parseWhere consumes "WHERE cond [AND cond]..." if present. The returned
// slice is nil when there is no WHERE clause.
func (p *parser) parseWhere() ([]Condition, error) {
	if !p.acceptKeyword("WHERE") {
		return nil, nil
	}

	var conds []Condition
	for {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
		if !p.acceptKeyword("AND") {
			return conds, nil
		}
	}
}

func (p *parser) parseCondition() (Condition, error) {
	col, err := p.parseColumnRef()
	if err != nil {
		return Condition{}, err
	}

	op, err := p.parseCompareOp()
	if err != nil {
		return Condition{}, err
	}

	lit, err := p.parseLiteral()
	if err != nil {
		return Condition{}, err
	}

	return Condition{Column: col, Op: op, Value: lit}, nil
}

func (p *parser) parseCompareOp() (CompareOp, error) {
	t := p.cur()
	if t.Type != TokenOperator {
		return 0, p.unexpected("comparison operator")
	}
	p.advance()
	switch t.Text {
	case "=":
		return OpEq, nil
	case "!=":
		return OpNe, nil
	case "<":
		return OpLt, nil
	case ">":
		return OpGt, nil
	case "<=":
		return OpLe, nil
	case ">=":
		return OpGe, nil
	default:
		return 0, fmt.Errorf("unsupported operator %q at offset %d", t.Text, t.Pos)
	}
}
