package sql

import "fmt"

// TokenType categorizes a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenSymbol   // ( ) , . * ;
	TokenOperator // = != < > <= >=
)

func (t TokenType) String() string {
	return [...]string{
		"EOF",
		"Ident",
		"Number",
		"String",
		"Symbol",
		"Operator",
	}[int(t)]
}

// Token is one lexical token. Text preserves the original spelling: keywords
// are matched case-insensitively by the parser, identifiers keep their case.
type Token struct {
	Type TokenType
	Text string
	Pos  int // byte offset into the statement, for error messages
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of statement"
	}
	return fmt.Sprintf("%q", t.Text)
}
