package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_SelectStatement(t *testing.T) {
	toks, err := Lex("SELECT * FROM users WHERE age >= 21")
	require.NoError(t, err)

	var got []string
	for _, tok := range toks {
		got = append(got, tok.Text)
	}
	assert.Equal(t, []string{"SELECT", "*", "FROM", "users", "WHERE", "age", ">=", "21", ""}, got)
	assert.Equal(t, TokenEOF, toks[len(toks)-1].Type)
}

func TestLex_PreservesIdentifierCase(t *testing.T) {
	toks, err := Lex("select Name from Users")
	require.NoError(t, err)
	assert.Equal(t, "Name", toks[1].Text)
	assert.Equal(t, "Users", toks[3].Text)
}

func TestLex_StringLiteral(t *testing.T) {
	toks, err := Lex("name = 'Alice, the first'")
	require.NoError(t, err)
	require.Len(t, toks, 4) // ident, op, string, EOF
	assert.Equal(t, TokenString, toks[2].Type)
	assert.Equal(t, "Alice, the first", toks[2].Text)
}

func TestLex_UnterminatedString(t *testing.T) {
	_, err := Lex("name = 'oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestLex_Operators(t *testing.T) {
	toks, err := Lex("= != < > <= >=")
	require.NoError(t, err)
	var ops []string
	for _, tok := range toks[:len(toks)-1] {
		assert.Equal(t, TokenOperator, tok.Type)
		ops = append(ops, tok.Text)
	}
	assert.Equal(t, []string{"=", "!=", "<", ">", "<=", ">="}, ops)
}

func TestLex_NegativeNumber(t *testing.T) {
	toks, err := Lex("-42")
	require.NoError(t, err)
	assert.Equal(t, TokenNumber, toks[0].Type)
	assert.Equal(t, "-42", toks[0].Text)
}

func TestLex_IllegalCharacter(t *testing.T) {
	_, err := Lex("select @ from t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestLex_BangWithoutEquals(t *testing.T) {
	_, err := Lex("a ! b")
	require.Error(t, err)
}
