package sql

import (
	"fmt"
	"unicode"
)

// Lex splits a statement into tokens. String literals are single-quoted with
// no escape sequences; everything else is whitespace/punctuation separated.
func Lex(input string) ([]Token, error) {
	var out []Token
	runes := []rune(input)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '\'':
			start := i
			i++
			for i < len(runes) && runes[i] != '\'' {
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("unterminated string literal at offset %d", start)
			}
			out = append(out, Token{Type: TokenString, Text: string(runes[start+1 : i]), Pos: start})
			i++

		case unicode.IsDigit(r) || (r == '-' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			i++
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			out = append(out, Token{Type: TokenNumber, Text: string(runes[start:i]), Pos: start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			out = append(out, Token{Type: TokenIdent, Text: string(runes[start:i]), Pos: start})

		case r == '(' || r == ')' || r == ',' || r == '.' || r == '*' || r == ';':
			out = append(out, Token{Type: TokenSymbol, Text: string(r), Pos: i})
			i++

		case r == '=':
			out = append(out, Token{Type: TokenOperator, Text: "=", Pos: i})
			i++

		case r == '!':
			if i+1 >= len(runes) || runes[i+1] != '=' {
				return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
			}
			out = append(out, Token{Type: TokenOperator, Text: "!=", Pos: i})
			i += 2

		case r == '<' || r == '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				out = append(out, Token{Type: TokenOperator, Text: string(r) + "=", Pos: i})
				i += 2
			} else {
				out = append(out, Token{Type: TokenOperator, Text: string(r), Pos: i})
				i++
			}

		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}

	out = append(out, Token{Type: TokenEOF, Pos: len(runes)})
	return out, nil
}
