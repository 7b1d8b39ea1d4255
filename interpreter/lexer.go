// Package interpreter evaluates a small filter-expression language against
// key/value documents.
//
// The grammar, lowest precedence first:
//
//	expr   := term (OR term)*
//	term   := factor (AND factor)*
//	factor := NOT factor | '(' expr ')' | match
//	match  := key ':' value | bareword
//
// A match like `status:draft` compares one field; a bareword matches any
// field containing it. Keywords are case-insensitive; values with spaces are
// double-quoted. The expression tree is the interpreter: every node knows
// how to evaluate itself against a document.
package interpreter

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports a syntax problem with its byte position in the input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("interpreter: position %d: %s", e.Pos, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokColon
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var identRe = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_./-]*`)

// lex scans the whole input into tokens, ending with tokEOF.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++

		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++

		case c == ':':
			toks = append(toks, token{tokColon, ":", i})
			i++

		case c == '"':
			end := strings.IndexByte(input[i+1:], '"')
			if end < 0 {
				return nil, &ParseError{Pos: i, Msg: "unterminated string"}
			}
			toks = append(toks, token{tokString, input[i+1 : i+1+end], i})
			i += end + 2

		default:
			m := identRe.FindString(input[i:])
			if m == "" {
				return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
			}
			kind := tokIdent
			switch strings.ToUpper(m) {
			case "AND":
				kind = tokAnd
			case "OR":
				kind = tokOr
			case "NOT":
				kind = tokNot
			}
			toks = append(toks, token{kind, m, i})
			i += len(m)
		}
	}
	toks = append(toks, token{tokEOF, "", len(input)})
	return toks, nil
}
