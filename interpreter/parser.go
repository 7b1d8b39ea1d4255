package interpreter

import "fmt"

// Parse turns a filter expression into an evaluatable tree. NOT binds
// tighter than AND, which binds tighter than OR; parentheses override.
// Malformed input returns a *ParseError, never a panic.
func Parse(input string) (Expr, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q after expression", tok.text)}
	}
	return expr, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

// expr := term (OR term)*
func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

// term := factor (AND factor)*
func (p *parser) term() (Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

// factor := NOT factor | '(' expr ')' | match
func (p *parser) factor() (Expr, error) {
	switch tok := p.peek(); tok.kind {
	case tokNot:
		p.next()
		inner, err := p.factor()
		if err != nil {
			return nil, err
		}
		return Not{Expr: inner}, nil

	case tokLParen:
		p.next()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &ParseError{Pos: closing.pos, Msg: "expected closing parenthesis"}
		}
		return inner, nil

	default:
		return p.match()
	}
}

// match := key ':' value | bareword
func (p *parser) match() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokString:
		return Bare{Word: tok.text}, nil

	case tokIdent:
		if p.peek().kind != tokColon {
			return Bare{Word: tok.text}, nil
		}
		p.next()
		val := p.next()
		if val.kind != tokIdent && val.kind != tokString {
			return nil, &ParseError{Pos: val.pos, Msg: fmt.Sprintf("expected value after %q:", tok.text)}
		}
		return Match{Key: tok.text, Value: val.text}, nil

	case tokEOF:
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected end of expression"}

	default:
		return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}
}
