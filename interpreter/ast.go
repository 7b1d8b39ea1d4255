package interpreter

import (
	"fmt"
	"strings"
)

// Doc is the document a filter expression evaluates against: flat string
// fields keyed by name.
type Doc map[string]string

// Expr is one node of a parsed filter expression.
type Expr interface {
	// Eval reports whether the document satisfies the expression.
	Eval(doc Doc) bool
	// String renders the node back to filter syntax, fully parenthesized.
	String() string
}

// Match compares a single field against a value, case-insensitively.
type Match struct {
	Key   string
	Value string
}

func (m Match) Eval(doc Doc) bool {
	v, ok := doc[m.Key]
	return ok && strings.EqualFold(v, m.Value)
}

func (m Match) String() string { return fmt.Sprintf("%s:%q", m.Key, m.Value) }

// Bare matches a document when any field contains the word,
// case-insensitively.
type Bare struct {
	Word string
}

func (b Bare) Eval(doc Doc) bool {
	w := strings.ToLower(b.Word)
	for _, v := range doc {
		if strings.Contains(strings.ToLower(v), w) {
			return true
		}
	}
	return false
}

func (b Bare) String() string { return fmt.Sprintf("%q", b.Word) }

// And is true when both operands are.
type And struct {
	Left, Right Expr
}

func (a And) Eval(doc Doc) bool { return a.Left.Eval(doc) && a.Right.Eval(doc) }

func (a And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

// Or is true when either operand is.
type Or struct {
	Left, Right Expr
}

func (o Or) Eval(doc Doc) bool { return o.Left.Eval(doc) || o.Right.Eval(doc) }

func (o Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// Not inverts its operand.
type Not struct {
	Expr Expr
}

func (n Not) Eval(doc Doc) bool { return !n.Expr.Eval(doc) }

func (n Not) String() string { return fmt.Sprintf("(NOT %s)", n.Expr) }
