package predicate

import (
	"fmt"
	"strconv"
)

// The predicate AST: literals, the `value` binding, len(value), arithmetic,
// comparisons and and/or. Nothing else — predicates come from annotations
// that may be attacker-visible, so the grammar is closed by construction.

type Node interface{}

type NumberLit struct {
	V float64
}

type StringLit struct {
	V string
}

// ValueRef is the candidate value binding.
type ValueRef struct{}

// LenCall is len(value).
type LenCall struct{}

type Binary struct {
	Op   int // AND, OR, EQL, NEQ, LT, LTE, GT, GTE, ADD, SUB, MUL, QUO, REM
	L, R Node
}

// Parse parses a predicate string into its AST.
//
// Grammar, loosest-binding first:
//
//	or    := and ("or" and)*
//	and   := cmp ("and" cmp)*
//	cmp   := sum (("=="|"!="|"<"|"<="|">"|">=") sum)?
//	sum   := term (("+"|"-") term)*
//	term  := unary (("*"|"/"|"%") unary)*
//	unary := "-" unary | primary
//	primary := NUMBER | STRING | "value" | "len" "(" "value" ")" | "(" or ")"
func Parse(src string) (Node, error) {
	s := NewTokenStream(src)
	if s.err != nil {
		return nil, s.err
	}
	n, err := parseOr(s)
	if err != nil {
		return nil, err
	}
	if tok := s.Next(); tok.typ != EOF {
		return nil, fmt.Errorf("trailing input: %s", tok.lit)
	}
	return n, nil
}

func parseOr(s *TokenStream) (Node, error) {
	l, err := parseAnd(s)
	if err != nil {
		return nil, err
	}
	for s.Peek().typ == OR {
		s.Next()
		r, err := parseAnd(s)
		if err != nil {
			return nil, err
		}
		l = Binary{Op: OR, L: l, R: r}
	}
	return l, nil
}

func parseAnd(s *TokenStream) (Node, error) {
	l, err := parseCmp(s)
	if err != nil {
		return nil, err
	}
	for s.Peek().typ == AND {
		s.Next()
		r, err := parseCmp(s)
		if err != nil {
			return nil, err
		}
		l = Binary{Op: AND, L: l, R: r}
	}
	return l, nil
}

func parseCmp(s *TokenStream) (Node, error) {
	l, err := parseSum(s)
	if err != nil {
		return nil, err
	}
	switch op := s.Peek().typ; op {
	case EQL, NEQ, LT, LTE, GT, GTE:
		s.Next()
		r, err := parseSum(s)
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, L: l, R: r}, nil
	}
	return l, nil
}

func parseSum(s *TokenStream) (Node, error) {
	l, err := parseTerm(s)
	if err != nil {
		return nil, err
	}
	for {
		op := s.Peek().typ
		if op != ADD && op != SUB {
			return l, nil
		}
		s.Next()
		r, err := parseTerm(s)
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func parseTerm(s *TokenStream) (Node, error) {
	l, err := parseUnary(s)
	if err != nil {
		return nil, err
	}
	for {
		op := s.Peek().typ
		if op != MUL && op != QUO && op != REM {
			return l, nil
		}
		s.Next()
		r, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func parseUnary(s *TokenStream) (Node, error) {
	if s.Peek().typ == SUB {
		s.Next()
		n, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		return Binary{Op: SUB, L: NumberLit{V: 0}, R: n}, nil
	}
	return parsePrimary(s)
}

func parsePrimary(s *TokenStream) (Node, error) {
	tok := s.Next()
	switch tok.typ {
	case NUMBER:
		f, err := strconv.ParseFloat(tok.lit, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", tok.lit)
		}
		return NumberLit{V: f}, nil
	case STRING:
		return StringLit{V: tok.lit}, nil
	case VALUE:
		return ValueRef{}, nil
	case LEN:
		if s.Next().typ != LPAREN {
			return nil, fmt.Errorf("expected '(' after len")
		}
		if s.Next().typ != VALUE {
			return nil, fmt.Errorf("len applies to value only")
		}
		if s.Next().typ != RPAREN {
			return nil, fmt.Errorf("expected ')' after len(value")
		}
		return LenCall{}, nil
	case LPAREN:
		n, err := parseOr(s)
		if err != nil {
			return nil, err
		}
		if s.Next().typ != RPAREN {
			return nil, fmt.Errorf("expected ')'")
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", tok.lit)
	}
}
