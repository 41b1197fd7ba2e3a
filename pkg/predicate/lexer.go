package predicate

import "fmt"

const (
	ILLEGAL = iota
	NUMBER
	STRING
	VALUE // the candidate binding
	LEN   // len
	AND
	OR
	EQL // ==
	NEQ // !=
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=
	ADD // +
	SUB // -
	MUL // *
	QUO // /
	REM // %
	LPAREN
	RPAREN
	EOF
)

type Tok struct {
	typ int
	lit string
}

func (t Tok) String() string { return fmt.Sprintf("Tok('%s' %d)", t.lit, t.typ) }

type TokenStream struct {
	pos    int
	tokens []Tok
	err    error
}

func NewTokenStream(src string) *TokenStream {
	tokens, err := lexer(src)
	return &TokenStream{tokens: tokens, err: err}
}

func (s *TokenStream) Next() Tok {
	if s.pos >= len(s.tokens) {
		return Tok{typ: EOF}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

func (s *TokenStream) Peek() Tok {
	if s.pos >= len(s.tokens) {
		return Tok{typ: EOF}
	}
	return s.tokens[s.pos]
}

func lexer(src string) (out []Tok, err error) {
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case ' ', '\t', '\n', '\r':
		case '(':
			out = append(out, Tok{LPAREN, "("})
		case ')':
			out = append(out, Tok{RPAREN, ")"})
		case '+':
			out = append(out, Tok{ADD, "+"})
		case '-':
			out = append(out, Tok{SUB, "-"})
		case '*':
			out = append(out, Tok{MUL, "*"})
		case '/':
			out = append(out, Tok{QUO, "/"})
		case '%':
			out = append(out, Tok{REM, "%"})
		case '=':
			if i+1 < len(src) && src[i+1] == '=' {
				i++
				out = append(out, Tok{EQL, "=="})
			} else {
				return nil, fmt.Errorf("unexpected '=' at %d", i)
			}
		case '!':
			if i+1 < len(src) && src[i+1] == '=' {
				i++
				out = append(out, Tok{NEQ, "!="})
			} else {
				return nil, fmt.Errorf("unexpected '!' at %d", i)
			}
		case '<':
			if i+1 < len(src) && src[i+1] == '=' {
				i++
				out = append(out, Tok{LTE, "<="})
			} else {
				out = append(out, Tok{LT, "<"})
			}
		case '>':
			if i+1 < len(src) && src[i+1] == '=' {
				i++
				out = append(out, Tok{GTE, ">="})
			} else {
				out = append(out, Tok{GT, ">"})
			}
		case '"', '\'':
			quote := c
			j := i + 1
			for j < len(src) && src[j] != quote {
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("unterminated string at %d", i)
			}
			out = append(out, Tok{STRING, src[i+1 : j]})
			i = j
		default:
			switch {
			case isDecimal(c):
				j := i
				for j < len(src) && (isDecimal(src[j]) || src[j] == '.') {
					j++
				}
				out = append(out, Tok{NUMBER, src[i:j]})
				i = j - 1
			case isLetter(c):
				j := i
				for j < len(src) && (isLetter(src[j]) || isDecimal(src[j])) {
					j++
				}
				word := src[i:j]
				i = j - 1
				switch word {
				case "value":
					out = append(out, Tok{VALUE, word})
				case "len":
					out = append(out, Tok{LEN, word})
				case "and":
					out = append(out, Tok{AND, word})
				case "or":
					out = append(out, Tok{OR, word})
				default:
					// No open namespace: any other identifier is rejected.
					return nil, fmt.Errorf("unknown identifier %q", word)
				}
			default:
				return nil, fmt.Errorf("unexpected character %q at %d", c, i)
			}
		}
	}
	out = append(out, Tok{typ: EOF})
	return out, nil
}

func isDecimal(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
