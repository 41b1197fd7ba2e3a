package sig

import (
	"errors"
	"strings"
)

var (
	errUnbalanced = errors.New("unbalanced brackets")
	errEmptyType  = errors.New("empty type")
)

func isOpen(c byte) bool  { return c == '[' || c == '(' || c == '{' }
func isClose(c byte) bool { return c == ']' || c == ')' || c == '}' }

// splitTopLevel splits s on sep, ignoring separators nested inside any kind
// of bracket. Blank pieces are dropped.
func splitTopLevel(s string, sep byte) ([]string, error) {
	var out []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isOpen(c):
			depth++
			cur.WriteByte(c)
		case isClose(c):
			depth--
			if depth < 0 {
				return nil, errUnbalanced
			}
			cur.WriteByte(c)
		case c == sep && depth == 0:
			if piece := strings.TrimSpace(cur.String()); piece != "" {
				out = append(out, piece)
			}
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if depth != 0 {
		return nil, errUnbalanced
	}
	if piece := strings.TrimSpace(cur.String()); piece != "" {
		out = append(out, piece)
	}
	return out, nil
}

// lastTopLevel returns the index of the last occurrence of c outside any
// brackets, or -1.
func lastTopLevel(s string, c byte) (int, error) {
	depth, found := 0, -1
	for i := 0; i < len(s); i++ {
		switch {
		case isOpen(s[i]):
			depth++
		case isClose(s[i]):
			depth--
			if depth < 0 {
				return -1, errUnbalanced
			}
		case s[i] == c && depth == 0:
			found = i
		}
	}
	if depth != 0 {
		return -1, errUnbalanced
	}
	return found, nil
}

// firstTopLevelArrow returns the index of the first top-level "->", or -1.
func firstTopLevelArrow(s string) (int, error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case isOpen(s[i]):
			depth++
		case isClose(s[i]):
			depth--
			if depth < 0 {
				return -1, errUnbalanced
			}
		case s[i] == '-' && depth == 0 && i+1 < len(s) && s[i+1] == '>':
			return i, nil
		}
	}
	if depth != 0 {
		return -1, errUnbalanced
	}
	return -1, nil
}

// matchBracketed matches "identifier[content]" where the bracket opened
// after the identifier closes at the very end of the string.
func matchBracketed(s string) (name, content string, ok bool) {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '[' || s[len(s)-1] != ']' {
		return "", "", false
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch {
		case isOpen(s[j]):
			depth++
		case isClose(s[j]):
			depth--
			if depth == 0 {
				// The bracket must close at the end, otherwise this is a
				// union or something stranger.
				if j != len(s)-1 {
					return "", "", false
				}
				return s[:i], s[i+1 : j], true
			}
		}
	}
	return "", "", false
}

func isWordByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}
