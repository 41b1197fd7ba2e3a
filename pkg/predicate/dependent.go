package predicate

import (
	"strconv"
	"strings"
)

// CheckConstraint evaluates a dependent length constraint against a value.
// Constraints are structural, not boolean expressions, and are matched by a
// dedicated path rather than the general predicate grammar. Supported forms:
//
//	len=N  len==N  len<N  len<=N  len>N  len>=N  lo<=len<=hi
//
// Fails closed on anything else, or on a value that has no length.
func CheckConstraint(constraint string, v any) bool {
	l, err := lengthOf(v)
	if err != nil {
		return false
	}
	c := strings.ReplaceAll(constraint, " ", "")

	if i := strings.Index(c, "<=len<="); i >= 0 {
		lo, err1 := strconv.Atoi(c[:i])
		hi, err2 := strconv.Atoi(c[i+len("<=len<="):])
		if err1 != nil || err2 != nil {
			return false
		}
		return lo <= l && l <= hi
	}
	if !strings.HasPrefix(c, "len") {
		return false
	}
	rest := c[len("len"):]
	for _, form := range []struct {
		op  string
		cmp func(l, n int) bool
	}{
		{"==", func(l, n int) bool { return l == n }},
		{"<=", func(l, n int) bool { return l <= n }},
		{">=", func(l, n int) bool { return l >= n }},
		{"=", func(l, n int) bool { return l == n }},
		{"<", func(l, n int) bool { return l < n }},
		{">", func(l, n int) bool { return l > n }},
	} {
		if strings.HasPrefix(rest, form.op) {
			n, err := strconv.Atoi(rest[len(form.op):])
			if err != nil {
				return false
			}
			return form.cmp(l, n)
		}
	}
	return false
}

// IsConstraint reports whether a bracketed annotation looks like a dependent
// length constraint rather than a general predicate.
func IsConstraint(s string) bool {
	c := strings.ReplaceAll(s, " ", "")
	return strings.HasPrefix(c, "len=") || strings.Contains(c, "<=len<=")
}
