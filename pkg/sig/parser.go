package sig

import (
	"strings"

	"typon/pkg/predicate"
	"typon/pkg/types"
)

// Parser turns textual signatures like
//
//	(int[value > 0]) -> int[value > 0] ! {io}
//
// into TypeSignature values. The grammar is a small type mini-language,
// so bracket-depth-aware splitting plus recursive descent is all it takes;
// arbitrary expressions never appear inside signatures.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse is a convenience for one-off parses.
func Parse(signature string) (*TypeSignature, error) {
	return NewParser().Parse(signature)
}

func (p *Parser) Parse(signature string) (*TypeSignature, error) {
	src := strings.TrimSpace(signature)

	// Split off the effect suffix: everything after the last top-level '!'.
	var effects []string
	if i, err := lastTopLevel(src, '!'); err != nil {
		return nil, newParseError(signature, "%s", err)
	} else if i >= 0 {
		effects = parseEffects(src[i+1:])
		src = strings.TrimSpace(src[:i])
	}

	arrow, err := firstTopLevelArrow(src)
	if err != nil {
		return nil, newParseError(signature, "%s", err)
	}
	if arrow < 0 {
		return nil, newParseError(signature, "missing '->'")
	}
	paramsStr := strings.TrimSpace(src[:arrow])
	returnStr := strings.TrimSpace(src[arrow+2:])

	if !strings.HasPrefix(paramsStr, "(") || !strings.HasSuffix(paramsStr, ")") {
		return nil, newParseError(signature, "parameters must be wrapped in parentheses")
	}
	var params []*ParsedType
	inner := strings.TrimSpace(paramsStr[1 : len(paramsStr)-1])
	if inner != "" {
		parts, err := splitTopLevel(inner, ',')
		if err != nil {
			return nil, newParseError(signature, "%s", err)
		}
		for _, part := range parts {
			pt, err := p.parseType(part)
			if err != nil {
				return nil, newParseError(signature, "%s", err)
			}
			params = append(params, pt)
		}
	}

	if returnStr == "" {
		return nil, newParseError(signature, "missing return type")
	}
	ret, err := p.parseType(returnStr)
	if err != nil {
		return nil, newParseError(signature, "%s", err)
	}

	return &TypeSignature{Params: params, Return: ret, Effects: effects}, nil
}

// ParseType parses a single type annotation without the signature wrapper.
func (p *Parser) ParseType(s string) (*ParsedType, error) {
	pt, err := p.parseType(strings.TrimSpace(s))
	if err != nil {
		return nil, newParseError(s, "%s", err)
	}
	return pt, nil
}

func (p *Parser) parseType(s string) (*ParsedType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyType
	}

	// Inline effect: "int ! {io}". Composes with whatever the left side is.
	if i, err := lastTopLevel(s, '!'); err != nil {
		return nil, err
	} else if i >= 0 {
		base, err := p.parseType(s[:i])
		if err != nil {
			return nil, err
		}
		base.IsEffect = true
		base.Effects = parseEffects(s[i+1:])
		return base, nil
	}

	// identifier[content], with the bracket closing at the very end.
	if name, content, ok := matchBracketed(s); ok {
		// Refinement wins over generic whenever the content sniffs as a
		// predicate or a length constraint. A generic argument list that
		// happens to contain a comparison operator is therefore
		// misclassified; that ambiguity is part of the wire format.
		if types.IsBuiltin(name) && looksLikePredicate(content) {
			return &ParsedType{BaseType: name, IsRefinement: true, Predicate: strings.TrimSpace(content)}, nil
		}
		parts, err := splitTopLevel(content, ',')
		if err != nil {
			return nil, err
		}
		var args []*ParsedType
		for _, part := range parts {
			arg, err := p.parseType(part)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &ParsedType{BaseType: name, Args: args}, nil
	}

	// Union: "int | str".
	if strings.ContainsRune(s, '|') {
		parts, err := splitTopLevel(s, '|')
		if err != nil {
			return nil, err
		}
		if len(parts) > 1 {
			var args []*ParsedType
			for _, part := range parts {
				arg, err := p.parseType(part)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			return &ParsedType{BaseType: "Union", Args: args}, nil
		}
	}

	return &ParsedType{BaseType: s}, nil
}

// parseEffects splits an effect suffix into tags. Effects are a set:
// duplicates collapse, first occurrence keeps its position.
func parseEffects(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	seen := make(map[string]struct{})
	var out []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// looksLikePredicate is the refinement-vs-generic heuristic: bracket content
// containing a comparison operator, the `value` binding, a len call, or a
// length constraint is taken as a refinement predicate.
func looksLikePredicate(content string) bool {
	for _, indicator := range []string{">", "<", "==", "!=", "value", "len("} {
		if strings.Contains(content, indicator) {
			return true
		}
	}
	return predicate.IsConstraint(content)
}
