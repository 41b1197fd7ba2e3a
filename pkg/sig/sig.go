package sig

import (
	"fmt"
	"strings"

	"typon/pkg/utils"
)

// ParsedType is one node of a parsed signature. Exactly one of refinement,
// generic args, or plain-leaf dominates the node's interpretation; an effect
// suffix composes on top of any of them.
type ParsedType struct {
	BaseType     string
	Args         []*ParsedType
	IsRefinement bool
	Predicate    string
	IsEffect     bool
	Effects      []string
}

func (p *ParsedType) String() string {
	var core string
	switch {
	case p.IsRefinement && p.Predicate != "":
		core = fmt.Sprintf("%s[%s]", p.BaseType, p.Predicate)
	case p.BaseType == "Union" && len(p.Args) > 0:
		core = utils.MapJoin(p.Args, (*ParsedType).String, " | ")
	case len(p.Args) > 0:
		core = fmt.Sprintf("%s[%s]", p.BaseType, utils.MapJoin(p.Args, (*ParsedType).String, ", "))
	default:
		core = p.BaseType
	}
	if p.IsEffect && len(p.Effects) > 0 {
		return fmt.Sprintf("%s ! {%s}", core, strings.Join(p.Effects, ", "))
	}
	return core
}

// TypeSignature is a parsed function signature: positional parameter types,
// one return type, and the function's effect set.
type TypeSignature struct {
	Params  []*ParsedType
	Return  *ParsedType
	Effects []string
}

func (s *TypeSignature) String() string {
	out := fmt.Sprintf("(%s) -> %s", utils.MapJoin(s.Params, (*ParsedType).String, ", "), s.Return)
	if len(s.Effects) > 0 {
		out += fmt.Sprintf(" ! {%s}", strings.Join(s.Effects, ", "))
	}
	return out
}

// HasEffect reports whether the signature declares the named effect.
func (s *TypeSignature) HasEffect(name string) bool {
	for _, e := range s.Effects {
		if e == name {
			return true
		}
	}
	return false
}

// IsPure holds iff the effect set is empty or only declares "pure".
func (s *TypeSignature) IsPure() bool {
	if len(s.Effects) == 0 {
		return true
	}
	return len(s.Effects) == 1 && s.Effects[0] == "pure"
}

type ParseError struct {
	Sig string
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid signature %q: %s", e.Sig, e.Msg)
}

func newParseError(sig, format string, a ...any) *ParseError {
	return &ParseError{Sig: sig, Msg: fmt.Sprintf(format, a...)}
}
