package sig

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestParseSimpleSignature(t *testing.T) {
	s, err := Parse("(int, int) -> int")
	tassert.NoError(t, err)
	tassert.Len(t, s.Params, 2)
	tassert.Equal(t, "int", s.Params[0].BaseType)
	tassert.Equal(t, "int", s.Params[1].BaseType)
	tassert.Equal(t, "int", s.Return.BaseType)
	tassert.Empty(t, s.Effects)
	tassert.True(t, s.IsPure())
}

func TestParseNoParams(t *testing.T) {
	s, err := Parse("() -> str")
	tassert.NoError(t, err)
	tassert.Empty(t, s.Params)
	tassert.Equal(t, "str", s.Return.BaseType)
}

func TestParseEffects(t *testing.T) {
	s, err := Parse("(int) -> int ! {io, exception}")
	tassert.NoError(t, err)
	tassert.Equal(t, []string{"io", "exception"}, s.Effects)
	tassert.True(t, s.HasEffect("io"))
	tassert.True(t, s.HasEffect("exception"))
	tassert.False(t, s.HasEffect("network"))
	tassert.False(t, s.IsPure())
}

func TestParseEffectsWithoutBraces(t *testing.T) {
	s, err := Parse("(int) -> int ! io")
	tassert.NoError(t, err)
	tassert.Equal(t, []string{"io"}, s.Effects)
}

func TestParsePureEffect(t *testing.T) {
	s, err := Parse("(int) -> int ! {pure}")
	tassert.NoError(t, err)
	tassert.True(t, s.IsPure())
}

func TestParseDuplicateEffects(t *testing.T) {
	s, err := Parse("(int) -> int ! {io, io}")
	tassert.NoError(t, err)
	tassert.Equal(t, []string{"io"}, s.Effects)

	s, err = Parse("(int) -> int ! {pure, pure}")
	tassert.NoError(t, err)
	tassert.Equal(t, []string{"pure"}, s.Effects)
	tassert.True(t, s.IsPure())

	s, err = Parse("(int) -> int ! {io, network, io}")
	tassert.NoError(t, err)
	tassert.Equal(t, []string{"io", "network"}, s.Effects)
}

func TestParseDuplicateInlineEffects(t *testing.T) {
	s, err := Parse("(int) -> str ! {io, io}")
	tassert.NoError(t, err)
	tassert.Equal(t, []string{"io"}, s.Effects)

	p, err := NewParser().ParseType("int ! {io, io}")
	tassert.NoError(t, err)
	tassert.True(t, p.IsEffect)
	tassert.Equal(t, []string{"io"}, p.Effects)
}

func TestParseGeneric(t *testing.T) {
	s, err := Parse("(list[int]) -> int")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.Equal(t, "list", p.BaseType)
	tassert.False(t, p.IsRefinement)
	tassert.Len(t, p.Args, 1)
	tassert.Equal(t, "int", p.Args[0].BaseType)
}

func TestParseNestedGeneric(t *testing.T) {
	s, err := Parse("(dict[str, list[int]]) -> None")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.Equal(t, "dict", p.BaseType)
	tassert.Len(t, p.Args, 2)
	tassert.Equal(t, "str", p.Args[0].BaseType)
	tassert.Equal(t, "list", p.Args[1].BaseType)
	tassert.Equal(t, "int", p.Args[1].Args[0].BaseType)
}

func TestParseRefinement(t *testing.T) {
	s, err := Parse("(int[value > 0]) -> int[value > 0]")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.True(t, p.IsRefinement)
	tassert.Equal(t, "int", p.BaseType)
	tassert.Equal(t, "value > 0", p.Predicate)
	tassert.True(t, s.Return.IsRefinement)
}

func TestParseRefinementLen(t *testing.T) {
	s, err := Parse("(str[len(value) > 0]) -> str")
	tassert.NoError(t, err)
	tassert.True(t, s.Params[0].IsRefinement)
	tassert.Equal(t, "len(value) > 0", s.Params[0].Predicate)
}

func TestParseLenConstraintAsRefinement(t *testing.T) {
	s, err := Parse("(list[len=3]) -> None")
	tassert.NoError(t, err)
	tassert.True(t, s.Params[0].IsRefinement)
	tassert.Equal(t, "len=3", s.Params[0].Predicate)
}

func TestParseUnion(t *testing.T) {
	s, err := Parse("(int | str) -> bool")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.Equal(t, "Union", p.BaseType)
	tassert.Len(t, p.Args, 2)
	tassert.Equal(t, "int", p.Args[0].BaseType)
	tassert.Equal(t, "str", p.Args[1].BaseType)
}

func TestParseUnionOfGenerics(t *testing.T) {
	s, err := Parse("(list[int] | dict[str, int]) -> None")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.Equal(t, "Union", p.BaseType)
	tassert.Len(t, p.Args, 2)
	tassert.Equal(t, "list", p.Args[0].BaseType)
	tassert.Equal(t, "dict", p.Args[1].BaseType)
}

func TestParseExplicitUnionGeneric(t *testing.T) {
	s, err := Parse("(Union[int, str]) -> bool")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.Equal(t, "Union", p.BaseType)
	tassert.Len(t, p.Args, 2)
}

func TestParseInlineEffectOnParam(t *testing.T) {
	s, err := Parse("(int ! {io}) -> str")
	tassert.NoError(t, err)
	p := s.Params[0]
	tassert.Equal(t, "int", p.BaseType)
	tassert.True(t, p.IsEffect)
	tassert.Equal(t, []string{"io"}, p.Effects)
}

func TestParseEffectComposesWithGeneric(t *testing.T) {
	p, err := NewParser().ParseType("list[int] ! {mutation}")
	tassert.NoError(t, err)
	tassert.Equal(t, "list", p.BaseType)
	tassert.Len(t, p.Args, 1)
	tassert.True(t, p.IsEffect)
	tassert.Equal(t, []string{"mutation"}, p.Effects)
}

func TestParseMissingArrow(t *testing.T) {
	_, err := Parse("(int, int)")
	tassert.Error(t, err)
	var perr *ParseError
	tassert.ErrorAs(t, err, &perr)
}

func TestParseUnwrappedParams(t *testing.T) {
	_, err := Parse("int, int -> int")
	tassert.Error(t, err)
}

func TestParseUnbalancedBrackets(t *testing.T) {
	_, err := Parse("(list[int) -> int")
	tassert.Error(t, err)
	_, err = Parse("(list[int]]) -> int")
	tassert.Error(t, err)
}

func TestParseMissingReturn(t *testing.T) {
	_, err := Parse("(int) -> ")
	tassert.Error(t, err)
}

// Re-parsing a signature's own rendering must yield the same structure.
func TestRoundTripStability(t *testing.T) {
	for _, src := range []string{
		"(int, int) -> int",
		"() -> str",
		"(list[int]) -> dict[str, int]",
		"(int[value > 0]) -> int[value > 0] ! {io}",
		"(int | str, tuple[int, str]) -> bool ! {io, exception}",
		"(str[len(value) > 0]) -> None",
		"(Union[int, str]) -> Optional[int]",
	} {
		first, err := Parse(src)
		tassert.NoError(t, err, src)
		second, err := Parse(first.String())
		tassert.NoError(t, err, first.String())
		tassert.Equal(t, first, second, src)
	}
}

func TestSignatureString(t *testing.T) {
	s, err := Parse("(int) -> int ! {io}")
	tassert.NoError(t, err)
	tassert.Equal(t, "(int) -> int ! {io}", s.String())
}
