package types

import (
	"sync"
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestEffectSet(t *testing.T) {
	s := NewEffectSet(EffectIO, EffectNetwork, EffectIO)
	tassert.Equal(t, 2, len(s))
	tassert.True(t, s.Has(EffectIO))
	tassert.False(t, s.Has(EffectRandom))
	tassert.False(t, s.IsPure())

	tassert.True(t, NewEffectSet().IsPure())
	tassert.True(t, NewEffectSet(EffectPure).IsPure())
	tassert.False(t, NewEffectSet(EffectPure, EffectIO).IsPure())
}

func TestEffectSetUnion(t *testing.T) {
	a := NewEffectSet(EffectIO)
	b := NewEffectSet(EffectNetwork)
	u := a.Union(b)
	tassert.True(t, u.Has(EffectIO))
	tassert.True(t, u.Has(EffectNetwork))
	tassert.Equal(t, 1, len(a))
	tassert.Equal(t, 1, len(b))
}

func TestEffectType(t *testing.T) {
	io := IO(Int)
	tassert.True(t, io.HasEffect(EffectIO))
	tassert.False(t, io.HasEffect(EffectNetwork))
	tassert.False(t, io.IsPure())
	tassert.Equal(t, "int ! {io}", io.String())

	pure := WithEffects(Int)
	tassert.True(t, pure.IsPure())
	tassert.Equal(t, "int", pure.String())
}

func TestEffectKnown(t *testing.T) {
	tassert.True(t, Effect("io").Known())
	tassert.True(t, Effect("mutation").Known())
	tassert.False(t, Effect("oi").Known())
}

func TestInstanceBoolIsNotNumeric(t *testing.T) {
	tassert.False(t, Instance(true, "int"))
	tassert.False(t, Instance(false, "float"))
	tassert.False(t, Instance(1, "bool"))
	tassert.True(t, Instance(true, "bool"))
	tassert.True(t, Instance(1, "int"))
	tassert.True(t, Instance(1, "float"))
	tassert.True(t, Instance(1.5, "float"))
	tassert.False(t, Instance(1.5, "int"))
}

func TestInstanceKinds(t *testing.T) {
	tassert.True(t, Instance(nil, "None"))
	tassert.False(t, Instance(0, "None"))
	tassert.True(t, Instance("x", "str"))
	tassert.True(t, Instance([]byte("x"), "bytes"))
	tassert.False(t, Instance([]byte("x"), "list"))
	tassert.True(t, Instance([]any{1}, "list"))
	tassert.True(t, Instance(map[string]any{}, "dict"))
	tassert.True(t, Instance(TupleValue{1, "a"}, "tuple"))
	tassert.False(t, Instance(TupleValue{1}, "list"))
	tassert.True(t, Instance(NewSetValue(1, 2), "set"))
	tassert.False(t, Instance(NewSetValue(1), "dict"))
	tassert.True(t, Instance(NewFrozenSetValue(1), "frozenset"))
	tassert.True(t, Instance(NewFrozenSetValue(1), "set"))
	tassert.False(t, Instance(NewSetValue(1), "frozenset"))
	tassert.True(t, Instance(123, "Any"))
	tassert.True(t, Instance(nil, "Any"))
}

func TestRefinementValidate(t *testing.T) {
	pos := Positive(Int)
	tassert.True(t, pos.Validate(5))
	tassert.False(t, pos.Validate(-5))
	tassert.False(t, pos.Validate("5"))
	tassert.False(t, pos.Validate(true))
	tassert.Equal(t, "int[value > 0]", pos.String())
}

func TestPrelude(t *testing.T) {
	tassert.True(t, Negative(Int).Validate(-1))
	tassert.True(t, NonNegative(Int).Validate(0))
	tassert.True(t, NonZero(Int).Validate(7))
	tassert.False(t, NonZero(Int).Validate(0))
	tassert.True(t, NonEmpty(Str).Validate("x"))
	tassert.False(t, NonEmpty(Str).Validate(""))
	tassert.True(t, Even().Validate(4))
	tassert.False(t, Even().Validate(3))
	tassert.True(t, Odd().Validate(3))
	tassert.True(t, Bounded(0, 100, Int).Validate(50))
	tassert.False(t, Bounded(0, 100, Int).Validate(200))
}

// A compound predicate must behave exactly like its two halves checked in
// sequence.
func TestCompoundPredicateEquivalence(t *testing.T) {
	lower := Refine(Int, "value >= 0")
	upper := Refine(Int, "value <= 100")
	both := Refine(Int, "value >= 0 and value <= 100")
	for _, v := range []any{-10, 0, 50, 100, 150} {
		tassert.Equal(t, lower.Validate(v) && upper.Validate(v), both.Validate(v), v)
	}
}

func TestDependentValidate(t *testing.T) {
	fixed := FixedLen(3, List)
	tassert.True(t, fixed.Validate([]any{1, 2, 3}))
	tassert.False(t, fixed.Validate([]any{1, 2}))
	tassert.False(t, fixed.Validate(5))
	tassert.Equal(t, "list[len=3]", fixed.String())

	ranged := BoundedLen(1, 3, List)
	tassert.True(t, ranged.Validate([]any{1}))
	tassert.False(t, ranged.Validate([]any{}))
	tassert.False(t, ranged.Validate([]any{1, 2, 3, 4}))
}

func TestNominalIdentity(t *testing.T) {
	userID := NewType("UserId", Int)
	orderID := NewType("OrderId", Int)
	tassert.False(t, userID.Is(orderID))
	tassert.True(t, userID.Is(NewType("UserId", Str)))
	tassert.Equal(t, "UserId", userID.String())
}

func TestRecursiveResolveIdempotent(t *testing.T) {
	calls := 0
	list := Recursive("List", func(self Type) Type {
		calls++
		return Union(None, TupleType{Elems: []Type{Int, self}})
	})
	tassert.False(t, list.Resolved())
	first := list.Resolve()
	second := list.Resolve()
	tassert.Equal(t, first, second)
	tassert.Equal(t, 1, calls)
	tassert.True(t, list.Resolved())

	u, ok := first.(UnionType)
	tassert.True(t, ok)
	tassert.Len(t, u.Members, 2)
}

func TestRecursiveResolveConcurrent(t *testing.T) {
	calls := 0
	rec := Recursive("JSON", func(self Type) Type {
		calls++
		return Union(None, Bool, Int, Float, Str, ListType{Elem: self}, MapType{K: Str, V: self})
	})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Resolve()
		}()
	}
	wg.Wait()
	tassert.Equal(t, 1, calls)
	tassert.True(t, rec.Resolved())
	_, ok := rec.Resolve().(UnionType)
	tassert.True(t, ok)
}

func TestTypeStrings(t *testing.T) {
	tassert.Equal(t, "int | str", Union(Int, Str).String())
	tassert.Equal(t, "Optional[int]", Optional(Int).String())
	tassert.Equal(t, "list[int]", ListType{Elem: Int}.String())
	tassert.Equal(t, "dict[str, int]", MapType{K: Str, V: Int}.String())
	tassert.Equal(t, "tuple[int, str]", TupleType{Elems: []Type{Int, Str}}.String())
	tassert.Equal(t, "rec JSON", Recursive("JSON", func(self Type) Type { return self }).String())
}
