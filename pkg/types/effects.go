package types

import (
	"fmt"
	"sort"
	"strings"
)

// Effect is a side-effect tag. The set of tags is open, but the well-known
// ones below get typo checking via Known.
type Effect string

const (
	EffectPure      Effect = "pure"
	EffectIO        Effect = "io"
	EffectNetwork   Effect = "network"
	EffectMutation  Effect = "mutation"
	EffectException Effect = "exception"
	EffectAsync     Effect = "async"
	EffectRandom    Effect = "random"
	EffectTime      Effect = "time"
)

var knownEffects = map[Effect]struct{}{
	EffectPure: {}, EffectIO: {}, EffectNetwork: {}, EffectMutation: {},
	EffectException: {}, EffectAsync: {}, EffectRandom: {}, EffectTime: {},
}

func (e Effect) Known() bool {
	_, ok := knownEffects[e]
	return ok
}

// EffectSet is an unordered, deduplicated set of effect tags. Treat as
// immutable once constructed.
type EffectSet map[Effect]struct{}

func NewEffectSet(effects ...Effect) EffectSet {
	s := make(EffectSet, len(effects))
	for _, e := range effects {
		s[e] = struct{}{}
	}
	return s
}

func EffectSetOf(names []string) EffectSet {
	s := make(EffectSet, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s[Effect(n)] = struct{}{}
		}
	}
	return s
}

func (s EffectSet) Has(e Effect) bool {
	_, ok := s[e]
	return ok
}

// IsPure holds iff the set is empty or contains only the "pure" tag.
func (s EffectSet) IsPure() bool {
	if len(s) == 0 {
		return true
	}
	return len(s) == 1 && s.Has(EffectPure)
}

// Union returns a new set; neither receiver nor argument is mutated.
func (s EffectSet) Union(other EffectSet) EffectSet {
	out := make(EffectSet, len(s)+len(other))
	for e := range s {
		out[e] = struct{}{}
	}
	for e := range other {
		out[e] = struct{}{}
	}
	return out
}

func (s EffectSet) Slice() []Effect {
	out := make([]Effect, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s EffectSet) String() string {
	var tmp []string
	for _, e := range s.Slice() {
		tmp = append(tmp, string(e))
	}
	return "{" + strings.Join(tmp, ", ") + "}"
}

// EffectType wraps a base type with the set of side effects a producing
// function may perform. Effects are call-site metadata: they describe the
// function, not a property of the value it returns.
type EffectType struct {
	Base    Type
	Effects EffectSet
}

func WithEffects(base Type, effects ...Effect) EffectType {
	return EffectType{Base: base, Effects: NewEffectSet(effects...)}
}

func (e EffectType) String() string {
	if len(e.Effects) == 0 {
		return e.Base.String()
	}
	return fmt.Sprintf("%s ! %s", e.Base, e.Effects)
}

func (e EffectType) HasEffect(effect Effect) bool { return e.Effects.Has(effect) }

func (e EffectType) IsPure() bool { return e.Effects.IsPure() }

// Common effect wrappers.
func IO(t Type) EffectType      { return WithEffects(t, EffectIO) }
func Network(t Type) EffectType { return WithEffects(t, EffectNetwork) }
func Async(t Type) EffectType   { return WithEffects(t, EffectAsync) }
func Random(t Type) EffectType  { return WithEffects(t, EffectRandom) }
