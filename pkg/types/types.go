package types

import (
	"fmt"
	"reflect"
	"strings"
)

type Type interface {
	String() string
}

// BasicType is a builtin leaf type referenced by name: int, str, bool...
type BasicType struct {
	Name string
}

func (b BasicType) String() string { return b.Name }

// BuiltinTypes is the fixed name table of base-type identifiers.
var BuiltinTypes = map[string]struct{}{
	"int": {}, "float": {}, "str": {}, "bool": {}, "bytes": {}, "None": {},
	"list": {}, "tuple": {}, "dict": {}, "set": {}, "frozenset": {},
	"Any": {}, "Union": {}, "Optional": {},
}

func IsBuiltin(name string) bool {
	_, ok := BuiltinTypes[name]
	return ok
}

type AnyType struct{}

func (a AnyType) String() string { return "Any" }

type NoneType struct{}

func (n NoneType) String() string { return "None" }

type UnionType struct {
	Members []Type
}

func (u UnionType) String() string {
	var tmp []string
	for _, m := range u.Members {
		tmp = append(tmp, m.String())
	}
	return strings.Join(tmp, " | ")
}

type OptionalType struct {
	W Type
}

func (o OptionalType) String() string { return fmt.Sprintf("Optional[%s]", o.W) }

type ListType struct {
	Elem Type
}

func (l ListType) String() string {
	if l.Elem == nil {
		return "list"
	}
	return fmt.Sprintf("list[%s]", l.Elem)
}

type SetType struct {
	Elem Type
}

func (s SetType) String() string {
	if s.Elem == nil {
		return "set"
	}
	return fmt.Sprintf("set[%s]", s.Elem)
}

type MapType struct {
	K, V Type
}

func (m MapType) String() string {
	if m.K == nil || m.V == nil {
		return "dict"
	}
	return fmt.Sprintf("dict[%s, %s]", m.K, m.V)
}

type TupleType struct {
	Elems []Type
}

func (t TupleType) String() string {
	if len(t.Elems) == 0 {
		return "tuple"
	}
	var tmp []string
	for _, e := range t.Elems {
		tmp = append(tmp, e.String())
	}
	return fmt.Sprintf("tuple[%s]", strings.Join(tmp, ", "))
}

// LiteralType accepts exactly one value, compared structurally.
type LiteralType struct {
	Value any
}

func (l LiteralType) String() string { return fmt.Sprintf("Literal[%#v]", l.Value) }

func (l LiteralType) Matches(v any) bool { return reflect.DeepEqual(l.Value, v) }

// NominalType is distinguished by name, not structure. Two nominal types
// over the same base are distinct entities.
type NominalType struct {
	Name string
	Base Type
}

func (n NominalType) String() string { return n.Name }

func (n NominalType) Is(other NominalType) bool { return n.Name == other.Name }

func Union(members ...Type) UnionType { return UnionType{Members: members} }

func Optional(w Type) OptionalType { return OptionalType{W: w} }

func NewType(name string, base Type) NominalType { return NominalType{Name: name, Base: base} }

var (
	Int       = BasicType{Name: "int"}
	Float     = BasicType{Name: "float"}
	Str       = BasicType{Name: "str"}
	Bool      = BasicType{Name: "bool"}
	Bytes     = BasicType{Name: "bytes"}
	None      = BasicType{Name: "None"}
	List      = BasicType{Name: "list"}
	Tuple     = BasicType{Name: "tuple"}
	Dict      = BasicType{Name: "dict"}
	Set       = BasicType{Name: "set"}
	Frozenset = BasicType{Name: "frozenset"}
	Any       = BasicType{Name: "Any"}
)
