package types

import "reflect"

// TupleValue is a fixed-size ordered sequence, distinct from list values.
type TupleValue []any

// SetValue is an unordered unique-element collection. FrozenSetValue is its
// immutable counterpart; both satisfy the set base types.
type SetValue map[any]struct{}

type FrozenSetValue map[any]struct{}

func NewSetValue(elems ...any) SetValue {
	s := make(SetValue, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

func NewFrozenSetValue(elems ...any) FrozenSetValue {
	s := make(FrozenSetValue, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Instance reports whether v belongs to the named base type.
// A bool is a distinct kind from a numeric: it never satisfies int or float,
// and numerics never satisfy bool.
func Instance(v any, name string) bool {
	switch name {
	case "Any":
		return true
	case "None":
		return v == nil
	case "bool":
		_, ok := v.(bool)
		return ok
	case "int":
		return isIntValue(v)
	case "float":
		// ints satisfy float, bools do not
		return isIntValue(v) || isFloatValue(v)
	case "str":
		_, ok := v.(string)
		return ok
	case "bytes":
		_, ok := v.([]byte)
		return ok
	case "list", "List":
		return isListValue(v)
	case "tuple", "Tuple":
		_, ok := v.(TupleValue)
		return ok
	case "dict", "Dict":
		return isDictValue(v)
	case "set", "Set":
		switch v.(type) {
		case SetValue, FrozenSetValue:
			return true
		}
		return false
	case "frozenset":
		_, ok := v.(FrozenSetValue)
		return ok
	default:
		// Unknown names accept everything, matching gradual semantics for
		// user-defined or nominal names the runtime cannot see.
		return true
	}
}

func isIntValue(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(bool); ok {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatValue(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isListValue(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	if _, ok := v.(TupleValue); ok {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isDictValue(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case SetValue, FrozenSetValue:
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}

// KindName names v's kind in the type system's vocabulary, for error messages.
func KindName(v any) string {
	switch {
	case v == nil:
		return "None"
	case Instance(v, "bool"):
		return "bool"
	case isIntValue(v):
		return "int"
	case isFloatValue(v):
		return "float"
	case Instance(v, "str"):
		return "str"
	case Instance(v, "bytes"):
		return "bytes"
	case Instance(v, "tuple"):
		return "tuple"
	case Instance(v, "frozenset"):
		return "frozenset"
	case Instance(v, "set"):
		return "set"
	case isListValue(v):
		return "list"
	case isDictValue(v):
		return "dict"
	default:
		return reflect.TypeOf(v).String()
	}
}
