package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"typon/pkg/predicate"
	"typon/pkg/sig"
	"typon/pkg/types"
	"typon/pkg/utils"
)

// Validator decides membership of runtime values in parsed types. It holds
// no global state and is safe for concurrent use; construct one per
// component (or per test) and pass it by reference.
type Validator struct {
	parser *sig.Parser
}

func NewValidator() *Validator {
	return &Validator{parser: sig.NewParser()}
}

// Validate parses a single type annotation and reports membership.
func (v *Validator) Validate(value any, annotation string) (bool, error) {
	pt, err := v.parser.ParseType(annotation)
	if err != nil {
		return false, err
	}
	return v.ValidateValue(value, pt, "value") == nil, nil
}

// ValidateJSON is the cross-boundary variant of Validate: the candidate
// arrives JSON-encoded instead of as a shared object representation.
// Whole JSON numbers come out as ints so that `list[int]` means what the
// sender thinks it means.
func (v *Validator) ValidateJSON(encoded []byte, annotation string) (bool, error) {
	value, err := DecodeJSON(encoded)
	if err != nil {
		return false, err
	}
	return v.Validate(value, annotation)
}

// DecodeJSON decodes a candidate value the way the validators expect it:
// whole numbers as ints, fractional ones as floats.
func DecodeJSON(encoded []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decoding candidate: %w", err)
	}
	return normalizeJSON(value), nil
}

func normalizeJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i, e := range val {
			val[i] = normalizeJSON(e)
		}
		return val
	case map[string]any:
		for k, e := range val {
			val[k] = normalizeJSON(e)
		}
		return val
	default:
		return v
	}
}

// ValidateArgs checks call arguments positionally, stopping at the first
// violation.
func (v *Validator) ValidateArgs(params []*sig.ParsedType, args []any) error {
	if len(args) != len(params) {
		return &ArityError{Want: len(params), Got: len(args)}
	}
	for i, param := range params {
		if err := v.ValidateValue(args[i], param, fmt.Sprintf("argument %d", i)); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) ValidateReturn(ret *sig.ParsedType, value any) error {
	return v.ValidateValue(value, ret, "return value")
}

// ValidateValue recursively checks value against a parsed type. Dispatch
// order matters, since one node can carry an effect suffix on top of any
// other interpretation: refinement, then effect, then union, then generic
// containers, then plain leaf.
func (v *Validator) ValidateValue(value any, pt *sig.ParsedType, context string) error {
	if pt.IsRefinement && pt.Predicate != "" {
		if !types.Instance(value, pt.BaseType) {
			return newValidationError(context, "type mismatch: expected %s, got %s", pt.BaseType, types.KindName(value))
		}
		if !evalPredicate(pt.Predicate, value) {
			return newValidationError(context, "failed refinement: %s", pt)
		}
		return nil
	}

	// Effects describe what the producing function does, not a property of
	// the value: only the base type is checked here.
	if pt.IsEffect {
		if !types.Instance(value, pt.BaseType) {
			return newValidationError(context, "type mismatch for effect type: expected %s, got %s", pt.BaseType, types.KindName(value))
		}
		return nil
	}

	if pt.BaseType == "Union" {
		for _, member := range pt.Args {
			if v.ValidateValue(value, member, context) == nil {
				return nil
			}
		}
		return newValidationError(context, "does not match any type in union: %s", pt)
	}

	if len(pt.Args) > 0 {
		return v.validateGeneric(value, pt, context)
	}

	if !types.Instance(value, pt.BaseType) {
		return newValidationError(context, "type mismatch: expected %s, got %s", pt.BaseType, types.KindName(value))
	}
	return nil
}

func (v *Validator) validateGeneric(value any, pt *sig.ParsedType, context string) error {
	switch pt.BaseType {
	case "list", "List":
		if !types.Instance(value, "list") {
			return newValidationError(context, "must be list, got %s", types.KindName(value))
		}
		rv := reflect.ValueOf(value)
		elem := pt.Args[0]
		for i := 0; i < rv.Len(); i++ {
			if err := v.ValidateValue(rv.Index(i).Interface(), elem, fmt.Sprintf("%s[%d]", context, i)); err != nil {
				return err
			}
		}
		return nil

	case "dict", "Dict":
		if !types.Instance(value, "dict") {
			return newValidationError(context, "must be dict, got %s", types.KindName(value))
		}
		if len(pt.Args) >= 2 {
			keyT, valT := pt.Args[0], pt.Args[1]
			iter := reflect.ValueOf(value).MapRange()
			for iter.Next() {
				k := iter.Key().Interface()
				if err := v.ValidateValue(k, keyT, context+" key"); err != nil {
					return err
				}
				if err := v.ValidateValue(iter.Value().Interface(), valT, fmt.Sprintf("%s[%v]", context, k)); err != nil {
					return err
				}
			}
		}
		return nil

	case "tuple", "Tuple":
		if !types.Instance(value, "tuple") {
			return newValidationError(context, "must be tuple, got %s", types.KindName(value))
		}
		// Length mismatch is deliberately not an arity error here: only
		// element-type mismatches are reported when the sizes line up.
		tup, ok := utils.Cast[types.TupleValue](value)
		if !ok {
			return newValidationError(context, "must be tuple, got %s", types.KindName(value))
		}
		if len(tup) == len(pt.Args) {
			for i, elem := range tup {
				if err := v.ValidateValue(elem, pt.Args[i], fmt.Sprintf("%s[%d]", context, i)); err != nil {
					return err
				}
			}
		}
		return nil

	case "set", "Set", "frozenset":
		if !types.Instance(value, pt.BaseType) {
			return newValidationError(context, "must be %s, got %s", pt.BaseType, types.KindName(value))
		}
		elem := pt.Args[0]
		iter := reflect.ValueOf(value).MapRange()
		for iter.Next() {
			if err := v.ValidateValue(iter.Key().Interface(), elem, context+" element"); err != nil {
				return err
			}
		}
		return nil

	case "Optional":
		if value == nil {
			return nil
		}
		return v.ValidateValue(value, pt.Args[0], context)

	default:
		// Unknown generic base: fall back to the leaf check on the base
		// name; unrecognized names accept everything.
		if !types.Instance(value, pt.BaseType) {
			return newValidationError(context, "type mismatch: expected %s, got %s", pt.BaseType, types.KindName(value))
		}
		return nil
	}
}

// evalPredicate routes length constraints to their dedicated path and
// everything else to the closed-grammar evaluator. Both fail closed.
func evalPredicate(pred string, value any) bool {
	if predicate.IsConstraint(pred) {
		return predicate.CheckConstraint(pred, value)
	}
	return predicate.Evaluate(pred, value)
}
