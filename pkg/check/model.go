package check

import (
	"fmt"
	"reflect"

	"typon/pkg/types"
	"typon/pkg/utils"
)

// ValidateType checks a value against a type-model instance rather than a
// parsed signature node. Same dispatch rules, same context-path errors.
func (v *Validator) ValidateType(value any, t types.Type, context string) error {
	switch ty := t.(type) {
	case types.BasicType:
		if !types.Instance(value, ty.Name) {
			return newValidationError(context, "type mismatch: expected %s, got %s", ty.Name, types.KindName(value))
		}
		return nil

	case types.AnyType:
		return nil

	case types.NoneType:
		if value != nil {
			return newValidationError(context, "type mismatch: expected None, got %s", types.KindName(value))
		}
		return nil

	case types.UnionType:
		for _, member := range ty.Members {
			if v.ValidateType(value, member, context) == nil {
				return nil
			}
		}
		return newValidationError(context, "does not match any type in union: %s", ty)

	case types.OptionalType:
		if value == nil {
			return nil
		}
		return v.ValidateType(value, ty.W, context)

	case types.ListType:
		if !types.Instance(value, "list") {
			return newValidationError(context, "must be list, got %s", types.KindName(value))
		}
		if ty.Elem != nil {
			rv := reflect.ValueOf(value)
			for i := 0; i < rv.Len(); i++ {
				if err := v.ValidateType(rv.Index(i).Interface(), ty.Elem, fmt.Sprintf("%s[%d]", context, i)); err != nil {
					return err
				}
			}
		}
		return nil

	case types.SetType:
		if !types.Instance(value, "set") {
			return newValidationError(context, "must be set, got %s", types.KindName(value))
		}
		if ty.Elem != nil {
			iter := reflect.ValueOf(value).MapRange()
			for iter.Next() {
				if err := v.ValidateType(iter.Key().Interface(), ty.Elem, context+" element"); err != nil {
					return err
				}
			}
		}
		return nil

	case types.MapType:
		if !types.Instance(value, "dict") {
			return newValidationError(context, "must be dict, got %s", types.KindName(value))
		}
		if ty.K != nil && ty.V != nil {
			iter := reflect.ValueOf(value).MapRange()
			for iter.Next() {
				k := iter.Key().Interface()
				if err := v.ValidateType(k, ty.K, context+" key"); err != nil {
					return err
				}
				if err := v.ValidateType(iter.Value().Interface(), ty.V, fmt.Sprintf("%s[%v]", context, k)); err != nil {
					return err
				}
			}
		}
		return nil

	case types.TupleType:
		if !types.Instance(value, "tuple") {
			return newValidationError(context, "must be tuple, got %s", types.KindName(value))
		}
		tup, ok := utils.Cast[types.TupleValue](value)
		if !ok {
			return newValidationError(context, "must be tuple, got %s", types.KindName(value))
		}
		if len(ty.Elems) > 0 && len(tup) == len(ty.Elems) {
			for i, elem := range tup {
				if err := v.ValidateType(elem, ty.Elems[i], fmt.Sprintf("%s[%d]", context, i)); err != nil {
					return err
				}
			}
		}
		return nil

	case types.LiteralType:
		if !ty.Matches(value) {
			return newValidationError(context, "does not equal literal %s", ty)
		}
		return nil

	case types.EffectType:
		// Call-site metadata only; the value is checked against the base.
		return v.ValidateType(value, ty.Base, context)

	case types.RefinementType:
		if !ty.Validate(value) {
			return newValidationError(context, "failed refinement: %s", ty)
		}
		return nil

	case types.DependentType:
		if !ty.Validate(value) {
			return newValidationError(context, "failed constraint: %s", ty)
		}
		return nil

	case types.NominalType:
		if ty.Base == nil {
			return nil
		}
		if err := v.ValidateType(value, ty.Base, context); err != nil {
			return newValidationError(context, "not a valid %s: %s", ty.Name, err.(*ValidationError).Msg)
		}
		return nil

	case *types.RecursiveType:
		resolved := ty.Resolve()
		if resolved == t {
			// Body still expanding; stop here rather than recurse forever.
			return newValidationError(context, "recursive type %s is unresolved", ty.Name)
		}
		return v.ValidateType(value, resolved, context)

	default:
		return newValidationError(context, "unsupported type %T", t)
	}
}
