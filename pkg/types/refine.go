package types

import (
	"fmt"

	"typon/pkg/predicate"
)

// RefinementType narrows a base type with a boolean predicate over `value`.
type RefinementType struct {
	Base      Type
	Predicate string
}

func Refine(base Type, pred string) RefinementType {
	return RefinementType{Base: base, Predicate: pred}
}

func (r RefinementType) String() string { return fmt.Sprintf("%s[%s]", r.Base, r.Predicate) }

// Validate never returns an error: a predicate that cannot be evaluated is
// treated as not satisfied.
func (r RefinementType) Validate(v any) bool {
	if b, ok := r.Base.(BasicType); ok && !Instance(v, b.Name) {
		return false
	}
	return predicate.Evaluate(r.Predicate, v)
}

// DependentType narrows a base type with a structural length constraint
// (len=N, lo<=len<=hi). Constraints are not general predicates and take a
// dedicated evaluation path.
type DependentType struct {
	Base       Type
	Constraint string
}

func Depend(base Type, constraint string) DependentType {
	return DependentType{Base: base, Constraint: constraint}
}

func (d DependentType) String() string { return fmt.Sprintf("%s[%s]", d.Base, d.Constraint) }

func (d DependentType) Validate(v any) bool {
	if b, ok := d.Base.(BasicType); ok && !Instance(v, b.Name) {
		return false
	}
	return predicate.CheckConstraint(d.Constraint, v)
}

// Prelude of common refinements.
func Positive(base Type) RefinementType    { return Refine(base, "value > 0") }
func Negative(base Type) RefinementType    { return Refine(base, "value < 0") }
func NonNegative(base Type) RefinementType { return Refine(base, "value >= 0") }
func NonZero(base Type) RefinementType     { return Refine(base, "value != 0") }
func NonEmpty(base Type) RefinementType    { return Refine(base, "len(value) > 0") }
func Even() RefinementType                 { return Refine(Int, "value % 2 == 0") }
func Odd() RefinementType                  { return Refine(Int, "value % 2 != 0") }

func Bounded(min, max int, base Type) RefinementType {
	return Refine(base, fmt.Sprintf("value >= %d and value <= %d", min, max))
}

func FixedLen(n int, base Type) DependentType {
	return Depend(base, fmt.Sprintf("len=%d", n))
}

func BoundedLen(lo, hi int, base Type) DependentType {
	return Depend(base, fmt.Sprintf("%d<=len<=%d", lo, hi))
}
