package predicate

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

// Evaluate runs a predicate against a candidate value bound to `value`.
// It fails closed: any lex, parse or evaluation error means the value does
// not satisfy the constraint. It never panics and never reports why.
func Evaluate(pred string, v any) bool {
	ok, err := Eval(pred, v)
	return err == nil && ok
}

// Eval is Evaluate with the error surfaced, for callers that want to log it.
// The predicate must produce a boolean; a bare arithmetic result is an error.
func Eval(pred string, v any) (bool, error) {
	n, err := Parse(pred)
	if err != nil {
		return false, err
	}
	res, err := eval(n, v)
	if err != nil {
		return false, err
	}
	if res.kind != kindBool {
		return false, fmt.Errorf("predicate is not boolean")
	}
	return res.b, nil
}

// EvalJSON evaluates a predicate against a JSON-encoded candidate. This is
// the cross-boundary entry point: callers on the other side of a process or
// language boundary send serialized values instead of sharing object
// representations.
func EvalJSON(pred string, encoded []byte) (bool, error) {
	var v any
	if err := json.Unmarshal(encoded, &v); err != nil {
		return false, fmt.Errorf("decoding candidate: %w", err)
	}
	return Eval(pred, v)
}

const (
	kindNum = iota
	kindStr
	kindBool
)

type result struct {
	kind int
	num  float64
	str  string
	b    bool
}

func numResult(f float64) result { return result{kind: kindNum, num: f} }
func strResult(s string) result  { return result{kind: kindStr, str: s} }
func boolResult(b bool) result   { return result{kind: kindBool, b: b} }

func eval(n Node, v any) (result, error) {
	switch node := n.(type) {
	case NumberLit:
		return numResult(node.V), nil
	case StringLit:
		return strResult(node.V), nil
	case ValueRef:
		return valueResult(v)
	case LenCall:
		l, err := lengthOf(v)
		if err != nil {
			return result{}, err
		}
		return numResult(float64(l)), nil
	case Binary:
		return evalBinary(node, v)
	default:
		return result{}, fmt.Errorf("unknown node %T", n)
	}
}

func evalBinary(n Binary, v any) (result, error) {
	l, err := eval(n.L, v)
	if err != nil {
		return result{}, err
	}
	// and/or short-circuit before the right side is touched.
	switch n.Op {
	case AND:
		if l.kind != kindBool {
			return result{}, fmt.Errorf("'and' needs boolean operands")
		}
		if !l.b {
			return boolResult(false), nil
		}
		r, err := eval(n.R, v)
		if err != nil {
			return result{}, err
		}
		if r.kind != kindBool {
			return result{}, fmt.Errorf("'and' needs boolean operands")
		}
		return boolResult(r.b), nil
	case OR:
		if l.kind != kindBool {
			return result{}, fmt.Errorf("'or' needs boolean operands")
		}
		if l.b {
			return boolResult(true), nil
		}
		r, err := eval(n.R, v)
		if err != nil {
			return result{}, err
		}
		if r.kind != kindBool {
			return result{}, fmt.Errorf("'or' needs boolean operands")
		}
		return boolResult(r.b), nil
	}

	r, err := eval(n.R, v)
	if err != nil {
		return result{}, err
	}
	switch n.Op {
	case EQL:
		return boolResult(equalResults(l, r)), nil
	case NEQ:
		return boolResult(!equalResults(l, r)), nil
	case LT, LTE, GT, GTE:
		return compareOrdered(n.Op, l, r)
	case ADD, SUB, MUL, QUO, REM:
		return arith(n.Op, l, r)
	default:
		return result{}, fmt.Errorf("unknown operator %d", n.Op)
	}
}

func equalResults(l, r result) bool {
	if l.kind != r.kind {
		return false
	}
	switch l.kind {
	case kindNum:
		return l.num == r.num
	case kindStr:
		return l.str == r.str
	default:
		return l.b == r.b
	}
}

func compareOrdered(op int, l, r result) (result, error) {
	if l.kind == kindStr && r.kind == kindStr {
		return boolResult(cmpBool(op, compareStrings(l.str, r.str))), nil
	}
	if l.kind == kindNum && r.kind == kindNum {
		switch {
		case l.num < r.num:
			return boolResult(cmpBool(op, -1)), nil
		case l.num > r.num:
			return boolResult(cmpBool(op, 1)), nil
		default:
			return boolResult(cmpBool(op, 0)), nil
		}
	}
	return result{}, fmt.Errorf("ordering needs two numbers or two strings")
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(op, c int) bool {
	switch op {
	case LT:
		return c < 0
	case LTE:
		return c <= 0
	case GT:
		return c > 0
	default:
		return c >= 0
	}
}

func arith(op int, l, r result) (result, error) {
	if l.kind != kindNum || r.kind != kindNum {
		return result{}, fmt.Errorf("arithmetic needs numeric operands")
	}
	switch op {
	case ADD:
		return numResult(l.num + r.num), nil
	case SUB:
		return numResult(l.num - r.num), nil
	case MUL:
		return numResult(l.num * r.num), nil
	case QUO:
		if r.num == 0 {
			return result{}, fmt.Errorf("division by zero")
		}
		return numResult(l.num / r.num), nil
	default: // REM
		if r.num == 0 {
			return result{}, fmt.Errorf("modulo by zero")
		}
		return numResult(math.Mod(l.num, r.num)), nil
	}
}

// valueResult converts the bound candidate to an evaluation result.
// Booleans are rejected rather than coerced to 0/1: a bool is not a number
// in this type system.
func valueResult(v any) (result, error) {
	if v == nil {
		return result{}, fmt.Errorf("value is None")
	}
	switch val := v.(type) {
	case bool:
		return result{}, fmt.Errorf("bool is not comparable as a number")
	case string:
		return strResult(val), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numResult(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return numResult(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return numResult(rv.Float()), nil
	}
	return result{}, fmt.Errorf("value is not a number or string")
}

func lengthOf(v any) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("len of None")
	}
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return 0, fmt.Errorf("len of %s", rv.Kind())
}
