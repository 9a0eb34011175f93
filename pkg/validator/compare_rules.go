package validator

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Sign is a comparison operator of CompareRule.
type Sign string

const (
	SignEqual          Sign = "eq"
	SignSame           Sign = "seq"
	SignNotEqual       Sign = "neq"
	SignNotSame        Sign = "nseq"
	SignLessOrEqual    Sign = "lte"
	SignGreaterOrEqual Sign = "gte"
	SignLess           Sign = "lt"
	SignGreater        Sign = "gt"
)

var signLabels = map[Sign]string{
	SignEqual:          "equal to",
	SignSame:           "same as",
	SignNotEqual:       "not equal to",
	SignNotSame:        "not same as",
	SignLessOrEqual:    "less or equal to",
	SignGreaterOrEqual: "greater or equal to",
	SignLess:           "less than",
	SignGreater:        "greater than",
}

var signSymbols = map[string]Sign{
	"==":  SignEqual,
	"===": SignSame,
	"!=":  SignNotEqual,
	"<>":  SignNotEqual,
	"!==": SignNotSame,
	"<=":  SignLessOrEqual,
	">=":  SignGreaterOrEqual,
	"<":   SignLess,
	">":   SignGreater,
}

// ParseSign accepts both the named ("gte") and the symbolic (">=") form.
func ParseSign(s string) (Sign, error) {
	s = strings.TrimSpace(s)
	if sign, ok := signSymbols[s]; ok {
		return sign, nil
	}
	if _, ok := signLabels[Sign(strings.ToLower(s))]; ok {
		return Sign(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("%w: unsupported comparison sign %q", ErrInvalidParam, s)
}

// Label returns the human readable form used in messages.
func (s Sign) Label() string {
	return signLabels[s]
}

// Holds reports whether "a s b" is true.
func (s Sign) Holds(a, b any) bool {
	switch s {
	case SignEqual:
		return looseEqual(a, b)
	case SignSame:
		return strictEqual(a, b)
	case SignNotEqual:
		return !looseEqual(a, b)
	case SignNotSame:
		return !strictEqual(a, b)
	case SignLessOrEqual:
		return compareLoose(a, b) <= 0
	case SignGreaterOrEqual:
		return compareLoose(a, b) >= 0
	case SignLess:
		return compareLoose(a, b) < 0
	case SignGreater:
		return compareLoose(a, b) > 0
	}
	return false
}

// CompareRule compares the value with an expected one.
type CompareRule struct {
	*Base
	sign     Sign
	expected any
}

func newCompareRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewCompareRule(key, value, params)
}

// NewCompareRule builds a compare rule. Options: sign (default "eq"), expected.
func NewCompareRule(key string, value any, params Params) (*CompareRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	raw, err := params.String(ParamSign, string(SignEqual))
	if err != nil {
		return nil, err
	}
	sign, err := ParseSign(raw)
	if err != nil {
		return nil, err
	}

	return &CompareRule{Base: base, sign: sign, expected: params[ParamExpected]}, nil
}

func (r *CompareRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if !r.sign.Holds(r.value, r.expected) {
		return r.SetAndReturnError(CodeInvalidCompare, map[string]string{
			"%label%":    r.sign.Label(),
			"%expected%": Stringify(r.expected),
		})
	}

	return StatusValid
}

// scalar normalizes numbers so that values of different Go integer or
// float types compare by value.
func scalar(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

// strictEqual requires the same kind of value and the same content.
func strictEqual(a, b any) bool {
	a, b = scalar(a), scalar(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// looseEqual compares numerically when both sides are numeric, by
// truthiness when either side is a bool or nil, and textually otherwise.
func looseEqual(a, b any) bool {
	a, b = scalar(a), scalar(b)

	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool || a == nil || b == nil {
		if a == nil && b == nil {
			return true
		}
		return isFalsy(a) == isFalsy(b)
	}

	if x, ok := IsNumeric(a); ok {
		if y, ok := IsNumeric(b); ok {
			return x == y
		}
	}

	if isCollection(a) || isCollection(b) {
		return reflect.DeepEqual(a, b)
	}

	return Stringify(a) == Stringify(b)
}

// compareLoose orders numerically when possible and textually otherwise.
func compareLoose(a, b any) int {
	a, b = scalar(a), scalar(b)

	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool || a == nil || b == nil {
		return cmp.Compare(truth(a), truth(b))
	}

	if x, ok := IsNumeric(a); ok {
		if y, ok := IsNumeric(b); ok {
			return cmp.Compare(x, y)
		}
	}

	return strings.Compare(Stringify(a), Stringify(b))
}

func truth(v any) int {
	if isFalsy(v) {
		return 0
	}
	return 1
}

func isCollection(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
