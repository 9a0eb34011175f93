package validator

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericString = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?[ \t\n\r\v\f]*$`)
	integerString = regexp.MustCompile(`^[+-]?[0-9]+$`)
)

// IsNumeric reports whether v is a number or a numeric string and returns
// its float value.
func IsNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case bool, nil:
		return 0, false
	case string:
		if !numericString.MatchString(x) {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil && !isRangeError(err) {
			return 0, false
		}
		return f, true
	}

	return toFloat(v)
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// NumericRule checks numbers and numeric strings against optional bounds.
// With cast enabled the value becomes an int or a float64 after a
// successful check, and an empty value reads as 0.
type NumericRule struct {
	*Base
	min  *float64
	max  *float64
	cast bool
}

func newNumericRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewNumericRule(key, value, params)
}

// NewNumericRule builds a numeric rule. Options: min, max, cast.
func NewNumericRule(key string, value any, params Params) (*NumericRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	r := &NumericRule{Base: base}
	if r.min, err = params.OptionalFloat(ParamMin); err != nil {
		return nil, err
	}
	if r.max, err = params.OptionalFloat(ParamMax); err != nil {
		return nil, err
	}
	if r.cast, err = params.Bool(ParamCast, false); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *NumericRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	n, ok := IsNumeric(r.value)
	if !ok {
		return r.SetAndReturnError(CodeInvalidNumeric, nil)
	}

	bounds := map[string]string{
		"%min%": formatBound(r.min),
		"%max%": formatBound(r.max),
	}
	if r.min != nil && n < *r.min {
		return r.SetAndReturnError(CodeInvalidNumericLessThan, bounds)
	}
	if r.max != nil && n > *r.max {
		return r.SetAndReturnError(CodeInvalidNumericGreater, bounds)
	}

	if r.cast {
		r.value = castNumber(r.value, n)
	}

	return StatusValid
}

// Value returns 0 for an empty value when cast is enabled.
func (r *NumericRule) Value() any {
	if r.cast && r.err == "" && r.IsEmpty() {
		return 0
	}
	return r.value
}

func formatBound(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// castNumber keeps integral literals as int and everything else as float64.
func castNumber(raw any, f float64) any {
	var literal string
	switch v := raw.(type) {
	case string:
		literal = strings.TrimSpace(v)
	case json.Number:
		literal = v.String()
	case float32, float64:
		return f
	default:
		if f == math.Trunc(f) && math.Abs(f) <= math.MaxInt64 {
			return int(f)
		}
		return f
	}

	if integerString.MatchString(literal) {
		if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return int(n)
		}
	}
	return f
}

// BooleanRule accepts 0, 1, "0", "1", true and false. With cast enabled
// the value becomes a bool.
type BooleanRule struct {
	*Base
	cast bool
}

func newBooleanRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewBooleanRule(key, value, params)
}

// NewBooleanRule builds a boolean rule. Options: cast.
func NewBooleanRule(key string, value any, params Params) (*BooleanRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	cast, err := params.Bool(ParamCast, false)
	if err != nil {
		return nil, err
	}
	return &BooleanRule{Base: base, cast: cast}, nil
}

func (r *BooleanRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	b, ok := booleanOf(r.value)
	if !ok {
		return r.SetAndReturnError(CodeInvalidBoolean, nil)
	}

	if r.cast {
		r.value = b
	}

	return StatusValid
}

// Value returns false for an empty value when cast is enabled.
func (r *BooleanRule) Value() any {
	if r.cast && r.err == "" && r.IsEmpty() {
		return false
	}
	return r.value
}

func booleanOf(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch x {
		case "0":
			return false, true
		case "1":
			return true, true
		}
		return false, false
	case json.Number:
		switch x {
		case "0":
			return false, true
		case "1":
			return true, true
		}
		return false, false
	case float32, float64:
		return false, false
	}

	if n, ok := toFloat(v); ok && (n == 0 || n == 1) {
		return n == 1, true
	}
	return false, false
}
