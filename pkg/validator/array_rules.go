package validator

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ArrayRule checks that the value is a slice, array or map whose length
// lies in [min, max]. An unset or zero max means no upper bound.
type ArrayRule struct {
	*Base
	min int
	max int
}

func newArrayRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewArrayRule(key, value, params)
}

// NewArrayRule builds an array rule. Options: min, max.
func NewArrayRule(key string, value any, params Params) (*ArrayRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	base.SetEmptyFunc(IsCollectionEmpty)

	minLen, err := params.Int(ParamMin, 0)
	if err != nil {
		return nil, err
	}
	maxLen, err := params.Int(ParamMax, 0)
	if err != nil {
		return nil, err
	}

	return &ArrayRule{Base: base, min: minLen, max: maxLen}, nil
}

func (r *ArrayRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if !isCollection(r.value) {
		return r.SetAndReturnError(CodeInvalidArray, nil)
	}

	length := reflect.ValueOf(r.value).Len()
	upper := r.max
	if upper == 0 {
		upper = length
	}

	if length < r.min || length > upper {
		maxLabel := ""
		if r.max != 0 {
			maxLabel = strconv.Itoa(r.max)
		}
		return r.SetAndReturnError(CodeInvalidArrayLength, map[string]string{
			"%min%": strconv.Itoa(r.min),
			"%max%": maxLabel,
		})
	}

	return StatusValid
}

// Value returns an empty list when the value is falsy and no error occurred.
func (r *ArrayRule) Value() any {
	if r.err != "" || !isFalsy(r.value) {
		return r.value
	}
	return []any{}
}

// RangeRule checks that the value is present in a fixed list. Comparison is
// strict: "1" and 1 are different values.
type RangeRule struct {
	*Base
	allowed []any
}

func newRangeRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewRangeRule(key, value, params)
}

// NewRangeRule builds a range rule. Options: range.
func NewRangeRule(key string, value any, params Params) (*RangeRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	allowed, err := params.List(ParamRange)
	if err != nil {
		return nil, err
	}
	return &RangeRule{Base: base, allowed: allowed}, nil
}

func (r *RangeRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if !containsStrict(r.allowed, r.value) {
		return r.SetAndReturnError(CodeInvalidRange, map[string]string{
			"%range%": Stringify(r.allowed),
		})
	}

	return StatusValid
}

// ChoicesRule checks that every item of a list value belongs to a fixed
// list, using strict comparison.
type ChoicesRule struct {
	*Base
	list []any
}

func newChoicesRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewChoicesRule(key, value, params)
}

// NewChoicesRule builds a choices rule. Options: list.
func NewChoicesRule(key string, value any, params Params) (*ChoicesRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	base.SetEmptyFunc(IsCollectionEmpty)

	list, err := params.List(ParamList)
	if err != nil {
		return nil, err
	}
	return &ChoicesRule{Base: base, list: list}, nil
}

func (r *ChoicesRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	for _, item := range items(r.value) {
		if !containsStrict(r.list, item) {
			return r.SetAndReturnError(CodeInvalidChoice, map[string]string{
				"%item%": Stringify(item),
				"%list%": Stringify(r.list),
			})
		}
	}

	return StatusValid
}

func containsStrict(list []any, v any) bool {
	return slices.ContainsFunc(list, func(item any) bool {
		return strictEqual(item, v)
	})
}

// items flattens a slice, array or map (in key order) into a list. Any
// other value is a single item.
func items(v any) []any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(Stringify(a.Interface()), Stringify(b.Interface()))
		})
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(k).Interface()
		}
		return out
	}
	return []any{v}
}
