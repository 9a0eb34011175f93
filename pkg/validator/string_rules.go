package validator

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/formguard/pkg/sanitizer"
)

// StringRule checks that the value is a string whose byte length lies in
// [min, max]. A max of 0 means no upper bound.
type StringRule struct {
	*Base
	min int
	max int
}

func newStringRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewStringRule(key, value, params)
}

// NewStringRule builds a string rule. Options: min, max.
func NewStringRule(key string, value any, params Params) (*StringRule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	minLen, err := params.Int(ParamMin, 0)
	if err != nil {
		return nil, err
	}
	maxLen, err := params.Int(ParamMax, 0)
	if err != nil {
		return nil, err
	}

	return &StringRule{Base: base, min: minLen, max: maxLen}, nil
}

func (r *StringRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	s, ok := r.value.(string)
	if !ok {
		return r.SetAndReturnError(CodeInvalidString, nil)
	}

	length := len(s)
	upper := r.max
	if upper == 0 {
		upper = length
	}

	if length < r.min || length > upper {
		return r.SetAndReturnError(CodeInvalidStringLength, map[string]string{
			"%min%": strconv.Itoa(r.min),
			"%max%": strconv.Itoa(r.max),
		})
	}

	return StatusValid
}

// StringCleanerRule validates like StringRule and hands out the value with
// invisible characters removed, followed by the optional named filters.
type StringCleanerRule struct {
	*StringRule
	filters []func(string) string
}

func newStringCleanerRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	return NewStringCleanerRule(key, value, params)
}

// NewStringCleanerRule builds a cleaning string rule. Options: min, max,
// filters (names understood by sanitizer.Filter).
func NewStringCleanerRule(key string, value any, params Params) (*StringCleanerRule, error) {
	inner, err := NewStringRule(key, value, params)
	if err != nil {
		return nil, err
	}

	names, err := params.Strings(ParamFilters, nil)
	if err != nil {
		return nil, err
	}
	filters, err := sanitizer.Filters(names...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	return &StringCleanerRule{StringRule: inner, filters: filters}, nil
}

// Value sanitizes lazily, so it is also safe to call before Validate.
func (r *StringCleanerRule) Value() any {
	s, ok := r.value.(string)
	if r.err != "" || !ok {
		return r.value
	}

	return sanitizer.Apply(sanitizer.RemoveInvisibleChars(s), r.filters...)
}
