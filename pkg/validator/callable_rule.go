package validator

import "fmt"

// CallableFunc is the predicate of a CallableRule. It may rewrite the
// value through rule.SetValue.
type CallableFunc func(key string, value any, rule *CallableRule) bool

// CallableRule delegates the check to a caller supplied predicate. The
// callable parameter accepts a CallableFunc or a plain
// func(key string, value any) bool.
type CallableRule struct {
	*Base
	fn CallableFunc
}

func newCallableRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	if !params.Has(ParamCallable) {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, ParamCallable)
	}

	var fn CallableFunc
	switch c := params[ParamCallable].(type) {
	case CallableFunc:
		fn = c
	case func(string, any, *CallableRule) bool:
		fn = c
	case func(string, any) bool:
		fn = func(key string, value any, _ *CallableRule) bool { return c(key, value) }
	default:
		return nil, fmt.Errorf("%w: %s must be a function, got %T", ErrInvalidParam, ParamCallable, c)
	}

	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}

	return &CallableRule{Base: base, fn: fn}, nil
}

func (r *CallableRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	// a value rewritten by the predicate is output only
	input := r.input
	ok := r.fn(r.key, r.value, r)
	r.input = input
	if !ok {
		return r.SetAndReturnError(CodeInvalidCallable, nil)
	}

	return StatusValid
}
