package validator

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Universal and rule-specific parameter names.
const (
	ParamRequired  = "required"
	ParamTrim      = "trim"
	ParamMessages  = "messages"
	ParamMin       = "min"
	ParamMax       = "max"
	ParamCast      = "cast"
	ParamRange     = "range"
	ParamList      = "list"
	ParamPattern   = "pattern"
	ParamFlag      = "flag"
	ParamDecode    = "decode"
	ParamFormat    = "format"
	ParamSeparator = "separator"
	ParamSign      = "sign"
	ParamExpected  = "expected"
	ParamCallable  = "callable"
	ParamVersion   = "version"
	ParamRules     = "rules"
	ParamJSON      = "json"
	ParamFilters   = "filters"

	// ParamFallbackMessages carries messages that sit between the built-in
	// defaults and the rule's own "messages". The Validator fills it from
	// WithMessages and composite rules pass it down to their sub-rules.
	ParamFallbackMessages = "fallback_messages"
)

// Params holds the named options of a rule specification.
type Params map[string]any

// Get returns the raw parameter value.
func (p Params) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// Has reports whether the parameter is set to a non-nil value.
func (p Params) Has(name string) bool {
	v, ok := p[name]
	return ok && v != nil
}

// Clone returns a shallow copy of the parameters.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Bool reads a boolean parameter, returning def when it is absent.
func (p Params) Bool(name string, def bool) (bool, error) {
	if !p.Has(name) {
		return def, nil
	}

	switch v := p[name].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def, paramError(name, v)
		}
		return b, nil
	}

	if f, ok := toFloat(p[name]); ok {
		return f != 0, nil
	}

	return def, paramError(name, p[name])
}

// Int reads an integer parameter, returning def when it is absent.
func (p Params) Int(name string, def int) (int, error) {
	if !p.Has(name) {
		return def, nil
	}

	f, ok := toFloat(p[name])
	if !ok {
		if s, isString := p[name].(string); isString {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err == nil {
				return n, nil
			}
		}
		return def, paramError(name, p[name])
	}
	if f != math.Trunc(f) {
		return def, paramError(name, p[name])
	}

	return int(f), nil
}

// OptionalFloat reads a numeric parameter; nil means the parameter is absent.
func (p Params) OptionalFloat(name string) (*float64, error) {
	if !p.Has(name) {
		return nil, nil
	}

	if f, ok := toFloat(p[name]); ok {
		return &f, nil
	}
	if s, ok := p[name].(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &f, nil
		}
	}

	return nil, paramError(name, p[name])
}

// String reads a string parameter, returning def when it is absent.
func (p Params) String(name, def string) (string, error) {
	if !p.Has(name) {
		return def, nil
	}

	switch v := p[name].(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}

	if rv := reflect.ValueOf(p[name]); rv.Kind() == reflect.String {
		return rv.String(), nil
	}

	return def, paramError(name, p[name])
}

// Strings reads a list of strings. A single string is a one-element list.
func (p Params) Strings(name string, def []string) ([]string, error) {
	if !p.Has(name) {
		return def, nil
	}

	switch v := p[name].(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	}

	items, err := p.List(name)
	if err != nil {
		return def, err
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return def, paramError(name, p[name])
		}
		out = append(out, s)
	}

	return out, nil
}

// List reads any slice or array parameter as []any.
func (p Params) List(name string) ([]any, error) {
	if !p.Has(name) {
		return nil, nil
	}

	if v, ok := p[name].([]any); ok {
		return v, nil
	}

	rv := reflect.ValueOf(p[name])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, paramError(name, p[name])
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

// Messages reads a code to pattern table.
func (p Params) Messages(name string) (map[string]string, error) {
	if !p.Has(name) {
		return nil, nil
	}

	switch v := p[name].(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for code, pattern := range v {
			s, ok := pattern.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s must be a string, got %T", ErrInvalidParam, name, code, pattern)
			}
			out[code] = s
		}
		return out, nil
	}

	return nil, paramError(name, p[name])
}

// Specs reads a nested rule list. Entries may be Spec values or maps in the
// document form accepted by SpecFromMap.
func (p Params) Specs(name string) ([]Spec, error) {
	if !p.Has(name) {
		return nil, nil
	}

	if v, ok := p[name].([]Spec); ok {
		return v, nil
	}

	items, err := p.List(name)
	if err != nil {
		return nil, err
	}

	specs := make([]Spec, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case Spec:
			specs = append(specs, v)
		case map[string]any:
			spec, err := SpecFromMap(v)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
			}
			specs = append(specs, spec)
		default:
			return nil, fmt.Errorf("%w: %s[%d] has unsupported type %T", ErrInvalidParam, name, i, item)
		}
	}

	return specs, nil
}

func paramError(name string, value any) error {
	return fmt.Errorf("%w: %s has unsupported value %v (%T)", ErrInvalidParam, name, value, value)
}

// toFloat converts Go numeric kinds and json.Number to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}

	return 0, false
}
