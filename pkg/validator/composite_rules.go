package validator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// MultipleAndRule passes when every nested rule passes. Nested rules share
// the key and value of the composite; the keys of their specs are ignored.
// The first failure is reported as is.
type MultipleAndRule struct {
	*Base
	rules []Rule
}

func newAndRule(key string, value any, params Params, reg *Registry) (Rule, error) {
	base, rules, err := buildNested(key, value, params, reg)
	if err != nil {
		return nil, err
	}
	return &MultipleAndRule{Base: base, rules: rules}, nil
}

func (r *MultipleAndRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	for _, rule := range r.rules {
		rule.SetValue(r.value)
		if rule.Validate() == StatusError {
			return r.adoptError(rule)
		}
	}

	return StatusValid
}

// MultipleOrRule passes as soon as one nested rule passes. When none does,
// the error lists every nested error, one per line, in declaration order,
// and carries the code of the last nested error.
type MultipleOrRule struct {
	*Base
	rules []Rule
}

func newOrRule(key string, value any, params Params, reg *Registry) (Rule, error) {
	base, rules, err := buildNested(key, value, params, reg)
	if err != nil {
		return nil, err
	}
	return &MultipleOrRule{Base: base, rules: rules}, nil
}

func (r *MultipleOrRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if len(r.rules) == 0 {
		return StatusValid
	}

	messages := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		rule.SetValue(r.value)
		if rule.Validate() == StatusValid {
			r.clearError()
			return StatusValid
		}
		messages = append(messages, rule.ErrorMessage())
	}

	// code and placeholders come from the last nested rule
	status := r.adoptError(r.rules[len(r.rules)-1])
	r.err = strings.Join(messages, "\n")

	return status
}

func buildNested(key string, value any, params Params, reg *Registry) (*Base, []Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, nil, err
	}
	specs, err := params.Specs(ParamRules)
	if err != nil {
		return nil, nil, err
	}

	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		spec.Key = key
		spec.Params = childParams(params, spec.Params)
		rule, err := reg.Build(spec, base.value)
		if err != nil {
			return nil, nil, err
		}
		rules = append(rules, rule)
	}

	return base, rules, nil
}

// CollectionRule applies a record schema to every element of a list or map
// of records. With the json option a string value is decoded first. On
// success the value becomes a new collection keeping the original indexes,
// where each record holds only the validated fields.
type CollectionRule struct {
	*Base
	rules  []Rule
	decode bool
}

func newCollectionRule(key string, value any, params Params, reg *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	base.SetEmptyFunc(IsCollectionEmpty)

	decode, err := params.Bool(ParamJSON, false)
	if err != nil {
		return nil, err
	}
	specs, err := params.Specs(ParamRules)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		if spec.Key == "" {
			return nil, fmt.Errorf("%w: %s[%d] has no key", ErrInvalidSpec, ParamRules, i)
		}
		spec.Params = childParams(params, spec.Params)
		rule, err := reg.Build(spec, nil)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return &CollectionRule{Base: base, rules: rules, decode: decode}, nil
}

func (r *CollectionRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if len(r.rules) == 0 {
		return StatusValid
	}

	collection := r.value
	if s, ok := collection.(string); ok && r.decode {
		doc, err := DecodeJSON(s)
		if err != nil {
			return r.SetAndReturnError(CodeInvalidCollection, nil)
		}
		collection = doc
	}

	keys, records, ok := recordsOf(collection)
	if !ok {
		return r.SetAndReturnError(CodeInvalidCollection, nil)
	}

	validated := make([]map[string]any, len(records))
	for i := range validated {
		validated[i] = make(map[string]any, len(r.rules))
	}

	for _, rule := range r.rules {
		for i, record := range records {
			field, _ := lookupField(record, rule.Key())
			rule.SetValue(field)
			if rule.Validate() == StatusError {
				return r.adoptError(rule)
			}
			validated[i][rule.Key()] = rule.Value()
		}
	}

	if keys == nil {
		out := make([]any, len(validated))
		for i, record := range validated {
			out[i] = record
		}
		r.value = out
		return StatusValid
	}

	out := make(map[string]any, len(validated))
	for i, record := range validated {
		out[keys[i]] = record
	}
	r.value = out

	return StatusValid
}

// Value returns an empty list when the value is falsy and no error
// occurred. Empty lists and maps are returned as they are.
func (r *CollectionRule) Value() any {
	if r.err != "" || !isFalsy(r.value) || isNonNilCollection(r.value) {
		return r.value
	}
	return []any{}
}

func isNonNilCollection(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return !rv.IsNil()
	case reflect.Array:
		return true
	}
	return false
}

// recordsOf lists the records of a slice, array or map. keys is nil for
// positional collections and holds the sorted map keys otherwise.
func recordsOf(v any) (keys []string, records []any, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		records = make([]any, rv.Len())
		for i := range rv.Len() {
			records[i] = rv.Index(i).Interface()
		}
		return nil, records, true
	case reflect.Map:
		keys = make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			name := Stringify(k.Interface())
			byKey[name] = rv.MapIndex(k)
			keys = append(keys, name)
		}
		slices.Sort(keys)
		records = make([]any, len(keys))
		for i, k := range keys {
			records[i] = byKey[k].Interface()
		}
		return keys, records, true
	}
	return nil, nil, false
}

// lookupField reads a field of a record held in a map, a Context, or a
// list addressed by its decimal index.
func lookupField(record any, key string) (any, bool) {
	switch rec := record.(type) {
	case map[string]any:
		v, ok := rec[key]
		return v, ok
	case Context:
		return rec.Lookup(key)
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(rec) {
			return nil, false
		}
		return rec[i], true
	case json.RawMessage:
		doc, err := DecodeJSON(string(rec))
		if err != nil {
			return nil, false
		}
		return lookupField(doc, key)
	}

	rv := reflect.ValueOf(record)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	}

	return nil, false
}
