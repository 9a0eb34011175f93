package validator

import (
	"fmt"
	"strconv"
)

// Kind identifies a rule implementation in a Registry.
type Kind string

// Built-in rule kinds.
const (
	KindString        Kind = "string"
	KindStringCleaner Kind = "string_cleaner"
	KindNumeric       Kind = "numeric"
	KindBoolean       Kind = "boolean"
	KindArray         Kind = "array"
	KindRange         Kind = "range"
	KindChoices       Kind = "choices"
	KindMatch         Kind = "match"
	KindEmail         Kind = "email"
	KindIP            Kind = "ip"
	KindJSON          Kind = "json"
	KindDate          Kind = "date"
	KindTime          Kind = "time"
	KindBIC           Kind = "bic"
	KindCompare       Kind = "compare"
	KindCallable      Kind = "callable"
	KindUUID          Kind = "uuid"
	KindAnd           Kind = "and"
	KindOr            Kind = "or"
	KindCollection    Kind = "collection"
)

// Spec binds a rule kind and its parameters to a context key.
type Spec struct {
	Key    string
	Kind   Kind
	Params Params
}

// SpecFromMap decodes the document form of a rule specification:
//
//	{key: "age", kind: "numeric", min: 18, required: true}
//
// Every field other than key and kind becomes a parameter. Nested "rules"
// lists are decoded recursively when the rule is built.
func SpecFromMap(m map[string]any) (Spec, error) {
	var spec Spec

	kind, ok := m["kind"].(string)
	if !ok || kind == "" {
		return spec, fmt.Errorf("%w: kind must be a non-empty string, got %v", ErrInvalidSpec, m["kind"])
	}
	spec.Kind = Kind(kind)

	switch key := m["key"].(type) {
	case nil:
	case string:
		spec.Key = key
	case int:
		spec.Key = strconv.Itoa(key)
	default:
		return spec, fmt.Errorf("%w: key must be a string, got %T", ErrInvalidSpec, key)
	}

	spec.Params = make(Params, len(m))
	for name, value := range m {
		if name == "key" || name == "kind" {
			continue
		}
		spec.Params[name] = value
	}

	return spec, nil
}

// Context maps keys to the raw values being validated.
type Context map[string]any

// ContextFromSlice builds a positional context keyed by decimal indexes.
func ContextFromSlice(values []any) Context {
	ctx := make(Context, len(values))
	for i, v := range values {
		ctx[strconv.Itoa(i)] = v
	}
	return ctx
}

// Lookup returns the value stored under key and whether it is present.
func (c Context) Lookup(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}
