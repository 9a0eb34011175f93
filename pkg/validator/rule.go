package validator

import (
	"maps"
	"reflect"
	"strings"
)

// Rule is the contract every rule kind implements.
//
// Validate runs the shared empty/required checks first; concrete rules only
// apply their own check when the shared step returns StatusCheck.
type Rule interface {
	Key() string
	Value() any
	ErrorMessage() string
	SetValue(value any)
	Validate() Status
}

// Coded is implemented by rules that expose the code and placeholders of
// their last error. Base implements it.
type Coded interface {
	Code() string
	Placeholders() map[string]string
}

// trimCutset matches the characters stripped from textual values.
const trimCutset = " \t\n\r\x00\x0B"

// Base implements the shared part of the rule protocol. Concrete rules
// embed *Base and call its Validate before their own check.
type Base struct {
	key          string
	input        any
	value        any
	err          string
	code         string
	placeholders map[string]string
	required     bool
	trim         bool
	messages     map[string]string
	isEmpty      func(any) bool
}

// NewBase reads the universal parameters (required, trim, messages) and
// binds value to key. Scalar emptiness is used until SetEmptyFunc says
// otherwise.
func NewBase(key string, value any, params Params) (*Base, error) {
	required, err := params.Bool(ParamRequired, false)
	if err != nil {
		return nil, err
	}
	trim, err := params.Bool(ParamTrim, true)
	if err != nil {
		return nil, err
	}
	fallback, err := params.Messages(ParamFallbackMessages)
	if err != nil {
		return nil, err
	}
	overrides, err := params.Messages(ParamMessages)
	if err != nil {
		return nil, err
	}

	messages := maps.Clone(defaultMessages)
	maps.Copy(messages, fallback)
	maps.Copy(messages, overrides)

	b := &Base{
		key:      key,
		required: required,
		trim:     trim,
		messages: messages,
		isEmpty:  IsScalarEmpty,
	}
	b.SetValue(value)

	return b, nil
}

// SetEmptyFunc replaces the emptiness predicate.
func (b *Base) SetEmptyFunc(fn func(any) bool) {
	if fn != nil {
		b.isEmpty = fn
	}
}

func (b *Base) Key() string { return b.key }

func (b *Base) Value() any { return b.value }

func (b *Base) ErrorMessage() string { return b.err }

func (b *Base) Code() string { return b.code }

func (b *Base) Placeholders() map[string]string { return b.placeholders }

// Required reports whether an empty value is an error.
func (b *Base) Required() bool { return b.required }

// Messages returns the merged message table of the rule.
func (b *Base) Messages() map[string]string { return b.messages }

// SetValue rebinds the rule to a new value, trimming strings when enabled.
// Every Validate starts over from this value, so rules that cast or decode
// the value give the same outcome when validated again.
func (b *Base) SetValue(value any) {
	if s, ok := value.(string); ok && b.trim {
		value = strings.Trim(s, trimCutset)
	}
	b.input = value
	b.value = value
}

// IsEmpty applies the rule's emptiness predicate to the current value.
func (b *Base) IsEmpty() bool {
	return b.isEmpty(b.value)
}

// Validate clears the previous error and applies the empty/required checks.
func (b *Base) Validate() Status {
	b.value = b.input
	b.clearError()

	if !b.IsEmpty() {
		return StatusCheck
	}

	if b.required {
		return b.SetAndReturnError(CodeEmptyKey, nil)
	}

	return StatusValid
}

// SetAndReturnError renders the message registered for code and stores it
// as the rule error. Unknown codes fall back to CodeUndefined.
func (b *Base) SetAndReturnError(code string, placeholders map[string]string) Status {
	pattern, ok := b.messages[code]
	if !ok {
		pattern = b.messages[CodeUndefined]
	}

	values := make(map[string]string, len(placeholders)+3)
	maps.Copy(values, placeholders)
	values["%key%"] = b.key
	values["%value%"] = Stringify(b.value)
	values["%code%"] = code

	b.err = Render(pattern, values)
	b.code = code
	b.placeholders = values

	return StatusError
}

// adoptError copies the error of a nested rule verbatim.
func (b *Base) adoptError(r Rule) Status {
	b.err = r.ErrorMessage()
	b.code = ""
	b.placeholders = nil
	if c, ok := r.(Coded); ok {
		b.code = c.Code()
		b.placeholders = c.Placeholders()
	}
	return StatusError
}

func (b *Base) clearError() {
	b.err = ""
	b.code = ""
	b.placeholders = nil
}

// childParams prepares the parameters of a nested rule so it inherits the
// fallback messages handed to this rule.
func childParams(parent, child Params) Params {
	fallback, ok := parent[ParamFallbackMessages]
	if !ok || fallback == nil {
		return child
	}

	p := child.Clone()
	if !p.Has(ParamFallbackMessages) {
		p[ParamFallbackMessages] = fallback
	}
	return p
}

// IsScalarEmpty treats nil and the empty string as empty.
func IsScalarEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// IsCollectionEmpty treats nil, empty slices, arrays and maps as empty.
func IsCollectionEmpty(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}

	return false
}

// isFalsy follows loose truthiness: nil, false, zero numbers, "", "0" and
// empty collections are falsy.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == "" || x == "0"
	}

	if f, ok := toFloat(v); ok {
		return f == 0
	}

	return IsCollectionEmpty(v)
}
