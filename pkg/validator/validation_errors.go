package validator

import (
	"errors"
	"slices"
	"strings"
)

// ValidationError describes one failed rule. TranslationKey is the error
// code and TranslationValues holds the placeholder values without their
// percent signs, so the message can be rendered again in another language.
type ValidationError struct {
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"code,omitempty"`
	TranslationValues map[string]any `json:"values,omitempty"`
}

func newValidationError(r Rule) ValidationError {
	e := ValidationError{Field: r.Key(), Message: r.ErrorMessage()}

	coded, ok := r.(Coded)
	if !ok {
		return e
	}
	e.TranslationKey = coded.Code()

	placeholders := coded.Placeholders()
	if len(placeholders) == 0 {
		return e
	}
	e.TranslationValues = make(map[string]any, len(placeholders))
	for name, value := range placeholders {
		e.TranslationValues[strings.Trim(name, "%")] = value
	}
	return e
}

// ValidationErrors is the ordered list of failures of a validation pass.
// It implements error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, e := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (ve *ValidationErrors) Add(err ValidationError) { *ve = append(*ve, err) }

func (ve ValidationErrors) IsEmpty() bool { return len(ve) == 0 }

func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// GetErrors returns the failures of field in rule order.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the messages reported for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, e := range ve.GetErrors(field) {
		messages = append(messages, e.Message)
	}
	return messages
}

// Fields lists the failing fields in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	for _, e := range ve {
		if !slices.Contains(fields, e.Field) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// ByField groups the messages per field, the shape most form renderers
// expect.
func (ve ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if err != nil && errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
