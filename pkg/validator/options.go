package validator

import (
	"log/slog"
	"maps"
)

// Option configures a Validator.
type Option func(*Validator)

// WithStopOnError stops a pass at the first failing rule.
func WithStopOnError(stop bool) Option {
	return func(v *Validator) {
		v.stopOnError = stop
	}
}

// WithAppendExistingItemsOnly leaves keys that are missing from the context
// out of the validated context, even when their rules pass.
func WithAppendExistingItemsOnly(only bool) Option {
	return func(v *Validator) {
		v.appendExistingOnly = only
	}
}

// WithRegistry sets the registry used to build rules. A nil registry is
// ignored.
func WithRegistry(reg *Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.registry = reg
		}
	}
}

// WithMessages sets message patterns by error code for every rule. They
// override the built-in messages and are overridden by the "messages"
// parameter of a rule.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		v.messages = maps.Clone(messages)
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithErrorSeparator sets the default separator of ImplodedErrors.
func WithErrorSeparator(sep string) Option {
	return func(v *Validator) {
		v.separator = sep
	}
}
