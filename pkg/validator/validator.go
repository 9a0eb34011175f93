package validator

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// DefaultErrorSeparator joins messages in ImplodedErrors.
const DefaultErrorSeparator = "<br/>"

// Validator runs an ordered rule list against a Context.
//
// A Validator keeps the result of its last pass and is not safe for
// concurrent use. Rules are built fresh on every pass.
type Validator struct {
	ctx       Context
	rules     []Spec
	validated Context
	errors    []ValidationError

	stopOnError        bool
	appendExistingOnly bool
	registry           *Registry
	messages           map[string]string
	logger             *slog.Logger
	separator          string
}

// New creates a validator for the given context and rules.
func New(ctx Context, rules []Spec, opts ...Option) *Validator {
	v := &Validator{
		ctx:       ctx,
		rules:     rules,
		validated: Context{},
		registry:  DefaultRegistry(),
		logger:    slog.New(slog.DiscardHandler),
		separator: DefaultErrorSeparator,
	}
	if v.ctx == nil {
		v.ctx = Context{}
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate runs a fresh pass. It reports whether every rule passed. The
// error is non-nil only when a rule cannot be built; the pass stops there.
func (v *Validator) Validate() (bool, error) {
	return v.run(false)
}

// ValidateAndMerge runs a pass that keeps the values validated by earlier
// passes, which allows validating a context in stages with different rule
// lists.
func (v *Validator) ValidateAndMerge() (bool, error) {
	return v.run(true)
}

func (v *Validator) run(merge bool) (bool, error) {
	start := time.Now()
	v.errors = nil
	if !merge || v.validated == nil {
		v.validated = Context{}
	}

	for _, spec := range v.rules {
		value, exists := v.ctx.Lookup(spec.Key)

		rule, err := v.registry.Build(v.specWithMessages(spec), value)
		if err != nil {
			v.logger.Error("failed to build rule",
				logger.RuleKey(spec.Key),
				logger.RuleKind(string(spec.Kind)),
				logger.Error(err),
			)
			return false, err
		}

		if status := rule.Validate(); status == StatusError {
			v.errors = append(v.errors, newValidationError(rule))
			v.logger.Debug("rule failed",
				logger.RuleKey(spec.Key),
				logger.RuleKind(string(spec.Kind)),
				logger.Status(status.String()),
				slog.String("message", rule.ErrorMessage()),
			)
			if v.stopOnError {
				break
			}
			continue
		}

		if v.appendExistingOnly && !exists {
			continue
		}
		v.validated[spec.Key] = rule.Value()
	}

	v.logger.Debug("validation finished",
		slog.Int("rules", len(v.rules)),
		logger.ErrorCount(len(v.errors)),
		slog.Bool("merged", merge),
		logger.Duration(time.Since(start)),
	)

	return len(v.errors) == 0, nil
}

func (v *Validator) specWithMessages(spec Spec) Spec {
	if len(v.messages) == 0 {
		return spec
	}
	spec.Params = spec.Params.Clone()
	spec.Params[ParamFallbackMessages] = v.messages
	return spec
}

// Context returns the context being validated.
func (v *Validator) Context() Context { return v.ctx }

// SetContext replaces the context used by the next pass.
func (v *Validator) SetContext(ctx Context) *Validator {
	if ctx == nil {
		ctx = Context{}
	}
	v.ctx = ctx
	return v
}

// Rules returns the rule list.
func (v *Validator) Rules() []Spec { return v.rules }

// SetRules replaces the rule list used by the next pass.
func (v *Validator) SetRules(rules []Spec) *Validator {
	v.rules = rules
	return v
}

// AppendRule adds a rule at the end of the list.
func (v *Validator) AppendRule(spec Spec) *Validator {
	v.rules = append(v.rules, spec)
	return v
}

// Get returns the raw context value stored under key, whether or not it
// passed validation.
func (v *Validator) Get(key string) (any, bool) {
	return v.ctx.Lookup(key)
}

// Validated returns the value stored under key by the last pass. It is
// absent when the rule failed or no rule names the key.
func (v *Validator) Validated(key string) (any, bool) {
	value, ok := v.validated[key]
	return value, ok
}

// ValidatedContext returns the values of the rules that passed.
func (v *Validator) ValidatedContext() Context { return v.validated }

// Errors returns the error messages of the last pass in rule order.
func (v *Validator) Errors() []string {
	out := make([]string, len(v.errors))
	for i, e := range v.errors {
		out[i] = e.Message
	}
	return out
}

// ImplodedErrors joins the error messages with sep, or with the configured
// separator when sep is omitted.
func (v *Validator) ImplodedErrors(sep ...string) string {
	separator := v.separator
	if len(sep) > 0 {
		separator = sep[0]
	}
	return strings.Join(v.Errors(), separator)
}

// ValidationErrors returns the errors of the last pass with their codes
// and placeholder values.
func (v *Validator) ValidationErrors() ValidationErrors {
	return slices.Clone(ValidationErrors(v.errors))
}

// Err returns nil after a successful pass. Otherwise the returned error
// matches ErrValidationFailed and carries the ValidationErrors.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return errors.Join(ErrValidationFailed, v.ValidationErrors())
}

// ShouldStopOnError reports whether a pass stops at the first failure.
func (v *Validator) ShouldStopOnError() bool { return v.stopOnError }

// AppendExistingItemsOnly reports whether keys missing from the context
// are left out of the validated context.
func (v *Validator) AppendExistingItemsOnly() bool { return v.appendExistingOnly }

// Messages returns a copy of the messages configured with WithMessages.
func (v *Validator) Messages() map[string]string { return maps.Clone(v.messages) }
