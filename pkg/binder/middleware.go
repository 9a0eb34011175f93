package binder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/dmitrymomot/formguard/pkg/i18n"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// BindFunc turns a request into the Context to validate.
type BindFunc func(r *http.Request) (validator.Context, error)

// ErrorHandler writes the response for a request that could not be bound
// or whose rules are misconfigured.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// FieldError is one entry of the 422 response body.
type FieldError struct {
	Field   string         `json:"field"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Values  map[string]any `json:"values,omitempty"`
}

// ErrorResponse is the body written when validation fails.
type ErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type middlewareConfig struct {
	bind          BindFunc
	pathExtractor PathExtractor
	pathNames     []string
	catalog       *i18n.Catalog
	validatorOpts []validator.Option
	errorHandler  ErrorHandler
	logger        *slog.Logger
}

// Option configures Middleware.
type Option func(*middlewareConfig)

// WithBinder replaces Request as the source of the validated Context.
func WithBinder(fn BindFunc) Option {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.bind = fn
		}
	}
}

// WithPathParams adds the named route parameters to the Context. They win
// over query and body fields of the same name.
func WithPathParams(extractor PathExtractor, names ...string) Option {
	return func(c *middlewareConfig) {
		c.pathExtractor = extractor
		c.pathNames = names
	}
}

// WithCatalog renders messages in the request locale. The locale stored
// by i18n.Middleware is used when present, otherwise the one requested
// through the lang cookie, lang query parameter or Accept-Language.
func WithCatalog(catalog *i18n.Catalog) Option {
	return func(c *middlewareConfig) {
		c.catalog = catalog
	}
}

// WithValidatorOptions passes options to every validator the middleware
// creates.
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(c *middlewareConfig) {
		c.validatorOpts = append(c.validatorOpts, opts...)
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(c *middlewareConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware validates every request against rules. Failing requests get a
// 422 response with an ErrorResponse body; passing requests reach next with
// the validated Context available through Validated.
//
//	r := chi.NewRouter()
//	r.With(binder.Middleware(signupRules,
//		binder.WithPathParams(binder.ChiParams, "team"),
//		binder.WithCatalog(catalog),
//	)).Post("/teams/{team}/members", addMember)
func Middleware(rules []validator.Spec, opts ...Option) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		bind:         Request,
		errorHandler: DefaultErrorHandler,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger.With(logger.Component("binder"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			input, err := cfg.input(r)
			if err != nil {
				log.DebugContext(r.Context(), "failed to bind request",
					slog.String("path", r.URL.Path),
					logger.Error(err),
				)
				cfg.errorHandler(w, r, err)
				return
			}

			vopts := cfg.validatorOpts
			if cfg.catalog != nil {
				vopts = append(vopts[:len(vopts):len(vopts)], validator.WithMessages(cfg.messages(r)))
			}

			v := validator.New(input, rules, vopts...)
			ok, err := v.Validate()
			if err != nil {
				log.ErrorContext(r.Context(), "invalid validation rules",
					slog.String("path", r.URL.Path),
					logger.Error(err),
				)
				cfg.errorHandler(w, r, err)
				return
			}

			if !ok {
				log.DebugContext(r.Context(), "request rejected",
					slog.String("path", r.URL.Path),
					logger.ErrorCount(len(v.Errors())),
				)
				if cfg.catalog != nil {
					w.Header().Set("Content-Language", cfg.locale(r))
				}
				writeJSON(w, http.StatusUnprocessableEntity, newErrorResponse(v.ValidationErrors()))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithValidated(r.Context(), v.ValidatedContext())))
		})
	}
}

func (c *middlewareConfig) input(r *http.Request) (validator.Context, error) {
	input, err := c.bind(r)
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = validator.Context{}
	}

	if c.pathExtractor != nil {
		params, err := Path(r, c.pathExtractor, c.pathNames...)
		if err != nil {
			return nil, err
		}
		maps.Copy(input, params)
	}

	return input, nil
}

func (c *middlewareConfig) locale(r *http.Request) string {
	if locale, ok := i18n.LocaleFromContext(r.Context()); ok {
		return c.catalog.Match(locale)
	}
	return c.catalog.Match(i18n.DefaultLangExtractor()(r))
}

func (c *middlewareConfig) messages(r *http.Request) map[string]string {
	return c.catalog.Messages(c.locale(r))
}

func newErrorResponse(errs validator.ValidationErrors) ErrorResponse {
	resp := ErrorResponse{Errors: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, FieldError{
			Field:   e.Field,
			Message: e.Message,
			Code:    e.TranslationKey,
			Values:  e.TranslationValues,
		})
	}
	return resp
}

// DefaultErrorHandler maps binding errors to 400, 413 or 415 and anything
// else to 500, with a {"error": "..."} body.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// StatusCode returns the HTTP status matching a binding error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedMediaType), errors.Is(err, ErrMissingContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrFailedToParseJSON),
		errors.Is(err, ErrFailedToParseForm),
		errors.Is(err, ErrFailedToParseQuery),
		errors.Is(err, ErrFailedToParsePath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type validatedContextKey struct{}

// WithValidated stores a validated Context in ctx.
func WithValidated(ctx context.Context, validated validator.Context) context.Context {
	return context.WithValue(ctx, validatedContextKey{}, validated)
}

// Validated returns the Context stored by Middleware.
func Validated(ctx context.Context) (validator.Context, bool) {
	validated, ok := ctx.Value(validatedContextKey{}).(validator.Context)
	return validated, ok
}
