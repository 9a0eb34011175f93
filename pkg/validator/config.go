package validator

import "github.com/dmitrymomot/formguard/pkg/config"

// Config holds the environment driven defaults of a Validator.
type Config struct {
	StopOnError        bool   `env:"VALIDATOR_STOP_ON_ERROR" envDefault:"false"`
	AppendExistingOnly bool   `env:"VALIDATOR_APPEND_EXISTING_ONLY" envDefault:"false"`
	ErrorSeparator     string `env:"VALIDATOR_ERROR_SEPARATOR" envDefault:"<br/>"`
	PatternCacheSize   int    `env:"VALIDATOR_REGEX_CACHE_SIZE" envDefault:"256"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the configuration into validator options. A pattern
// cache size other than the default gets a dedicated registry.
func (c Config) Options() []Option {
	opts := []Option{
		WithStopOnError(c.StopOnError),
		WithAppendExistingItemsOnly(c.AppendExistingOnly),
		WithErrorSeparator(c.ErrorSeparator),
	}
	if c.PatternCacheSize > 0 && c.PatternCacheSize != DefaultPatternCacheSize {
		opts = append(opts, WithRegistry(NewRegistry(WithPatternCacheSize(c.PatternCacheSize))))
	}
	return opts
}

// NewFromConfig creates a validator configured by cfg. Options passed in
// opts are applied last.
func NewFromConfig(cfg Config, ctx Context, rules []Spec, opts ...Option) *Validator {
	return New(ctx, rules, append(cfg.Options(), opts...)...)
}
