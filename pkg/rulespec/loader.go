package rulespec

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

type options struct {
	registry *validator.Registry
}

// Option configures the loading functions.
type Option func(*options)

// WithRegistry checks loaded rules against reg instead of the default
// registry, which is needed when the document uses custom kinds.
func WithRegistry(reg *validator.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

func newOptions(opts []Option) options {
	o := options{registry: validator.DefaultRegistry()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadFile reads and checks the rule document at path. The format is
// picked from the file extension.
func LoadFile(ctx context.Context, path string, opts ...Option) ([]validator.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	return parseFile(ctx, path, content, newOptions(opts))
}

// LoadFS is LoadFile for a file inside fsys, such as an embed.FS.
func LoadFS(ctx context.Context, fsys fs.FS, path string, opts ...Option) ([]validator.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	return parseFile(ctx, path, content, newOptions(opts))
}

// Parse decodes and checks content with the given parser.
func Parse(ctx context.Context, parser Parser, content string, opts ...Option) ([]validator.Spec, error) {
	specs, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	return checked(specs, newOptions(opts))
}

func parseFile(ctx context.Context, path string, content []byte, o options) ([]validator.Spec, error) {
	parser := NewParserForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	specs, err := parser.Parse(ctx, string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return checked(specs, o)
}

func checked(specs []validator.Spec, o options) ([]validator.Spec, error) {
	if err := validator.CheckSpecs(o.registry, specs); err != nil {
		return nil, errors.Join(ErrInvalidRules, err)
	}
	return specs, nil
}
