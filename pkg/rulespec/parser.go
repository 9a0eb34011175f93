package rulespec

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/multierr"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// Parser turns the content of a rule document into a rule list.
type Parser interface {
	Parse(ctx context.Context, content string) ([]validator.Spec, error)

	// SupportsFileExtension accepts the extension with or without the
	// leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns the parser matching the file extension, or nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// specsFromDocument converts a decoded document into specs. Every broken
// entry is reported, not only the first one.
func specsFromDocument(doc any) ([]validator.Spec, error) {
	entries, err := documentEntries(doc)
	if err != nil {
		return nil, err
	}

	specs := make([]validator.Spec, 0, len(entries))
	var errs error
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: entry %d is a %T, expected a map", ErrInvalidDocument, i, entry))
			continue
		}
		spec, err := validator.SpecFromMap(m)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if spec.Key == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: entry %d has no key", ErrInvalidDocument, i))
			continue
		}
		specs = append(specs, spec)
	}
	if errs != nil {
		return nil, errs
	}

	return specs, nil
}

func documentEntries(doc any) ([]any, error) {
	switch d := doc.(type) {
	case []any:
		return d, nil
	case map[string]any:
		rules, ok := d["rules"]
		if !ok {
			return nil, fmt.Errorf("%w: missing rules list", ErrInvalidDocument)
		}
		list, ok := rules.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: rules must be a list, got %T", ErrInvalidDocument, rules)
		}
		return list, nil
	case nil:
		return nil, nil
	}

	return nil, fmt.Errorf("%w: expected a list or a map, got %T", ErrInvalidDocument, doc)
}
