package i18n

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Parser reads a catalog document shaped as locale -> code -> pattern.
// Nested maps below a locale are flattened with dots, so
//
//	en:
//	  bic:
//	    length: "%key%: %value% has an invalid length"
//
// yields the code "bic.length".
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]string, error)

	// SupportsFileExtension accepts the extension with or without the
	// leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns the parser matching the file extension, or nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(getFileExtension(filename)) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

func getFileExtension(filename string) string {
	return strings.TrimPrefix(path.Ext(filename), ".")
}

func catalogFromDocument(doc map[string]any) (map[string]map[string]string, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: no locales found", ErrInvalidCatalog)
	}

	result := make(map[string]map[string]string, len(doc))
	for locale, value := range doc {
		messages, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: locale %q: expected map, got %T", ErrInvalidCatalog, locale, value)
		}
		flat := make(map[string]string, len(messages))
		if err := flatten(flat, "", messages); err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}
		result[locale] = flat
	}

	return result, nil
}

func flatten(dst map[string]string, prefix string, src map[string]any) error {
	for key, value := range src {
		code := key
		if prefix != "" {
			code = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			dst[code] = v
		case map[string]any:
			if err := flatten(dst, code, v); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s: expected string, got %T", ErrInvalidCatalog, code, value)
		}
	}
	return nil
}
