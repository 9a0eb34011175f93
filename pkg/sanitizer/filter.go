package sanitizer

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

var filters = map[string]func(string) string{
	"trim":                Trim,
	"lower":               ToLower,
	"upper":               ToUpper,
	"title":               ToTitle,
	"single_line":         SingleLine,
	"strip_html":          StripHTML,
	"collapse_whitespace": RemoveExtraWhitespace,
	"alphanumeric":        KeepAlphanumeric,
	"digits":              KeepDigits,
	"kebab":               ToKebabCase,
	"snake":               ToSnakeCase,
	"camel":               ToCamelCase,
	"invisible":           RemoveInvisibleChars,
}

// Filter returns the string transform registered under name. Names are
// case insensitive.
func Filter(name string) (func(string) string, error) {
	fn, ok := filters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return fn, nil
}

// Filters resolves several names at once, keeping their order.
func Filters(names ...string) ([]func(string) string, error) {
	out := make([]func(string) string, 0, len(names))
	for _, name := range names {
		fn, err := Filter(name)
		if err != nil {
			return nil, err
		}
		out = append(out, fn)
	}
	return out, nil
}

// FilterNames lists the registered filter names in lexical order.
func FilterNames() []string {
	return slices.Sorted(maps.Keys(filters))
}
