package validator

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/cache"
)

// DefaultPatternCacheSize is the number of compiled patterns a Registry keeps.
const DefaultPatternCacheSize = 256

// Constructor builds a rule bound to key and value. The registry is passed
// so composite rules can build their sub-rules.
type Constructor func(key string, value any, params Params, reg *Registry) (Rule, error)

// Registry resolves rule kinds to constructors. It is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	constructors map[Kind]Constructor
	patterns     *cache.LRU[string, *regexp.Regexp]
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPatternCacheSize sets how many compiled patterns are memoized.
// Non-positive sizes are ignored.
func WithPatternCacheSize(size int) RegistryOption {
	return func(r *Registry) {
		if size > 0 {
			r.patterns = cache.NewLRU[string, *regexp.Regexp](size)
		}
	}
}

// NewRegistry creates a registry preloaded with the built-in rule kinds.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		constructors: map[Kind]Constructor{
			KindString:        newStringRule,
			KindStringCleaner: newStringCleanerRule,
			KindNumeric:       newNumericRule,
			KindBoolean:       newBooleanRule,
			KindArray:         newArrayRule,
			KindRange:         newRangeRule,
			KindChoices:       newChoicesRule,
			KindMatch:         newMatchRule,
			KindEmail:         newEmailRule,
			KindIP:            newIPRule,
			KindJSON:          newJSONRule,
			KindDate:          newDateRule,
			KindTime:          newTimeRule,
			KindBIC:           newBICRule,
			KindCompare:       newCompareRule,
			KindCallable:      newCallableRule,
			KindUUID:          newUUIDRule,
			KindAnd:           newAndRule,
			KindOr:            newOrRule,
			KindCollection:    newCollectionRule,
		},
		patterns: cache.NewLRU[string, *regexp.Regexp](DefaultPatternCacheSize),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry { return NewRegistry() })

// DefaultRegistry returns the shared registry used when none is configured.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Register adds or replaces the constructor of a kind.
func (r *Registry) Register(kind Kind, c Constructor) {
	if kind == "" || c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[kind] = c
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.constructors))
}

// Build constructs the rule described by spec bound to value.
func (r *Registry) Build(spec Spec, value any) (Rule, error) {
	r.mu.RLock()
	construct, ok := r.constructors[spec.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (key %q)", ErrUnknownKind, spec.Kind, spec.Key)
	}

	params := spec.Params
	if params == nil {
		params = Params{}
	}

	rule, err := construct(spec.Key, value, params, r)
	if err != nil {
		return nil, fmt.Errorf("rule %q (%s): %w", spec.Key, spec.Kind, err)
	}

	return rule, nil
}

// Compile returns the compiled form of a pattern, memoized per registry.
// Delimited patterns such as "/^[a-z]+$/i" are converted to RE2 syntax.
func (r *Registry) Compile(pattern string) (*regexp.Regexp, error) {
	re, err := r.patterns.GetOrCompute(pattern, compilePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidParam, pattern, err)
	}
	return re, nil
}

// compileExpr is Compile for plain RE2 expressions that never carry
// delimiters, such as date separators.
func (r *Registry) compileExpr(expr string) (*regexp.Regexp, error) {
	re, err := r.patterns.GetOrCompute(rawPatternPrefix+expr, func(key string) (*regexp.Regexp, error) {
		return regexp.Compile(strings.TrimPrefix(key, rawPatternPrefix))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: expression %q: %v", ErrInvalidParam, expr, err)
	}
	return re, nil
}

const rawPatternPrefix = "\x00raw:"

// patternDelimiters are the accepted delimiters of the "/body/modifiers" form.
const patternDelimiters = "/#~!@%|`"

// compilePattern accepts either a plain RE2 expression or a delimited one
// with trailing modifiers (i, m, s, U, u, D).
func compilePattern(pattern string) (*regexp.Regexp, error) {
	body, flags, ok := splitDelimited(pattern)
	if !ok {
		return regexp.Compile(pattern)
	}

	var goFlags strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
			if !strings.ContainsRune(goFlags.String(), f) {
				goFlags.WriteRune(f)
			}
		case 'u', 'D':
			// already the RE2 behaviour
		default:
			return nil, fmt.Errorf("unsupported modifier %q", f)
		}
	}

	if goFlags.Len() > 0 {
		body = "(?" + goFlags.String() + ")" + body
	}

	return regexp.Compile(body)
}

func splitDelimited(pattern string) (body, flags string, ok bool) {
	if len(pattern) < 2 || !strings.ContainsRune(patternDelimiters, rune(pattern[0])) {
		return "", "", false
	}

	end := strings.LastIndexByte(pattern, pattern[0])
	if end <= 0 {
		return "", "", false
	}

	flags = pattern[end+1:]
	for i := range len(flags) {
		if !isAlpha(flags[i]) {
			return "", "", false
		}
	}

	return pattern[1:end], flags, true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
