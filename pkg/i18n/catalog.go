package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Catalog holds validator message tables per locale and picks the table
// that best matches a requested language. It is safe for concurrent use.
type Catalog struct {
	mu            sync.RWMutex
	messages      map[string]map[string]string
	defaultLocale string
	locales       []string
	matcher       language.Matcher
	logger        *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLocale sets the locale used when nothing matches. Its table
// also fills the codes missing from other locales.
func WithDefaultLocale(locale string) Option {
	return func(c *Catalog) {
		if tag, err := language.Parse(locale); err == nil {
			c.defaultLocale = tag.String()
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCatalog creates an empty catalog with DefaultLanguage as default locale.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		messages:      make(map[string]map[string]string),
		defaultLocale: DefaultLanguage,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rebuild()
	return c
}

// Add merges messages into the table of locale. Locales are canonicalized,
// so "EN-us" and "en-US" share one table.
func (c *Catalog) Add(locale string, messages map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: %q", ErrInvalidLocale, locale), err)
	}
	name := tag.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	table, ok := c.messages[name]
	if !ok {
		table = make(map[string]string, len(messages))
		c.messages[name] = table
	}
	maps.Copy(table, messages)
	c.rebuild()

	return nil
}

// AddAll adds every locale of a parsed catalog document.
func (c *Catalog) AddAll(catalog map[string]map[string]string) error {
	for _, locale := range slices.Sorted(maps.Keys(catalog)) {
		if err := c.Add(locale, catalog[locale]); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes content with parser and adds the result.
func (c *Catalog) Parse(ctx context.Context, parser Parser, content string) error {
	catalog, err := parser.Parse(ctx, content)
	if err != nil {
		return err
	}
	return c.AddAll(catalog)
}

// LoadFile adds the catalog file at path. The format is picked from the
// file extension.
func (c *Catalog) LoadFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrLoadingCancelled, err)
	}

	parser := NewParserForFile(path)
	if parser == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}

	if err := c.Parse(ctx, parser, string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	c.logger.DebugContext(ctx, "catalog file loaded", logger.Component("i18n"), slog.String("path", path))
	return nil
}

// LoadFS adds every JSON and YAML file found directly in dir, in name
// order. Other files are skipped.
func (c *Catalog) LoadFS(ctx context.Context, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return errors.Join(ErrFailedToReadDir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrLoadingCancelled, err)
		}
		if entry.IsDir() {
			continue
		}

		name := path.Join(dir, entry.Name())
		parser := NewParserForFile(name)
		if parser == nil {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.Join(ErrFailedToReadFile, err)
		}
		if err := c.Parse(ctx, parser, string(content)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	c.logger.DebugContext(ctx, "catalog directory loaded",
		logger.Component("i18n"),
		slog.String("dir", dir),
		slog.Any("locales", c.Locales()),
	)
	return nil
}

// Locales lists the locales with messages, default locale first.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.locales))
	for _, locale := range c.locales {
		if _, ok := c.messages[locale]; ok {
			out = append(out, locale)
		}
	}
	return out
}

func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Check reports ErrDefaultLocaleMissing when the default locale has no
// messages, in which case unmatched codes fall back to built-in messages.
func (c *Catalog) Check() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.messages[c.defaultLocale]) == 0 {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleMissing, c.defaultLocale)
	}
	return nil
}

// Match returns the supported locale closest to the requested languages.
// Each argument may be a single tag or a whole Accept-Language header;
// earlier arguments win over later ones of equal quality. The default
// locale is returned when nothing matches.
func (c *Catalog) Match(langs ...string) string {
	var desired []language.Tag
	for _, lang := range langs {
		desired = append(desired, ParseAcceptLanguage(lang)...)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(desired) == 0 {
		return c.defaultLocale
	}

	_, index, confidence := c.matcher.Match(desired...)
	if confidence == language.No {
		return c.defaultLocale
	}
	return c.locales[index]
}

// Messages returns the table of the locale matching langs, completed with
// the default locale's messages. The result is a copy and can be handed to
// validator.WithMessages.
func (c *Catalog) Messages(langs ...string) map[string]string {
	locale := c.Match(langs...)

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := maps.Clone(c.messages[c.defaultLocale])
	if out == nil {
		out = make(map[string]string)
	}
	if locale != c.defaultLocale {
		maps.Copy(out, c.messages[locale])
	}
	return out
}

// rebuild refreshes the matcher; the default locale always comes first so
// the matcher falls back to it. Callers hold the write lock or own c.
func (c *Catalog) rebuild() {
	others := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		if locale != c.defaultLocale {
			others = append(others, locale)
		}
	}
	slices.Sort(others)

	c.locales = append([]string{c.defaultLocale}, others...)
	tags := make([]language.Tag, len(c.locales))
	for i, locale := range c.locales {
		tags[i] = language.Make(locale)
	}
	c.matcher = language.NewMatcher(tags)
}
