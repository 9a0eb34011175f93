package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor returns the language requested by r: a tag, an
// Accept-Language header, or "" when the request does not say.
type LangExtractor func(r *http.Request) string

// ExtractorConfig names the request fields inspected by DefaultLangExtractor.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
}

type ExtractorOption func(*ExtractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// DefaultLangExtractor checks, in order, the "lang" cookie, the "lang"
// query parameter and the Accept-Language header.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	return func(r *http.Request) string {
		if cookie, err := r.Cookie(config.CookieName); err == nil {
			if lang := strings.TrimSpace(cookie.Value); lang != "" && len(lang) <= maxLangCodeLength {
				return lang
			}
		}

		if lang := strings.TrimSpace(r.URL.Query().Get(config.QueryParamName)); lang != "" && len(lang) <= maxLangCodeLength {
			return lang
		}

		return r.Header.Get("Accept-Language")
	}
}

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35
