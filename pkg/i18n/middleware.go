package i18n

import "net/http"

// Middleware negotiates the request locale against catalog and stores it
// in the request context, where GetLocale finds it. A nil extractor means
// DefaultLangExtractor.
func Middleware(catalog *Catalog, extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := catalog.Match(extr(r))
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), locale)))
		})
	}
}
