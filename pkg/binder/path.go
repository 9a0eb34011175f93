package binder

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// PathExtractor returns the value of a named route parameter, or "".
type PathExtractor func(r *http.Request, name string) string

// ChiParams reads route parameters from a chi router.
var ChiParams PathExtractor = chi.URLParam

// Path reads the named route parameters into a Context. Parameters the
// extractor does not know are left out, so rules see them as missing.
//
// Example with chi:
//
//	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
//		input, err := binder.Path(r, binder.ChiParams, "id")
//		...
//	})
//
// Any router works through a custom extractor:
//
//	muxExtractor := func(r *http.Request, name string) string {
//		return mux.Vars(r)[name]
//	}
func Path(r *http.Request, extractor PathExtractor, names ...string) (validator.Context, error) {
	if extractor == nil {
		return nil, fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
	}

	ctx := make(validator.Context, len(names))
	for _, name := range names {
		if value := extractor(r, name); value != "" {
			ctx[name] = value
		}
	}
	return ctx, nil
}

// ChiPath reads every parameter of the chi route matched by r.
func ChiPath(r *http.Request) validator.Context {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return validator.Context{}
	}

	ctx := make(validator.Context, len(rctx.URLParams.Keys))
	for i, name := range rctx.URLParams.Keys {
		if name == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		if value := rctx.URLParams.Values[i]; value != "" {
			ctx[name] = value
		}
	}
	return ctx
}
