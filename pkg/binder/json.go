package binder

import (
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSON decodes a JSON object body into a Context. Numbers are kept as
// json.Number so the numeric rules see the exact literal.
//
// Example:
//
//	input, err := binder.JSON(r)
//	if err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	v := validator.New(input, rules)
func JSON(r *http.Request) (validator.Context, error) {
	if err := r.Context().Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	mt := mediaType(r)
	if mt == "" {
		return nil, fmt.Errorf("%w: missing content-type header, expected application/json", ErrMissingContentType)
	}
	if !isJSONMediaType(mt) {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
	}

	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if len(body) > DefaultMaxJSONSize {
		return nil, fmt.Errorf("%w: max %d bytes", ErrRequestTooLarge, DefaultMaxJSONSize)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	doc, err := validator.DecodeJSON(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	object, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object, got %T", ErrFailedToParseJSON, doc)
	}

	return validator.Context(object), nil
}
