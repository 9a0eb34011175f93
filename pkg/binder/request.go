package binder

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// Request merges the query string and the body into one Context. The body
// is decoded by content type (JSON, urlencoded or multipart form) and its
// fields win over query parameters of the same name. Requests without a
// body yield the query alone.
func Request(r *http.Request) (validator.Context, error) {
	ctx, err := Query(r)
	if err != nil {
		return nil, err
	}

	if !hasBody(r) {
		return ctx, nil
	}

	var body validator.Context
	switch mt := mediaType(r); {
	case mt == "":
		return nil, ErrMissingContentType
	case isJSONMediaType(mt):
		body, err = JSON(r)
	default:
		body, err = Form(r)
	}
	if err != nil {
		return nil, err
	}

	maps.Copy(ctx, body)
	return ctx, nil
}
