package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form reads an urlencoded or multipart body into a Context. A field sent
// once is a string, a repeated field is a []any of strings, so it can be
// checked with the array or collection rules. Uploaded files are stored as
// *multipart.FileHeader (or a []any of them) with sanitized file names.
//
// Query parameters are not included; see Request.
func Form(r *http.Request) (validator.Context, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: missing content-type header, expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	switch mt := mediaType(r); mt {
	case mediaForm:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return fromValues(r.PostForm), nil

	case mediaMultipart:
		_, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed content type with boundary", ErrFailedToParseForm)
		}
		if !validBoundary(params["boundary"]) {
			return nil, fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
		}

		// Request size limits are the server's concern.
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		if r.MultipartForm == nil {
			return validator.Context{}, nil
		}

		ctx := fromValues(r.MultipartForm.Value)
		for name, headers := range r.MultipartForm.File {
			ctx[name] = fileValue(headers)
		}
		return ctx, nil

	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mt)
	}
}

// Query reads the URL query into a Context with the same single or
// repeated value shape as Form.
func Query(r *http.Request) (validator.Context, error) {
	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}
	return fromValues(values), nil
}

func fromValues(values map[string][]string) validator.Context {
	ctx := make(validator.Context, len(values))
	for name, list := range values {
		switch len(list) {
		case 0:
		case 1:
			ctx[name] = list[0]
		default:
			items := make([]any, len(list))
			for i, v := range list {
				items[i] = v
			}
			ctx[name] = items
		}
	}
	return ctx
}

func fileValue(headers []*multipart.FileHeader) any {
	for _, fh := range headers {
		fh.Filename = sanitizeFilename(fh.Filename)
	}
	if len(headers) == 1 {
		return headers[0]
	}
	items := make([]any, len(headers))
	for i, fh := range headers {
		items[i] = fh
	}
	return items
}

// validBoundary follows RFC 2046: 1 to 70 characters from a restricted
// set, not ending with a space.
func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// sanitizeFilename drops directory components and null bytes from an
// uploaded file name.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
