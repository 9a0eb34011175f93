// Package binder turns HTTP requests into validator contexts and validates
// them in a middleware.
//
// # Binders
//
// Each binder reads one part of the request into a validator.Context:
//
//   - JSON(r): a JSON object body, numbers kept as json.Number
//   - Form(r): urlencoded or multipart bodies, uploaded files included
//   - Query(r): the URL query string
//   - Path(r, extractor, names...): route parameters, e.g. with ChiParams
//   - Request(r): the query merged with the body decoded by content type
//
// Fields sent once are strings and repeated fields are []any, so the same
// rule list works for JSON and form submissions:
//
//	input, err := binder.Request(r)
//	if err != nil {
//		http.Error(w, err.Error(), binder.StatusCode(err))
//		return
//	}
//	v := validator.New(input, rules)
//
// # Middleware
//
// Middleware binds and validates every request. Failures are answered with
// 422 Unprocessable Entity and a body such as
//
//	{"errors": [{"field": "email", "message": "email: bob is not a valid email", "code": "invalidEmail"}]}
//
// Valid requests reach the next handler, which reads the validated values
// with Validated:
//
//	func createUser(w http.ResponseWriter, r *http.Request) {
//		input, _ := binder.Validated(r.Context())
//		email, _ := input["email"].(string)
//		...
//	}
//
// With WithCatalog, messages are rendered in the locale picked by
// i18n.Middleware or requested by the client.
//
// # Error Handling
//
// Binding failures wrap one of ErrUnsupportedMediaType, ErrMissingContentType,
// ErrRequestTooLarge, ErrFailedToParseJSON, ErrFailedToParseForm,
// ErrFailedToParseQuery or ErrFailedToParsePath. StatusCode maps them to
// HTTP status codes.
package binder
