package validator

import "errors"

// Configuration errors. They describe a broken rule specification rather
// than bad input data, so they are returned as Go errors instead of being
// reported through rule messages.
var (
	// ErrUnknownKind is returned when a rule kind has no registered constructor.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrMissingParam is returned when a mandatory rule parameter is absent.
	ErrMissingParam = errors.New("missing rule parameter")

	// ErrInvalidParam is returned when a rule parameter has an unusable type or value.
	ErrInvalidParam = errors.New("invalid rule parameter")

	// ErrInvalidSpec is returned when a rule specification cannot be decoded.
	ErrInvalidSpec = errors.New("invalid rule specification")

	// ErrValidationFailed wraps ValidationErrors returned by Validator.Err.
	ErrValidationFailed = errors.New("validation failed")
)
