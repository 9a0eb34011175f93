package sanitizer

import "errors"

// ErrUnknownFilter is returned for filter names that are not registered.
var ErrUnknownFilter = errors.New("unknown sanitizer filter")
