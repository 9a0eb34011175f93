package i18n

import "errors"

// Context cancellation errors are kept apart so timeouts can be told from
// broken catalog files.
var (
	ErrParsingCancelled  = errors.New("catalog parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON catalog")
	ErrFailedToParseYAML = errors.New("failed to parse YAML catalog")
	ErrInvalidCatalog    = errors.New("invalid catalog structure")

	ErrLoadingCancelled     = errors.New("loading catalog cancelled")
	ErrFailedToReadFile     = errors.New("failed to read catalog file")
	ErrFailedToReadDir      = errors.New("failed to read catalog directory")
	ErrUnsupportedFormat    = errors.New("unsupported catalog format")
	ErrInvalidLocale        = errors.New("invalid locale")
	ErrDefaultLocaleMissing = errors.New("default locale has no messages")
)
