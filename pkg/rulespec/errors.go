package rulespec

import "errors"

var (
	ErrParsingCancelled  = errors.New("rule document parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON rule document")
	ErrFailedToParseYAML = errors.New("failed to parse YAML rule document")
	ErrInvalidDocument   = errors.New("invalid rule document")
	ErrUnsupportedFormat = errors.New("unsupported rule document format")

	ErrLoadingCancelled = errors.New("loading rule document cancelled")
	ErrFailedToReadFile = errors.New("failed to read rule document")
	ErrInvalidRules     = errors.New("rule document contains invalid rules")

	ErrDocumentNotFound = errors.New("rule document not found")
	ErrFailedToFetch    = errors.New("failed to fetch rule document")
)
