package rulespec

import (
	"context"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// YAMLParser reads YAML rule documents.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content string) ([]validator.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc any
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	return specsFromDocument(doc)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
