package rulespec

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// JSONParser reads JSON rule documents. Numbers are kept as json.Number,
// which every numeric rule parameter accepts.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content string) ([]validator.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	doc, err := validator.DecodeJSON(content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}

	return specsFromDocument(doc)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// encodeJSON is the inverse of JSONParser.Parse, used by RedisSource.Save.
func encodeJSON(specs []validator.Spec) ([]byte, error) {
	return json.Marshal(map[string]any{"rules": entriesOf(specs)})
}

func entriesOf(specs []validator.Spec) []map[string]any {
	entries := make([]map[string]any, 0, len(specs))
	for _, spec := range specs {
		entry := make(map[string]any, len(spec.Params)+2)
		for name, value := range spec.Params {
			if nested, ok := value.([]validator.Spec); ok {
				value = entriesOf(nested)
			}
			entry[name] = value
		}
		if spec.Key != "" {
			entry["key"] = spec.Key
		}
		entry["kind"] = string(spec.Kind)
		entries = append(entries, entry)
	}
	return entries
}
