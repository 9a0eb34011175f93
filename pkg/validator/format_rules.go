package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MatchRule checks the value against a regular expression.
type MatchRule struct {
	*Base
	pattern string
	re      *regexp.Regexp
}

func newMatchRule(key string, value any, params Params, reg *Registry) (Rule, error) {
	if !params.Has(ParamPattern) {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, ParamPattern)
	}
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	pattern, err := params.String(ParamPattern, "")
	if err != nil {
		return nil, err
	}
	re, err := reg.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return &MatchRule{Base: base, pattern: pattern, re: re}, nil
}

func (r *MatchRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if !r.re.MatchString(Stringify(r.value)) {
		return r.SetAndReturnError(CodeInvalidPattern, map[string]string{
			"%pattern%": r.pattern,
		})
	}

	return StatusValid
}

// EmailRule checks for a bare RFC 5322 address with a dotted domain.
type EmailRule struct {
	*Base
}

func newEmailRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	return &EmailRule{Base: base}, nil
}

func (r *EmailRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	s, ok := r.value.(string)
	if !ok || !IsEmail(s) {
		return r.SetAndReturnError(CodeInvalidEmail, nil)
	}

	return StatusValid
}

// IsEmail reports whether s is a bare e-mail address such as
// "user@example.com". Display names and angle brackets are rejected.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}

	local, domain, found := strings.Cut(addr.Address, "@")
	if !found || local == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}

// JSONRule checks that a string holds a non-null JSON document. With decode
// enabled the value is replaced by the decoded document, numbers kept as
// json.Number.
type JSONRule struct {
	*Base
	decode bool
}

func newJSONRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	decode, err := params.Bool(ParamDecode, false)
	if err != nil {
		return nil, err
	}
	return &JSONRule{Base: base, decode: decode}, nil
}

func (r *JSONRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	s, ok := r.value.(string)
	if !ok {
		return r.SetAndReturnError(CodeInvalidJSON, nil)
	}

	doc, err := DecodeJSON(s)
	if err != nil || doc == nil {
		return r.SetAndReturnError(CodeInvalidJSON, nil)
	}

	if r.decode {
		r.value = doc
	}

	return StatusValid
}

// Value returns an empty list for an empty value when decode is enabled.
func (r *JSONRule) Value() any {
	if r.decode && r.err == "" && r.IsEmpty() {
		return []any{}
	}
	return r.value
}

var errTrailingData = errors.New("unexpected data after JSON document")

// DecodeJSON decodes a single JSON document keeping numbers as json.Number.
func DecodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, errTrailingData
	}

	return doc, nil
}

// UUIDRule checks for a canonical 36 character UUID, optionally of a given
// version.
type UUIDRule struct {
	*Base
	version int
}

func newUUIDRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	version, err := params.Int(ParamVersion, 0)
	if err != nil {
		return nil, err
	}
	if version < 0 || version > 8 {
		return nil, fmt.Errorf("%w: %s must be between 1 and 8", ErrInvalidParam, ParamVersion)
	}
	return &UUIDRule{Base: base, version: version}, nil
}

func (r *UUIDRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	s, ok := r.value.(string)
	if !ok || len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return r.SetAndReturnError(CodeInvalidUUID, nil)
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return r.SetAndReturnError(CodeInvalidUUID, nil)
	}

	if r.version != 0 && id.Version() != uuid.Version(r.version) {
		return r.SetAndReturnError(CodeInvalidUUIDVersion, map[string]string{
			"%version%": fmt.Sprint(r.version),
		})
	}

	return StatusValid
}

// BICRule checks a bank identifier code. Spaces and dashes are removed
// from the value before the checks, which run in a fixed order: length,
// case, characters, bank code, country code.
type BICRule struct {
	*Base
}

func newBICRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	return &BICRule{Base: base}, nil
}

var bicStripper = strings.NewReplacer(" ", "", "-", "")

func (r *BICRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	bic := bicStripper.Replace(Stringify(r.value))
	r.value = bic

	switch {
	case len(bic) != 8 && len(bic) != 11:
		return r.SetAndReturnError(CodeInvalidBicLength, nil)
	case strings.ToUpper(bic) != bic:
		return r.SetAndReturnError(CodeInvalidBicUpper, nil)
	case !allBytes(bic, isAlnum):
		return r.SetAndReturnError(CodeInvalidBicAlnum, nil)
	case !allBytes(bic[:4], isAlpha):
		return r.SetAndReturnError(CodeInvalidBicBankCode, nil)
	case !allBytes(bic[4:6], isAlpha):
		return r.SetAndReturnError(CodeInvalidBicCountryCode, nil)
	}

	return StatusValid
}

func allBytes(s string, fn func(byte) bool) bool {
	return bytes.IndexFunc([]byte(s), func(r rune) bool { return r > 0x7f || !fn(byte(r)) }) == -1
}
