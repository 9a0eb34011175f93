package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestMatchRule(t *testing.T) {
	runRuleCases(t, validator.KindMatch, "name", []ruleCase{
		{name: "delimited pattern with modifier", value: "ABC", params: validator.Params{"pattern": "/^[a-z]+$/i"}, status: validator.StatusValid},
		{name: "plain pattern", value: "abc", params: validator.Params{"pattern": "^[a-z]+$"}, status: validator.StatusValid},
		{name: "alternative delimiter", value: "a/b", params: validator.Params{"pattern": "#^a/b$#"}, status: validator.StatusValid},
		{name: "numbers are matched as text", value: 123, params: validator.Params{"pattern": `/^\d+$/`}, status: validator.StatusValid},
		{name: "no match", value: "abc1", params: validator.Params{"pattern": "/^[a-z]+$/i"}, status: validator.StatusError, err: "name: abc1 does not match /^[a-z]+$/i"},
		{name: "empty and optional", value: "", params: validator.Params{"pattern": "/^x$/"}, status: validator.StatusValid},
	})
}

func TestMatchRule_BrokenPatterns(t *testing.T) {
	reg := validator.NewRegistry()

	_, err := reg.Build(validator.Spec{Key: "name", Kind: validator.KindMatch}, "x")
	assert.ErrorIs(t, err, validator.ErrMissingParam)

	_, err = reg.Build(validator.Spec{Key: "name", Kind: validator.KindMatch, Params: validator.Params{"pattern": "/[/"}}, "x")
	assert.ErrorIs(t, err, validator.ErrInvalidParam)

	_, err = reg.Build(validator.Spec{Key: "name", Kind: validator.KindMatch, Params: validator.Params{"pattern": "/x/e"}}, "x")
	assert.ErrorIs(t, err, validator.ErrInvalidParam)
}

func TestEmailRule(t *testing.T) {
	runRuleCases(t, validator.KindEmail, "email", []ruleCase{
		{name: "plain address", value: "elie29@gmail.com", status: validator.StatusValid},
		{name: "subdomain and plus", value: "first.last+tag@mail.example.org", status: validator.StatusValid},
		{name: "no at sign", value: "elie.com", status: validator.StatusError, err: "email: elie.com is not a valid email"},
		{name: "display name", value: "Elie <elie@gmail.com>", status: validator.StatusError, err: "email: Elie <elie@gmail.com> is not a valid email"},
		{name: "undotted domain", value: "root@localhost", status: validator.StatusError, err: "email: root@localhost is not a valid email"},
		{name: "empty label", value: "a@b..com", status: validator.StatusError, err: "email: a@b..com is not a valid email"},
		{name: "not a string", value: 42, status: validator.StatusError, err: "email: 42 is not a valid email"},
	})
}

func TestIsEmail(t *testing.T) {
	assert.True(t, validator.IsEmail("user@example.com"))
	assert.False(t, validator.IsEmail("user@.example.com"))
	assert.False(t, validator.IsEmail("@example.com"))
	assert.False(t, validator.IsEmail(" user@example.com"))
}

func TestJSONRule(t *testing.T) {
	runRuleCases(t, validator.KindJSON, "json", []ruleCase{
		{name: "object", value: `{"a":1,"b":[true,null],"c":"x"}`, status: validator.StatusValid},
		{name: "list", value: `[1, 2]`, status: validator.StatusValid},
		{name: "bare text", value: "elie.com", status: validator.StatusError, err: "json: elie.com is not a valid json format"},
		{name: "null document", value: "null", status: validator.StatusError, err: "json: null is not a valid json format"},
		{name: "trailing data", value: `{"a":1} {}`, status: validator.StatusError, err: `json: {"a":1} {} is not a valid json format`},
		{name: "not a string", value: []any{1}, status: validator.StatusError, err: "json: array (  0 => 1,) is not a valid json format"},
	})
}

func TestJSONRule_Decode(t *testing.T) {
	t.Run("replaces the value with the document", func(t *testing.T) {
		rule := build(t, validator.KindJSON, "json", `{"a":1,"b":"x"}`, validator.Params{"decode": true})
		require.Equal(t, validator.StatusValid, rule.Validate())
		assert.Equal(t, map[string]any{"a": json.Number("1"), "b": "x"}, rule.Value())
	})

	t.Run("empty value decodes to an empty list", func(t *testing.T) {
		rule := build(t, validator.KindJSON, "json", "", validator.Params{"decode": true})
		require.Equal(t, validator.StatusValid, rule.Validate())
		assert.Equal(t, []any{}, rule.Value())
	})

	t.Run("keeps the text without decode", func(t *testing.T) {
		rule := build(t, validator.KindJSON, "json", `[1]`, nil)
		require.Equal(t, validator.StatusValid, rule.Validate())
		assert.Equal(t, `[1]`, rule.Value())
	})
}

func TestDecodeJSON(t *testing.T) {
	doc, err := validator.DecodeJSON(`[1.5, "a"]`)
	require.NoError(t, err)
	assert.Equal(t, []any{json.Number("1.5"), "a"}, doc)

	_, err = validator.DecodeJSON(`[1`)
	assert.Error(t, err)
}

func TestUUIDRule(t *testing.T) {
	v4 := uuid.New().String()
	v7 := uuid.Must(uuid.NewV7()).String()

	runRuleCases(t, validator.KindUUID, "id", []ruleCase{
		{name: "any version", value: v4, status: validator.StatusValid},
		{name: "upper case", value: "F47AC10B-58CC-4372-A567-0E02B2C3D479", status: validator.StatusValid},
		{name: "matching version", value: v7, params: validator.Params{"version": 7}, status: validator.StatusValid},
		{name: "other version", value: v4, params: validator.Params{"version": 7}, status: validator.StatusError, err: "id: " + v4 + " is not a version 7 UUID"},
		{name: "braced form", value: "{f47ac10b-58cc-4372-a567-0e02b2c3d479}", status: validator.StatusError, err: "id: {f47ac10b-58cc-4372-a567-0e02b2c3d479} is not a valid UUID"},
		{name: "without hyphens", value: "f47ac10b58cc4372a5670e02b2c3d479", status: validator.StatusError, err: "id: f47ac10b58cc4372a5670e02b2c3d479 is not a valid UUID"},
		{name: "bad hex", value: "g47ac10b-58cc-4372-a567-0e02b2c3d479", status: validator.StatusError, err: "id: g47ac10b-58cc-4372-a567-0e02b2c3d479 is not a valid UUID"},
	})
}

func TestUUIDRule_InvalidVersion(t *testing.T) {
	_, err := validator.DefaultRegistry().Build(validator.Spec{Key: "id", Kind: validator.KindUUID, Params: validator.Params{"version": 9}}, "x")
	assert.ErrorIs(t, err, validator.ErrInvalidParam)
}

func TestBICRule(t *testing.T) {
	t.Run("valid codes", func(t *testing.T) {
		for _, bic := range []string{"ASPKAT2LXXX", "ASPKAT2L", "DSBACNBXSHA", "UNCRIT2B912", "DABADKKK", "RZOOAT2L303"} {
			rule := build(t, validator.KindBIC, "name", bic, nil)
			assert.Equal(t, validator.StatusValid, rule.Validate(), bic)
		}
	})

	t.Run("separators are removed from the value", func(t *testing.T) {
		rule := build(t, validator.KindBIC, "name", "ASPK AT-2L XXX", nil)
		assert.Equal(t, validator.StatusValid, rule.Validate())
		assert.Equal(t, "ASPKAT2LXXX", rule.Value())
	})

	runRuleCases(t, validator.KindBIC, "name", []ruleCase{
		{name: "ten characters", value: "ASPKAT2LXX", status: validator.StatusError, err: "name: ASPKAT2LXX has an invalid length"},
		{name: "nine characters", value: "ASPKAT2LX", status: validator.StatusError, err: "name: ASPKAT2LX has an invalid length"},
		{name: "twelve characters", value: "ASPKAT2LXXX1", status: validator.StatusError, err: "name: ASPKAT2LXXX1 has an invalid length"},
		{name: "seven characters", value: "DABADKK", status: validator.StatusError, err: "name: DABADKK has an invalid length"},
		{name: "lower case", value: "Dsba5nbxshA", status: validator.StatusError, err: "name: Dsba5nbxshA should be uppercase"},
		{name: "punctuation", value: "ASPKAT2L.XX", status: validator.StatusError, err: "name: ASPKAT2L.XX should be alphanumeric"},
		{name: "digits in bank code", value: "RZ00AT2L303", status: validator.StatusError, err: "name: RZ00AT2L303 has an invalid bank code"},
		{name: "leading digit", value: "1SBACNBXSHA", status: validator.StatusError, err: "name: 1SBACNBXSHA has an invalid bank code"},
		{name: "digit in country code", value: "DSBA5NBXSHA", status: validator.StatusError, err: "name: DSBA5NBXSHA has an invalid country code"},
	})
}
