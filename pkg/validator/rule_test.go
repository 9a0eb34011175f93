package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestBase_Validate(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		params validator.Params
		status validator.Status
		err    string
	}{
		{
			name:   "blank string is trimmed and valid when not required",
			value:  "  ",
			status: validator.StatusValid,
		},
		{
			name:   "single space is kept without trim",
			value:  " ",
			params: validator.Params{"trim": false, "required": true},
			status: validator.StatusCheck,
		},
		{
			name:   "false is not empty",
			value:  false,
			params: validator.Params{"required": true},
			status: validator.StatusCheck,
		},
		{
			name:   "zero is not empty",
			value:  0,
			params: validator.Params{"required": true},
			status: validator.StatusCheck,
		},
		{
			name:   "empty string fails when required",
			value:  "",
			params: validator.Params{"required": true},
			status: validator.StatusError,
			err:    "key is required and should not be empty: ",
		},
		{
			name:   "nil fails when required",
			value:  nil,
			params: validator.Params{"required": true},
			status: validator.StatusError,
			err:    "key is required and should not be empty: <NULL>",
		},
		{
			name:   "custom empty message",
			value:  nil,
			params: validator.Params{"required": true, "messages": map[string]string{"emptyKey": "%key% is missing"}},
			status: validator.StatusError,
			err:    "key is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := validator.NewBase("key", tt.value, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.status, base.Validate())
			assert.Equal(t, tt.err, base.ErrorMessage())
		})
	}
}

func TestBase_SetValue(t *testing.T) {
	t.Run("trims on construction and rebinding", func(t *testing.T) {
		base, err := validator.NewBase("key", " \x00value\t\n", nil)
		require.NoError(t, err)
		assert.Equal(t, "value", base.Value())

		base.SetValue("\x0Bother\r ")
		assert.Equal(t, "other", base.Value())
	})

	t.Run("keeps strings when trim is disabled", func(t *testing.T) {
		base, err := validator.NewBase("key", " value ", validator.Params{"trim": false})
		require.NoError(t, err)
		assert.Equal(t, " value ", base.Value())
	})

	t.Run("does not touch other types", func(t *testing.T) {
		base, err := validator.NewBase("key", []string{" a "}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{" a "}, base.Value())
	})
}

func TestBase_SetAndReturnError(t *testing.T) {
	t.Run("renders placeholders and records the code", func(t *testing.T) {
		base, err := validator.NewBase("age", "17", nil)
		require.NoError(t, err)

		status := base.SetAndReturnError(validator.CodeInvalidNumericLessThan, map[string]string{"%min%": "18"})
		assert.Equal(t, validator.StatusError, status)
		assert.Equal(t, "age: 17 is less than 18", base.ErrorMessage())
		assert.Equal(t, validator.CodeInvalidNumericLessThan, base.Code())
		assert.Equal(t, "18", base.Placeholders()["%min%"])
		assert.Equal(t, "age", base.Placeholders()["%key%"])
	})

	t.Run("unknown codes use the undefined message", func(t *testing.T) {
		base, err := validator.NewBase("age", "17", nil)
		require.NoError(t, err)

		base.SetAndReturnError("nope", nil)
		assert.Equal(t, "age: 17 has an undefined error code nope", base.ErrorMessage())
	})

	t.Run("next validation clears the error", func(t *testing.T) {
		base, err := validator.NewBase("age", "17", nil)
		require.NoError(t, err)

		base.SetAndReturnError(validator.CodeInvalidNumeric, nil)
		require.NotEmpty(t, base.ErrorMessage())

		assert.Equal(t, validator.StatusCheck, base.Validate())
		assert.Empty(t, base.ErrorMessage())
		assert.Empty(t, base.Code())
	})
}

func TestBase_Messages(t *testing.T) {
	t.Run("rule messages win over fallback messages", func(t *testing.T) {
		base, err := validator.NewBase("k", "v", validator.Params{
			"fallback_messages": map[string]string{
				validator.CodeInvalidNumeric: "fallback numeric",
				validator.CodeInvalidString:  "fallback string",
			},
			"messages": map[string]any{
				validator.CodeInvalidNumeric: "own numeric",
				"customCode":                 "custom",
			},
		})
		require.NoError(t, err)

		messages := base.Messages()
		assert.Equal(t, "own numeric", messages[validator.CodeInvalidNumeric])
		assert.Equal(t, "fallback string", messages[validator.CodeInvalidString])
		assert.Equal(t, "custom", messages["customCode"])
		assert.Equal(t, validator.DefaultMessages()[validator.CodeInvalidEmail], messages[validator.CodeInvalidEmail])
	})

	t.Run("does not mutate the defaults", func(t *testing.T) {
		_, err := validator.NewBase("k", "v", validator.Params{
			"messages": map[string]string{validator.CodeEmptyKey: "changed"},
		})
		require.NoError(t, err)
		assert.NotEqual(t, "changed", validator.DefaultMessages()[validator.CodeEmptyKey])
	})

	t.Run("rejects non string patterns", func(t *testing.T) {
		_, err := validator.NewBase("k", "v", validator.Params{
			"messages": map[string]any{validator.CodeEmptyKey: 1},
		})
		assert.ErrorIs(t, err, validator.ErrInvalidParam)
	})
}

func TestBase_InvalidUniversalParams(t *testing.T) {
	_, err := validator.NewBase("k", "v", validator.Params{"required": "maybe"})
	assert.ErrorIs(t, err, validator.ErrInvalidParam)

	_, err = validator.NewBase("k", "v", validator.Params{"trim": []int{1}})
	assert.ErrorIs(t, err, validator.ErrInvalidParam)
}

func TestEmptiness(t *testing.T) {
	assert.True(t, validator.IsScalarEmpty(nil))
	assert.True(t, validator.IsScalarEmpty(""))
	assert.False(t, validator.IsScalarEmpty(" "))
	assert.False(t, validator.IsScalarEmpty(false))
	assert.False(t, validator.IsScalarEmpty(0))
	assert.False(t, validator.IsScalarEmpty([]any{}))

	assert.True(t, validator.IsCollectionEmpty(nil))
	assert.True(t, validator.IsCollectionEmpty([]any{}))
	assert.True(t, validator.IsCollectionEmpty(map[string]any{}))
	assert.True(t, validator.IsCollectionEmpty([]string(nil)))
	assert.False(t, validator.IsCollectionEmpty(""))
	assert.False(t, validator.IsCollectionEmpty([]int{0}))
}

func TestRule_IdempotentValidate(t *testing.T) {
	collectionDoc := `[{"code":"1","slug":"one"}]`
	collection := collectionParams("/^[a-z]+$/")
	collection["json"] = true

	rewrite := func(_ string, value any, rule *validator.CallableRule) bool {
		if value == "102" {
			rule.SetValue(102)
			return true
		}
		return false
	}

	tests := []struct {
		name   string
		kind   validator.Kind
		value  any
		params validator.Params
		status validator.Status
		result any
	}{
		{name: "string too short", kind: validator.KindString, value: "Ben", params: validator.Params{"min": 4}, status: validator.StatusError, result: "Ben"},
		{name: "numeric too large", kind: validator.KindNumeric, value: "30", params: validator.Params{"max": 29}, status: validator.StatusError, result: "30"},
		{name: "invalid email", kind: validator.KindEmail, value: "elie.com", status: validator.StatusError, result: "elie.com"},
		{name: "invalid bic", kind: validator.KindBIC, value: "ASPK AT-2", status: validator.StatusError, result: "ASPKAT2"},
		{name: "invalid date", kind: validator.KindDate, value: "31/04/2020", status: validator.StatusError, result: "31/04/2020"},
		{name: "no alternative passes", kind: validator.KindOr, value: "abc", params: validator.Params{"rules": []validator.Spec{
			{Kind: validator.KindNumeric},
			{Kind: validator.KindBoolean},
		}}, status: validator.StatusError, result: "abc"},
		{name: "decoded json", kind: validator.KindJSON, value: `{"a":1}`, params: validator.Params{"decode": true}, status: validator.StatusValid, result: map[string]any{"a": json.Number("1")}},
		{name: "numeric cast", kind: validator.KindNumeric, value: "25", params: validator.Params{"cast": true}, status: validator.StatusValid, result: 25},
		{name: "boolean cast", kind: validator.KindBoolean, value: "1", params: validator.Params{"cast": true}, status: validator.StatusValid, result: true},
		{name: "bic separators removed", kind: validator.KindBIC, value: "ASPK AT-2L XXX", status: validator.StatusValid, result: "ASPKAT2LXXX"},
		{name: "collection from json", kind: validator.KindCollection, value: collectionDoc, params: collection, status: validator.StatusValid, result: []any{
			map[string]any{"code": 1, "slug": "one"},
		}},
		{name: "callable rewrite", kind: validator.KindCallable, value: "102", params: validator.Params{"callable": rewrite}, status: validator.StatusValid, result: 102},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := build(t, tt.kind, "field", tt.value, tt.params)

			first := rule.Validate()
			firstErr := rule.ErrorMessage()
			firstValue := rule.Value()

			second := rule.Validate()

			assert.Equal(t, tt.status, first)
			assert.Equal(t, first, second)
			assert.Equal(t, firstErr, rule.ErrorMessage())
			assert.Equal(t, firstValue, rule.Value())
			if tt.status == validator.StatusValid {
				assert.Equal(t, tt.result, rule.Value())
			}
		})
	}
}

func TestRule_EmptyValues(t *testing.T) {
	called := false
	minimal := map[validator.Kind]validator.Params{
		validator.KindMatch:    {"pattern": "/^x$/"},
		validator.KindRange:    {"range": []any{"a", "b"}},
		validator.KindChoices:  {"list": []any{"a", "b"}},
		validator.KindCompare:  {"sign": "eq", "expected": "x"},
		validator.KindCallable: {"callable": func(string, any) bool { called = true; return false }},
		validator.KindAnd:      {"rules": []validator.Spec{{Kind: validator.KindEmail}}},
		validator.KindOr:       {"rules": []validator.Spec{{Kind: validator.KindEmail}}},
		validator.KindCollection: {"rules": []validator.Spec{
			{Key: "email", Kind: validator.KindEmail, Params: validator.Params{"required": true}},
		}},
	}
	collections := map[validator.Kind]bool{
		validator.KindArray:      true,
		validator.KindChoices:    true,
		validator.KindCollection: true,
	}

	for _, kind := range validator.DefaultRegistry().Kinds() {
		empties := []any{nil, ""}
		if collections[kind] {
			empties = []any{nil, []any{}}
		}

		for _, value := range empties {
			t.Run(string(kind)+" optional", func(t *testing.T) {
				rule := build(t, kind, "field", value, minimal[kind])
				assert.Equal(t, validator.StatusValid, rule.Validate())
				assert.Empty(t, rule.ErrorMessage())
			})

			t.Run(string(kind)+" required", func(t *testing.T) {
				params := validator.Params{"required": true}
				for name, p := range minimal[kind] {
					params[name] = p
				}

				rule := build(t, kind, "field", value, params)
				require.Equal(t, validator.StatusError, rule.Validate())
				assert.Contains(t, rule.ErrorMessage(), "field is required and should not be empty")

				coded, ok := rule.(validator.Coded)
				require.True(t, ok)
				assert.Equal(t, validator.CodeEmptyKey, coded.Code())
			})
		}
	}

	assert.False(t, called)
}
