package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestArrayRule(t *testing.T) {
	runRuleCases(t, validator.KindArray, "name", []ruleCase{
		{name: "list within bounds", value: []any{1, 2}, params: validator.Params{"min": 1, "max": 2}, status: validator.StatusValid},
		{name: "map counts as a collection", value: map[string]any{"a": 1}, status: validator.StatusValid},
		{name: "list too long", value: []any{1, 2, 3}, params: validator.Params{"max": 2}, status: validator.StatusError, err: "name: The length of array (  0 => 1,  1 => 2,  2 => 3,) is not between 0 and 2"},
		{name: "list too short without max", value: []string{"a"}, params: validator.Params{"min": 2}, status: validator.StatusError, err: "name: The length of array (  0 => 'a',) is not between 2 and "},
		{name: "string is not an array", value: "Ben", status: validator.StatusError, err: "name does not have an array value: Ben"},
		{name: "empty list and optional", value: []any{}, status: validator.StatusValid},
		{name: "empty list and required", value: []any{}, params: validator.Params{"required": true}, status: validator.StatusError, err: "name is required and should not be empty: array ()"},
	})
}

func TestArrayRule_EmptyValue(t *testing.T) {
	rule := build(t, validator.KindArray, "name", nil, nil)
	assert.Equal(t, validator.StatusValid, rule.Validate())
	assert.Equal(t, []any{}, rule.Value())
}

func TestRangeRule(t *testing.T) {
	runRuleCases(t, validator.KindRange, "name", []ruleCase{
		{name: "value in range", value: 2, params: validator.Params{"range": []any{1, 2}}, status: validator.StatusValid},
		{name: "int64 matches int", value: int64(1), params: validator.Params{"range": []any{1, 2}}, status: validator.StatusValid},
		{name: "string does not match int", value: "1", params: validator.Params{"range": []any{1, 2}}, status: validator.StatusError, err: "name: 1 is out of range array (  0 => 1,  1 => 2,)"},
		{name: "string range", value: "b", params: validator.Params{"range": []string{"a", "b"}}, status: validator.StatusValid},
		{name: "missing range rejects everything", value: "a", status: validator.StatusError, err: "name: a is out of range array ()"},
	})
}

func TestChoicesRule(t *testing.T) {
	list := validator.Params{"list": []any{"foo", "bar"}}

	tests := []struct {
		name     string
		value    any
		params   validator.Params
		status   validator.Status
		err      string
		expected any
	}{
		{name: "nil stays nil", value: nil, params: list, status: validator.StatusValid, expected: nil},
		{name: "empty list stays empty", value: []any{}, params: list, status: validator.StatusValid, expected: []any{}},
		{name: "single choice", value: []any{"foo"}, params: list, status: validator.StatusValid, expected: []any{"foo"}},
		{name: "choices in any order", value: []string{"bar", "foo"}, params: list, status: validator.StatusValid, expected: []string{"bar", "foo"}},
		{name: "scalar choice", value: "bar", params: list, status: validator.StatusValid, expected: "bar"},
		{
			name:     "unknown choice",
			value:    []any{"x"},
			params:   list,
			status:   validator.StatusError,
			err:      "name: x is not in the given list : array (  0 => 'foo',  1 => 'bar',)",
			expected: []any{"x"},
		},
		{
			name:     "required with empty list",
			value:    []any{},
			params:   validator.Params{"list": []any{"foo"}, "required": true},
			status:   validator.StatusError,
			err:      "name is required and should not be empty: array ()",
			expected: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := build(t, validator.KindChoices, "name", tt.value, tt.params)
			assert.Equal(t, tt.status, rule.Validate())
			assert.Equal(t, tt.err, rule.ErrorMessage())
			assert.Equal(t, tt.expected, rule.Value())
		})
	}
}
