package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func build(t *testing.T, kind validator.Kind, key string, value any, params validator.Params) validator.Rule {
	t.Helper()
	rule, err := validator.DefaultRegistry().Build(validator.Spec{Key: key, Kind: kind, Params: params}, value)
	require.NoError(t, err)
	return rule
}

type ruleCase struct {
	name   string
	value  any
	params validator.Params
	status validator.Status
	err    string
}

func runRuleCases(t *testing.T, kind validator.Kind, key string, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := build(t, kind, key, tc.value, tc.params)
			require.Equal(t, tc.status, rule.Validate())
			require.Equal(t, tc.err, rule.ErrorMessage())
		})
	}
}
