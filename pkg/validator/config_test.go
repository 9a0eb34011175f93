package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		cfg, err := validator.LoadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.StopOnError)
		assert.False(t, cfg.AppendExistingOnly)
		assert.Equal(t, "<br/>", cfg.ErrorSeparator)
		assert.Equal(t, validator.DefaultPatternCacheSize, cfg.PatternCacheSize)
	})

	t.Run("environment overrides", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("VALIDATOR_STOP_ON_ERROR", "true")
		t.Setenv("VALIDATOR_ERROR_SEPARATOR", "; ")
		t.Setenv("VALIDATOR_REGEX_CACHE_SIZE", "16")

		cfg, err := validator.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.StopOnError)
		assert.Equal(t, "; ", cfg.ErrorSeparator)
		assert.Equal(t, 16, cfg.PatternCacheSize)
	})

	t.Run("malformed value", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("VALIDATOR_STOP_ON_ERROR", "perhaps")

		_, err := validator.LoadConfig()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg := validator.Config{
		StopOnError:        true,
		AppendExistingOnly: true,
		ErrorSeparator:     " / ",
		PatternCacheSize:   8,
	}
	ctx := validator.Context{"a": "x", "b": "y"}
	rules := []validator.Spec{
		{Key: "a", Kind: validator.KindNumeric},
		{Key: "b", Kind: validator.KindNumeric},
		{Key: "c", Kind: validator.KindString},
	}

	v := validator.NewFromConfig(cfg, ctx, rules)
	assert.True(t, v.ShouldStopOnError())
	assert.True(t, v.AppendExistingItemsOnly())

	ok, err := v.Validate()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "a: x is not numeric", v.ImplodedErrors())

	v = validator.NewFromConfig(cfg, ctx, rules, validator.WithStopOnError(false))
	_, err = v.Validate()
	require.NoError(t, err)
	assert.Equal(t, "a: x is not numeric / b: y is not numeric", v.ImplodedErrors())
	assert.Empty(t, v.ValidatedContext())
}
