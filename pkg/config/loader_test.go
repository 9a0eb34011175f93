package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/config"
)

type ValidatorSettings struct {
	StopOnError bool   `env:"TEST_LOAD_STOP_ON_ERROR" envDefault:"false"`
	CacheSize   int    `env:"TEST_LOAD_CACHE_SIZE" envDefault:"256"`
	Separator   string `env:"TEST_LOAD_SEPARATOR" envDefault:"<br/>"`
}

type CatalogSettings struct {
	Locale string `env:"TEST_LOAD_LOCALE" envDefault:"en"`
}

type RulesSettings struct {
	Dir string `env:"TEST_LOAD_RULES_DIR,required"`
}

func TestLoad(t *testing.T) {
	t.Run("reads variables and defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("TEST_LOAD_STOP_ON_ERROR", "true")
		t.Setenv("TEST_LOAD_CACHE_SIZE", "64")

		var cfg ValidatorSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ValidatorSettings{StopOnError: true, CacheSize: 64, Separator: "<br/>"}, cfg)
	})

	t.Run("values are cached per type", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("TEST_LOAD_LOCALE", "fr")
		t.Setenv("TEST_LOAD_CACHE_SIZE", "32")

		var first CatalogSettings
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_LOAD_LOCALE", "de")
		var second CatalogSettings
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "fr", second.Locale)

		var other ValidatorSettings
		require.NoError(t, config.Load(&other))
		assert.Equal(t, 32, other.CacheSize)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		var cfg RulesSettings
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("TEST_LOAD_CACHE_SIZE", "many")

		var cfg ValidatorSettings
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *ValidatorSettings
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
		assert.ErrorIs(t, config.Parse(cfg), config.ErrNilPointer)
	})

	t.Run("must load panics on failure", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		assert.Panics(t, func() {
			var cfg RulesSettings
			config.MustLoad(&cfg)
		})
	})
}

type ParseConfig struct {
	Separator string `env:"TEST_PARSE_SEPARATOR" envDefault:"<br/>"`
}

func TestParse_SkipsCache(t *testing.T) {
	t.Setenv("TEST_PARSE_SEPARATOR", ", ")

	var first ParseConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, ", ", first.Separator)

	t.Setenv("TEST_PARSE_SEPARATOR", "\n")

	var cached ParseConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, ", ", cached.Separator)

	var fresh ParseConfig
	require.NoError(t, config.Parse(&fresh))
	assert.Equal(t, "\n", fresh.Separator)
}

type ResetConfig struct {
	Size int `env:"TEST_RESET_SIZE" envDefault:"256"`
}

func TestResetCache(t *testing.T) {
	t.Setenv("TEST_RESET_SIZE", "10")

	var cfg ResetConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 10, cfg.Size)

	t.Setenv("TEST_RESET_SIZE", "20")
	config.ResetCache()

	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 20, cfg.Size)
}

type EnvFileConfig struct {
	StopOnError bool   `env:"TEST_ENVFILE_STOP"`
	Separator   string `env:"TEST_ENVFILE_SEPARATOR"`
}

func TestLoadEnv(t *testing.T) {
	t.Run("reads variables from files", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.env")
		second := filepath.Join(dir, "second.env")
		require.NoError(t, os.WriteFile(first, []byte("TEST_ENVFILE_STOP=true\n"), 0o600))
		require.NoError(t, os.WriteFile(second, []byte("TEST_ENVFILE_STOP=false\nTEST_ENVFILE_SEPARATOR=\"; \"\n"), 0o600))

		// registered for cleanup, then removed so the files can set them
		t.Setenv("TEST_ENVFILE_STOP", "")
		t.Setenv("TEST_ENVFILE_SEPARATOR", "")
		os.Unsetenv("TEST_ENVFILE_STOP")
		os.Unsetenv("TEST_ENVFILE_SEPARATOR")

		require.NoError(t, config.LoadEnv(first, second))

		var cfg EnvFileConfig
		require.NoError(t, config.Parse(&cfg))
		assert.True(t, cfg.StopOnError)
		assert.Equal(t, "; ", cfg.Separator)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("no files is a no-op", func(t *testing.T) {
		assert.NoError(t, config.LoadEnv())
	})
}
