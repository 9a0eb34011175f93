// Package config loads typed configuration from environment variables.
//
// Structs are described with `env` tags understood by
// github.com/caarlos0/env/v11. Load reads the default .env file once with
// github.com/joho/godotenv, parses the struct and caches the result per
// type; Parse skips the cache. LoadEnv reads additional .env files.
//
//	var cfg validator.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// ResetCache clears cached values, which is mostly useful in tests that
// change the environment.
package config
