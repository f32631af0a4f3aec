package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the
// environment, e.g. CONTENTGEN_SERVER_PORT.
const EnvPrefix = "CONTENTGEN"

// DefaultDatabaseURL points at a local SQLite file so the service runs
// without any external database.
const DefaultDatabaseURL = "sqlite://contentgen.db"

// envAliases lists unprefixed variable names accepted in addition to the
// prefixed form. The prefixed name wins when both are set.
var envAliases = map[string]string{
	"server.host":                 "HOST",
	"server.port":                 "PORT",
	"database.url":                "DATABASE_URL",
	"auth.jwt_secret":             "SECRET_KEY",
	"auth.token_lifetime_minutes": "ACCESS_TOKEN_EXPIRE_MINUTES",
	"llm.openai_api_key":          "OPENAI_API_KEY",
	"llm.anthropic_api_key":       "ANTHROPIC_API_KEY",
	"llm.gemini_api_key":          "GEMINI_API_KEY",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first when present; it never
// overrides variables already set in the process environment.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", alias, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000", "https://kaabil.engineer"})
	v.SetDefault("server.read_timeout_seconds", 15)
	// Provider calls routinely take tens of seconds.
	v.SetDefault("server.write_timeout_seconds", 120)

	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("auth.token_lifetime_minutes", 1440)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("llm.preferred_provider", "openai")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_model", "gpt-4o-mini")
	v.SetDefault("llm.openai_base_url", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.anthropic_model", "claude-3-5-sonnet-20241022")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.request_timeout_seconds", 60)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
