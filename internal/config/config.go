package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host                string   `mapstructure:"host"`
	Port                int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel            string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins  []string `mapstructure:"cors_allowed_origins"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL is either a PostgreSQL connection string or sqlite://<path>.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,gtfield=TokenLifetimeMinutes"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// LLMConfig contains the provider credentials and model names.
// A provider whose API key is empty is treated as unavailable. The token and
// temperature budget is fixed in the generation package.
type LLMConfig struct {
	PreferredProvider     string `mapstructure:"preferred_provider" validate:"required,oneof=openai anthropic claude gemini"`
	OpenAIAPIKey          string `mapstructure:"openai_api_key"`
	OpenAIModel           string `mapstructure:"openai_model" validate:"required"`
	OpenAIBaseURL         string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	AnthropicAPIKey       string `mapstructure:"anthropic_api_key"`
	AnthropicModel        string `mapstructure:"anthropic_model" validate:"required"`
	GeminiAPIKey          string `mapstructure:"gemini_api_key"`
	GeminiModel           string `mapstructure:"gemini_model" validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}
