package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":3001"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// LLM provider configuration
	OpenAICfg OpenAIConfig `envPrefix:"OPENAI_"`

	// Conversation session configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (only required by the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// OpenAIConfig holds the chat-completions provider settings. Per-profile
// maps are optional; missing keys fall back to fixed defaults.
type OpenAIConfig struct {
	BaseURL           string        `env:"BASE_URL" envDefault:"https://api.openai.com"`
	APIKey            string        `env:"API_KEY,notEmpty"`
	RequestTimeout    time.Duration `env:"TIMEOUT" envDefault:"60s"`
	RequestsPerMinute int           `env:"MAX_REQUESTS_PER_MIN" envDefault:"20"`

	// Formatted as PROFILE:value pairs, e.g. "VALIDATION:gpt-4o-mini,OUTPUT:gpt-4o".
	Models       map[string]string  `env:"MODELS"`
	MaxTokens    map[string]int     `env:"MAX_TOKENS"`
	Temperatures map[string]float64 `env:"TEMPERATURES"`
}

const (
	DefaultModel       = "gpt-4"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	// Validation wants deterministic judgements.
	DefaultValidationTemperature = 0.3
)

// ModelFor resolves the model name for a profile.
func (c OpenAIConfig) ModelFor(profile entity.Profile) string {
	if m, ok := c.Models[string(profile)]; ok && m != "" {
		return m
	}
	return DefaultModel
}

// MaxTokensFor resolves the output token cap for a profile.
func (c OpenAIConfig) MaxTokensFor(profile entity.Profile) int {
	if t, ok := c.MaxTokens[string(profile)]; ok && t > 0 {
		return t
	}
	return DefaultMaxTokens
}

// TemperatureFor resolves the sampling temperature for a profile.
func (c OpenAIConfig) TemperatureFor(profile entity.Profile) float64 {
	if t, ok := c.Temperatures[string(profile)]; ok {
		return t
	}
	if profile == entity.ProfileValidation {
		return DefaultValidationTemperature
	}
	return DefaultTemperature
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.OpenAICfg.RequestsPerMinute < 1 || cfg.OpenAICfg.RequestsPerMinute > 3500 {
		return fmt.Errorf("OPENAI_MAX_REQUESTS_PER_MIN must be between 1 and 3500, got %d", cfg.OpenAICfg.RequestsPerMinute)
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	if cfg.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1m, got %s", cfg.SessionTTL)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
