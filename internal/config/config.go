package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
	CORSOrigins     string        `json:"cors_origins"`

	// External API credentials
	AnthropicAPIKey string `json:"-" validate:"required"`
	OpenAIAPIKey    string `json:"-" validate:"required"`

	// WordPress
	WordPressURL         string `json:"wordpress_url" validate:"required,url"`
	WordPressUsername    string `json:"wordpress_username" validate:"required"`
	WordPressAppPassword string `json:"-" validate:"required"`

	// Model configuration
	DefaultModel     string `json:"default_model"`
	MaxTokens        int    `json:"max_tokens"`
	DefaultWordCount int    `json:"default_word_count"`

	// File uploads
	UploadDir     string `json:"upload_dir"`
	MaxUploadSize int64  `json:"max_upload_size"`

	// Redis (optional taxonomy cache)
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load loads configuration from environment variables and validates it.
// The process refuses to start when required credentials are missing.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8000"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 5*time.Minute),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),

		// External API credentials
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),

		// WordPress
		WordPressURL:         getEnv("WORDPRESS_URL", ""),
		WordPressUsername:    getEnv("WORDPRESS_USERNAME", ""),
		WordPressAppPassword: getEnv("WORDPRESS_APP_PASSWORD", ""),

		// Model configuration
		DefaultModel:     getEnv("DEFAULT_MODEL", "claude-sonnet-4-20250514"),
		MaxTokens:        getEnvAsInt("MAX_TOKENS", 8000),
		DefaultWordCount: getEnvAsInt("DEFAULT_WORD_COUNT", 800),

		// File uploads
		UploadDir:     getEnv("UPLOAD_DIR", "./temp/uploads"),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20), // 10MB

		// Redis
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "newsletter:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 720*time.Hour), // 30 days

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
