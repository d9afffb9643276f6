package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	t.Setenv("OPENAI_API_KEY", "ok-test")
	t.Setenv("WORDPRESS_URL", "https://example.com")
	t.Setenv("WORDPRESS_USERNAME", "editor")
	t.Setenv("WORDPRESS_APP_PASSWORD", "app pass")

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.MaxTokens != 8000 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if cfg.DefaultWordCount != 800 {
		t.Errorf("DefaultWordCount = %d", cfg.DefaultWordCount)
	}
	if cfg.MaxUploadSize != 10<<20 {
		t.Errorf("MaxUploadSize = %d", cfg.MaxUploadSize)
	}
	if cfg.CacheTTL != 720*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if !strings.HasPrefix(cfg.DefaultModel, "claude-") {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	t.Setenv("OPENAI_API_KEY", "ok-test")
	t.Setenv("WORDPRESS_URL", "https://example.com")
	t.Setenv("WORDPRESS_USERNAME", "editor")
	t.Setenv("WORDPRESS_APP_PASSWORD", "app pass")
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_TOKENS", "4000")
	t.Setenv("HTTP_TIMEOUT", "30s")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty config")
	}

	cfg = &Config{
		AnthropicAPIKey:      "ak",
		OpenAIAPIKey:         "ok",
		WordPressURL:         "not-a-url",
		WordPressUsername:    "u",
		WordPressAppPassword: "p",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for malformed WordPress URL")
	}

	cfg.WordPressURL = "https://example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestGetEnvAsIntInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvAsInt("SOME_INT", 42); got != 42 {
		t.Errorf("getEnvAsInt = %d, want default 42", got)
	}
}

func TestGetEnvAsDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_DUR", "forever")
	if got := getEnvAsDuration("SOME_DUR", time.Minute); got != time.Minute {
		t.Errorf("getEnvAsDuration = %v, want default", got)
	}
}
