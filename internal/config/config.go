// Package config assembles the backend settings from the environment and
// validates them before anything is wired.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/go-playground/validator/v10"
)

const (
	ServiceName = "LegalIndia Backend"
	Version     = "1.0.4"

	DefaultAIEngineURL    = "https://lindia-ai-production.up.railway.app"
	DefaultInLegalBERTURL = "https://api-inference.huggingface.co/models/law-ai/InLegalBERT"
	DefaultDeepSeekURL    = "https://api.deepseek.com/v1"
	DefaultDeepSeekModel  = "deepseek-chat"
)

type Config struct {
	Port int `validate:"gt=0,lte=65535"`

	AIEngine    AIEngineConfig
	InLegalBERT InLegalBERTConfig
	DeepSeek    DeepSeekConfig

	CORSAllowedOrigins []string `validate:"min=1,dive,required"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

type AIEngineConfig struct {
	URL     string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type InLegalBERTConfig struct {
	APIKey  string
	URL     string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type DeepSeekConfig struct {
	APIKey    string
	BaseURL   string        `validate:"required,url"`
	Model     string        `validate:"required"`
	Timeout   time.Duration `validate:"gt=0"`
	MaxTokens int           `validate:"gt=0"`
}

// Load reads the backend configuration. API keys are optional: without them
// the matching pipeline stage is skipped.
func Load(env output.ConfigPort) (*Config, error) {
	cfg := &Config{
		Port: env.GetInt("PORT", 8000),
		AIEngine: AIEngineConfig{
			URL:     strings.TrimRight(env.GetWithDefault("AI_ENGINE_URL", DefaultAIEngineURL), "/"),
			Timeout: env.GetDuration("AI_ENGINE_TIMEOUT", 30*time.Second),
		},
		InLegalBERT: InLegalBERTConfig{
			APIKey:  env.Get("INLEGALBERT_API_KEY"),
			URL:     env.GetWithDefault("INLEGALBERT_URL", DefaultInLegalBERTURL),
			Timeout: env.GetDuration("INLEGALBERT_TIMEOUT", 30*time.Second),
		},
		DeepSeek: DeepSeekConfig{
			APIKey:    env.Get("DEEPSEEK_API_KEY"),
			BaseURL:   env.GetWithDefault("DEEPSEEK_BASE_URL", DefaultDeepSeekURL),
			Model:     env.GetWithDefault("DEEPSEEK_MODEL", DefaultDeepSeekModel),
			Timeout:   env.GetDuration("DEEPSEEK_TIMEOUT", 60*time.Second),
			MaxTokens: env.GetInt("DEEPSEEK_MAX_TOKENS", 4000),
		},
		CORSAllowedOrigins: splitList(env.GetWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           strings.ToLower(env.GetWithDefault("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(env.GetWithDefault("LOG_FORMAT", "json")),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
