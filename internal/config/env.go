package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from environment variables.
// The binary loads a .env file first, so values there act as defaults.
type Env struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string        `env:"OPENAI_API_KEY"`
	LLMProvider  string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	OpenAIModel  string        `env:"OPENAI_MODEL"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
	AICacheTTL   time.Duration `env:"AI_CACHE_TTL" envDefault:"1h"`

	DefaultCount int `env:"DEFAULT_COUNT" envDefault:"15"`
	MaxCount     int `env:"MAX_COUNT" envDefault:"50"`

	VocabularyPath string `env:"VOCABULARY_PATH"`
	ThesaurusPath  string `env:"THESAURUS_PATH"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadEnv parses the environment into an Env and validates it.
func LoadEnv() (*Env, error) {
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that the env tags cannot express.
func (e *Env) Validate() error {
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("env error: PORT must be between 1 and 65535, got %d", e.Port)
	}
	if e.MaxCount <= 0 {
		return fmt.Errorf("env error: MAX_COUNT must be positive")
	}
	if e.DefaultCount <= 0 || e.DefaultCount > e.MaxCount {
		return fmt.Errorf("env error: DEFAULT_COUNT must be between 1 and MAX_COUNT (%d)", e.MaxCount)
	}
	if e.AITimeout <= 0 {
		return fmt.Errorf("env error: AI_TIMEOUT must be positive")
	}
	switch e.LLMProvider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("env error: unknown LLM_PROVIDER %q", e.LLMProvider)
	}
	return nil
}

// AIEnabled reports whether at least one LLM provider has credentials.
func (e *Env) AIEnabled() bool {
	return e.GeminiAPIKey != "" || e.OpenAIAPIKey != ""
}

// ApplyTo fills empty CLI config fields from the environment.
func (e *Env) ApplyTo(c Config) Config {
	return c.MergeWithDefaults(Config{
		Count:          e.DefaultCount,
		APIKey:         e.GeminiAPIKey,
		OpenAIAPIKey:   e.OpenAIAPIKey,
		Provider:       e.LLMProvider,
		DatabaseURL:    e.DatabaseURL,
		RedisURL:       e.RedisURL,
		VocabularyPath: e.VocabularyPath,
		ThesaurusPath:  e.ThesaurusPath,
	})
}
