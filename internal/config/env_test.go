package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"LLM_PROVIDER", "OPENAI_MODEL", "AI_TIMEOUT", "AI_CACHE_TTL", "DEFAULT_COUNT",
		"MAX_COUNT", "VOCABULARY_PATH", "THESAURUS_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("AI_TIMEOUT", "30s")
	t.Setenv("AI_CACHE_TTL", "1h")
	t.Setenv("DEFAULT_COUNT", "15")
	t.Setenv("MAX_COUNT", "50")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, time.Hour, cfg.AICacheTTL)
	assert.Equal(t, 15, cfg.DefaultCount)
	assert.Equal(t, 50, cfg.MaxCount)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("DEFAULT_COUNT", "10")
	t.Setenv("MAX_COUNT", "20")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, 10, cfg.DefaultCount)
	assert.Equal(t, 20, cfg.MaxCount)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.AIEnabled())
}

func TestLoadEnv_InvalidNumber(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

func TestEnvValidate(t *testing.T) {
	valid := Env{Port: 8080, LLMProvider: "gemini", AITimeout: time.Second, DefaultCount: 15, MaxCount: 50}

	tests := []struct {
		name    string
		mutate  func(*Env)
		wantErr string
	}{
		{name: "valid", mutate: func(*Env) {}},
		{name: "port zero", mutate: func(e *Env) { e.Port = 0 }, wantErr: "PORT"},
		{name: "port too large", mutate: func(e *Env) { e.Port = 70000 }, wantErr: "PORT"},
		{name: "max count zero", mutate: func(e *Env) { e.MaxCount = 0 }, wantErr: "MAX_COUNT"},
		{name: "default above max", mutate: func(e *Env) { e.DefaultCount = 60 }, wantErr: "DEFAULT_COUNT"},
		{name: "no timeout", mutate: func(e *Env) { e.AITimeout = 0 }, wantErr: "AI_TIMEOUT"},
		{name: "unknown provider", mutate: func(e *Env) { e.LLMProvider = "bard" }, wantErr: "LLM_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvApplyTo(t *testing.T) {
	e := Env{
		DefaultCount: 15,
		GeminiAPIKey: "g-key",
		LLMProvider:  "gemini",
		RedisURL:     "redis://cache:6379",
	}

	merged := e.ApplyTo(Config{Text: "bakery", Count: 8})

	assert.Equal(t, "bakery", merged.Text)
	assert.Equal(t, 8, merged.Count, "explicit count wins")
	assert.Equal(t, "g-key", merged.APIKey)
	assert.Equal(t, "gemini", merged.Provider)
	assert.Equal(t, "redis://cache:6379", merged.RedisURL)

	merged = e.ApplyTo(Config{})
	assert.Equal(t, 15, merged.Count)
}
