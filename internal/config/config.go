// Package config provides configuration loading and validation for the CLI and the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Input
	Text string `json:"text,omitempty"` // Business description
	In   string `json:"in,omitempty"`   // Path to a text file holding the description
	URL  string `json:"url,omitempty"`  // Page whose text is used as the description

	// Generation
	Tone  string `json:"tone,omitempty"`  // professional, playful, elegant or minimal
	Count int    `json:"count,omitempty"` // Number of names requested
	UseAI bool   `json:"use_ai,omitempty"`

	// Output
	Out     string `json:"out,omitempty"`     // Path of the JSON result file
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information

	// Providers
	APIKey       string `json:"api_key,omitempty"`        // Gemini API key
	OpenAIAPIKey string `json:"openai_api_key,omitempty"` // OpenAI API key
	Provider     string `json:"provider,omitempty"`       // Primary LLM provider: gemini or openai

	// Resources
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	RedisURL       string `json:"redis_url,omitempty"`       // Redis URL for the AI name cache
	VocabularyPath string `json:"vocabulary_path,omitempty"` // Replacement vocabulary YAML
	ThesaurusPath  string `json:"thesaurus_path,omitempty"`  // Replacement thesaurus JSON
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the CLI after flags are merged.
func (c *Config) Validate() error {
	sources := 0
	for _, s := range []string{c.Text, c.In, c.URL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'text', 'in' and 'url' are mutually exclusive")
	}

	if c.Count < 0 {
		return fmt.Errorf("config error: 'count' must be non-negative")
	}

	switch c.Provider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	for _, f := range []struct{ label, path string }{
		{"input", c.In},
		{"vocabulary", c.VocabularyPath},
		{"thesaurus", c.ThesaurusPath},
	} {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", f.label, f.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Text == "" {
		result.Text = defaults.Text
	}
	if result.In == "" {
		result.In = defaults.In
	}
	if result.URL == "" {
		result.URL = defaults.URL
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.VocabularyPath == "" {
		result.VocabularyPath = defaults.VocabularyPath
	}
	if result.ThesaurusPath == "" {
		result.ThesaurusPath = defaults.ThesaurusPath
	}

	if result.Count == 0 {
		result.Count = defaults.Count
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
