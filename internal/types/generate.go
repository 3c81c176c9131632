// Package types holds the request and response shapes shared by the HTTP API,
// the CLI and the generation service.
package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator. It caches struct metadata, so one instance serves all requests.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// GenerateRequest is the input to a name generation run.
type GenerateRequest struct {
	InputText string `json:"input_text" validate:"max=5000"`
	Tone      string `json:"tone,omitempty" validate:"max=32"`
	Count     int    `json:"count,omitempty" validate:"gte=0"`
	UseAI     bool   `json:"use_ai,omitempty"`
	SourceURL string `json:"source_url,omitempty" validate:"omitempty,url,max=2048"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return validatorInstance().Struct(r)
}

// NameRecord is one generated name with its tagline. ID is the position in the response.
type NameRecord struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	ID      int    `json:"id"`
	Source  string `json:"source,omitempty"`
}

// Name sources reported in NameRecord.Source.
const (
	SourceRuleBased = "rule"
	SourceAI        = "ai"
)

// Generation methods reported in GenerateResponse.GenerationMethod.
const (
	MethodRuleBased = "Rule-based"
	MethodBlended   = "AI + Rule-based"
)

// GenerateResponse is the result of a generation run.
type GenerateResponse struct {
	Names             []NameRecord        `json:"names"`
	Categories        map[string][]string `json:"categories"`
	CategoryOrder     []string            `json:"category_order,omitempty"` // non-empty Categories keys, priority order
	KeywordsExtracted []string            `json:"keywords_extracted"`
	IndustryDetected  string              `json:"industry_detected"`
	Tone              string              `json:"tone"`
	TotalGenerated    int                 `json:"total_generated"`
	GenerationMethod  string              `json:"generation_method"`
	AIAvailable       bool                `json:"ai_available"`
	RequestID         string              `json:"request_id"`
}

// Features reports which capabilities the running service has.
type Features struct {
	AIGeneration        bool `json:"ai_generation"`
	OpenAIAvailable     bool `json:"openai_available"`
	GeminiAvailable     bool `json:"gemini_available"`
	RuleBasedGeneration bool `json:"rule_based_generation"`
	NLPProcessing       bool `json:"nlp_processing"`
	CategoryFiltering   bool `json:"category_filtering"`
	FavoritesStorage    bool `json:"favorites_storage"`
	TaglineGeneration   bool `json:"tagline_generation"`
}

// KeywordsResult is the output of keyword extraction on its own.
type KeywordsResult struct {
	Keywords []string `json:"keywords"`
	Industry string   `json:"industry"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
