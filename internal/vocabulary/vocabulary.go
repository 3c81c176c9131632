// Package vocabulary loads the static word tables that drive name synthesis,
// industry detection, tagline selection and name categorization.
// The default tables are embedded at compile time; a YAML file with the same
// shape can replace them at startup.
package vocabulary

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultYAML []byte

// GeneralIndustry is the label used when no industry matches and the tagline fallback key.
const GeneralIndustry = "general"

// Taxonomy lists the industries a vocabulary may declare terms for, in
// detection priority order. GeneralIndustry is implied and never declared.
var Taxonomy = []string{"tech", "food", "health", "fashion", "eco", "pet", "beauty"}

// ToneWords holds the extra prefixes and suffixes a tone contributes.
type ToneWords struct {
	Prefixes []string `yaml:"prefixes"`
	Suffixes []string `yaml:"suffixes"`
}

// IndustryTerms is one entry of the ordered industry taxonomy.
type IndustryTerms struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// CategoryRule maps a display bucket to the substrings that select it.
type CategoryRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Modifiers are the word pieces used by the "modified" name template.
type Modifiers struct {
	Fragments []string `yaml:"fragments"`
	Leads     []string `yaml:"leads"`
	Tails     []string `yaml:"tails"`
}

// Vocabulary is the full set of word tables. Treat it as read-only once loaded.
type Vocabulary struct {
	MaxNameLength      int                  `yaml:"max_name_length"`
	MainKeywordLimit   int                  `yaml:"main_keyword_limit"`
	Prefixes           []string             `yaml:"prefixes"`
	Suffixes           []string             `yaml:"suffixes"`
	CompoundConnectors []string             `yaml:"compound_connectors"`
	Modified           Modifiers            `yaml:"modified"`
	Tones              map[string]ToneWords `yaml:"tones"`
	Industries         []IndustryTerms      `yaml:"industries"`
	Taglines           map[string][]string  `yaml:"taglines"`
	Categories         []CategoryRule       `yaml:"categories"`
	DefaultCategory    string               `yaml:"default_category"`
}

// LoadError reports a vocabulary document that could not be read or is incomplete.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
	defaultErr   error
)

// Default returns the embedded vocabulary. It is parsed once per process.
func Default() (*Vocabulary, error) {
	defaultOnce.Do(func() {
		defaultVocab, defaultErr = parse("embedded", defaultYAML)
	})
	return defaultVocab, defaultErr
}

// MustDefault is Default for callers that cannot continue without the tables.
func MustDefault() *Vocabulary {
	v, err := Default()
	if err != nil {
		panic(err)
	}
	return v
}

// Load reads a vocabulary YAML file. An empty path returns the embedded default.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return parse(path, data)
}

// Parse decodes and validates a vocabulary document.
func Parse(data []byte) (*Vocabulary, error) {
	return parse("document", data)
}

func parse(source string, data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid YAML", Cause: err}
	}
	if err := v.validate(); err != nil {
		return nil, &LoadError{Source: source, Message: err.Error()}
	}
	v.normalize()
	return &v, nil
}

func (v *Vocabulary) validate() error {
	if len(v.Prefixes) == 0 {
		return fmt.Errorf("prefixes must not be empty")
	}
	if len(v.Suffixes) == 0 {
		return fmt.Errorf("suffixes must not be empty")
	}
	if _, ok := v.Tones["professional"]; !ok {
		return fmt.Errorf("tone %q is required as the fallback tone", "professional")
	}
	if len(v.Taglines[GeneralIndustry]) == 0 {
		return fmt.Errorf("taglines for %q are required as the fallback list", GeneralIndustry)
	}
	if len(v.Modified.Fragments) == 0 || len(v.Modified.Leads) == 0 || len(v.Modified.Tails) == 0 {
		return fmt.Errorf("modified fragments, leads and tails must not be empty")
	}

	seen := make(map[string]bool, len(v.Industries))
	for _, ind := range v.Industries {
		name := strings.ToLower(strings.TrimSpace(ind.Name))
		if name == "" || name == GeneralIndustry {
			return fmt.Errorf("invalid industry name %q", ind.Name)
		}
		if !slices.Contains(Taxonomy, name) {
			return fmt.Errorf("unknown industry %q (want one of %s)", ind.Name, strings.Join(Taxonomy, ", "))
		}
		if seen[name] {
			return fmt.Errorf("duplicate industry %q", name)
		}
		seen[name] = true
	}
	for _, c := range v.Categories {
		if c.Label == "" {
			return fmt.Errorf("category label must not be empty")
		}
	}
	return nil
}

// normalize fills defaults and lowercases the match tables.
func (v *Vocabulary) normalize() {
	if v.MaxNameLength <= 0 {
		v.MaxNameLength = 25
	}
	if v.MainKeywordLimit <= 0 {
		v.MainKeywordLimit = 5
	}
	if len(v.CompoundConnectors) == 0 {
		v.CompoundConnectors = []string{""}
	}
	if v.DefaultCategory == "" {
		v.DefaultCategory = "Creative"
	}
	for i := range v.Industries {
		v.Industries[i].Name = strings.ToLower(strings.TrimSpace(v.Industries[i].Name))
		v.Industries[i].Terms = lowerAll(v.Industries[i].Terms)
	}
	for i := range v.Categories {
		v.Categories[i].Keywords = lowerAll(v.Categories[i].Keywords)
	}
}

// Tone returns the words for a tone name and whether the tone exists.
func (v *Vocabulary) Tone(name string) (ToneWords, bool) {
	tw, ok := v.Tones[name]
	return tw, ok
}

// IndustryNames returns the taxonomy labels in detection order.
func (v *Vocabulary) IndustryNames() []string {
	names := make([]string, 0, len(v.Industries))
	for _, ind := range v.Industries {
		names = append(names, ind.Name)
	}
	return names
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
