// Package generation orchestrates a name generation run: it resolves the
// input text, extracts keywords, detects the industry and produces names,
// taglines and categories, blending in language-model names when asked.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/namesmith/internal/categorize"
	"github.com/jonathan/namesmith/internal/fetch"
	"github.com/jonathan/namesmith/internal/industry"
	"github.com/jonathan/namesmith/internal/lexicon"
	"github.com/jonathan/namesmith/internal/llm"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/naming"
	"github.com/jonathan/namesmith/internal/randsrc"
	"github.com/jonathan/namesmith/internal/taglines"
	"github.com/jonathan/namesmith/internal/types"
	"github.com/jonathan/namesmith/internal/vocabulary"
)

const (
	DefaultCount = 15
	MaxCount     = 50
	// MaxAINames caps the language-model share of a blended run.
	MaxAINames = 15
	// MaxReportedKeywords is how many keywords a response lists.
	MaxReportedKeywords = 10
)

// NameSource is an optional source of extra names and taglines.
// *ainame.Generator implements it.
type NameSource interface {
	Available() bool
	Providers() []llm.Provider
	GenerateNames(ctx context.Context, keywords []string, tone naming.Tone, count int) ([]string, error)
	GenerateTaglines(ctx context.Context, names []string, ind industry.Industry) []string
}

// PageFetcher loads the descriptive text of a web page.
type PageFetcher func(ctx context.Context, url string) (*fetch.Page, error)

// Options configures a Service.
type Options struct {
	Vocabulary *vocabulary.Vocabulary
	Expander   *lexicon.Expander
	AI         NameSource
	Random     randsrc.Source
	Logger     *slog.Logger
	Fetch      PageFetcher

	DefaultCount     int
	MaxCount         int
	FavoritesStorage bool
}

// Service runs name generation requests. It is safe for concurrent use.
type Service struct {
	expander    *lexicon.Expander
	classifier  *industry.Classifier
	synth       *naming.Synthesizer
	taglines    *taglines.Provider
	categorizer *categorize.Categorizer
	ai          NameSource
	src         randsrc.Source
	log         *slog.Logger
	fetch       PageFetcher

	defaultCount int
	maxCount     int
	favorites    bool
}

// New builds a Service. Nil options fall back to the embedded vocabulary, a
// default expander, the process-wide random source and a goquery page fetcher.
func New(opts Options) (*Service, error) {
	v := opts.Vocabulary
	if v == nil {
		var err error
		if v, err = vocabulary.Default(); err != nil {
			return nil, err
		}
	}
	exp := opts.Expander
	if exp == nil {
		var err error
		if exp, err = lexicon.New(lexicon.Options{}); err != nil {
			return nil, err
		}
	}
	src := opts.Random
	if src == nil {
		src = randsrc.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	fetcher := opts.Fetch
	if fetcher == nil {
		fetcher = func(ctx context.Context, url string) (*fetch.Page, error) {
			return fetch.FetchPage(ctx, url, fetch.DefaultOptions())
		}
	}

	s := &Service{
		expander:     exp,
		classifier:   industry.NewClassifier(v),
		taglines:     taglines.NewProvider(v, src),
		categorizer:  categorize.New(v),
		ai:           opts.AI,
		src:          src,
		log:          log,
		fetch:        fetcher,
		defaultCount: opts.DefaultCount,
		maxCount:     opts.MaxCount,
		favorites:    opts.FavoritesStorage,
	}
	s.synth = naming.NewSynthesizer(v, s.classifier, src)
	if s.maxCount <= 0 {
		s.maxCount = MaxCount
	}
	if s.defaultCount <= 0 {
		s.defaultCount = DefaultCount
	}
	s.defaultCount = min(s.defaultCount, s.maxCount)
	return s, nil
}

// AIAvailable reports whether a language-model name source is configured.
func (s *Service) AIAvailable() bool {
	return s.ai != nil && s.ai.Available()
}

// Features reports the service's capabilities.
func (s *Service) Features() types.Features {
	f := types.Features{
		AIGeneration:        s.AIAvailable(),
		RuleBasedGeneration: true,
		NLPProcessing:       s.expander.Status().Ready(),
		CategoryFiltering:   true,
		FavoritesStorage:    s.favorites,
		TaglineGeneration:   true,
	}
	if f.AIGeneration {
		for _, p := range s.ai.Providers() {
			switch p {
			case llm.ProviderOpenAI:
				f.OpenAIAvailable = true
			case llm.ProviderGemini:
				f.GeminiAvailable = true
			}
		}
	}
	return f
}

// Keywords extracts keywords from text and detects their industry.
func (s *Service) Keywords(text string) types.KeywordsResult {
	keywords := s.expander.ExtractKeywords(text)
	return types.KeywordsResult{
		Keywords: keywords,
		Industry: string(s.classifier.Detect(keywords)),
	}
}

// ResolveCount applies the default and the upper bound to a requested count.
func (s *Service) ResolveCount(count int) int {
	if count <= 0 {
		return s.defaultCount
	}
	return min(count, s.maxCount)
}

// Generate runs a generation request.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (*types.GenerateResponse, error) {
	return s.Run(ctx, req, nil)
}

// Run is Generate with progress reporting.
func (s *Service) Run(ctx context.Context, req types.GenerateRequest, onProgress ProgressCallback) (*types.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	requestID := uuid.NewString()

	text, err := s.inputText(ctx, req, requestID, onProgress)
	if err != nil {
		return nil, err
	}

	keywords := s.expander.ExtractKeywords(text)
	if len(keywords) == 0 {
		return nil, &InputError{Message: MsgNoKeywords}
	}
	onProgress.emit(requestID, StepKeywords, fmt.Sprintf("Extracted %d keywords", len(keywords)), keywords)

	ind := s.classifier.Detect(keywords)
	onProgress.emit(requestID, StepIndustry, fmt.Sprintf("Detected industry %q", ind), ind)

	tone := naming.ParseTone(req.Tone)
	count := s.ResolveCount(req.Count)

	var records []types.NameRecord
	method := types.MethodRuleBased
	if req.UseAI && s.AIAvailable() {
		var blended bool
		records, blended, err = s.blended(ctx, keywords, ind, tone, count)
		if blended {
			method = types.MethodBlended
		}
	} else {
		records, err = s.ruleBased(keywords, ind, tone, count)
	}
	if err != nil {
		return nil, err
	}
	onProgress.emit(requestID, StepNames, fmt.Sprintf("Generated %d names (%s)", len(records), method), records)
	onProgress.emit(requestID, StepTaglines, "Assigned taglines", nil)

	names := make([]string, len(records))
	for i := range records {
		records[i].ID = i
		names[i] = records[i].Name
	}
	cats := s.categorizer.Categorize(names)
	buckets := s.categorizer.Ordered(cats)
	order := make([]string, len(buckets))
	for i, b := range buckets {
		order[i] = b.Label
	}
	onProgress.emit(requestID, StepCategories, fmt.Sprintf("Sorted names into %d categories", len(cats)), buckets)

	s.log.Debug("generation complete",
		slog.String("request_id", requestID),
		slog.String("industry", string(ind)),
		slog.String("method", method),
		slog.Int("requested", count),
		slog.Int("generated", len(records)))

	return &types.GenerateResponse{
		Names:             records,
		Categories:        cats,
		CategoryOrder:     order,
		KeywordsExtracted: keywords[:min(len(keywords), MaxReportedKeywords)],
		IndustryDetected:  string(ind),
		Tone:              string(tone),
		TotalGenerated:    len(records),
		GenerationMethod:  method,
		AIAvailable:       s.AIAvailable(),
		RequestID:         requestID,
	}, nil
}

// inputText returns the request text, extended with the source page when one is given.
func (s *Service) inputText(ctx context.Context, req types.GenerateRequest, requestID string, onProgress ProgressCallback) (string, error) {
	text := strings.TrimSpace(req.InputText)
	if text == "" && req.SourceURL == "" {
		return "", &InputError{Message: MsgNoInput}
	}
	if req.SourceURL == "" {
		return text, nil
	}

	page, err := s.fetch(ctx, req.SourceURL)
	if err != nil {
		return "", &InputError{Message: "Could not read source_url", Cause: err}
	}
	onProgress.emit(requestID, StepSource, fmt.Sprintf("Fetched %s", req.SourceURL), page.Title)

	combined := page.Combined()
	if text != "" && combined != "" {
		text = text + "\n" + combined
	} else if combined != "" {
		text = combined
	}
	if strings.TrimSpace(text) == "" {
		return "", &InputError{Message: MsgNoInput}
	}
	return text, nil
}

func (s *Service) ruleBased(keywords []string, ind industry.Industry, tone naming.Tone, count int) ([]types.NameRecord, error) {
	names, err := s.synth.GenerateRuleBased(keywords, tone, count)
	if err != nil {
		return nil, err
	}
	lines := s.taglines.Generate(names, ind)
	records := make([]types.NameRecord, len(names))
	for i, name := range names {
		records[i] = types.NameRecord{Name: name, Tagline: lines[i], Source: types.SourceRuleBased}
	}
	return records, nil
}

// blended produces language-model and rule-based names concurrently and
// merges them. The bool result is false when the model contributed nothing
// because it failed.
func (s *Service) blended(ctx context.Context, keywords []string, ind industry.Industry, tone naming.Tone, count int) ([]types.NameRecord, bool, error) {
	aiCount := min(count/2, MaxAINames)
	ruleCount := count - aiCount

	var (
		aiNames   []string
		aiErr     error
		ruleNames []string
	)
	eg, egCtx := errgroup.WithContext(ctx)
	if aiCount > 0 {
		eg.Go(func() error {
			aiNames, aiErr = s.ai.GenerateNames(egCtx, keywords, tone, aiCount)
			return nil
		})
	}
	eg.Go(func() error {
		var err error
		ruleNames, err = s.synth.GenerateRuleBased(keywords, tone, ruleCount)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, false, err
	}
	if aiErr != nil {
		s.log.Warn("ai name source failed, using rule-based names", logging.Err(aiErr))
		aiNames = nil
	}

	records := mergeNames(aiNames, ruleNames)
	s.src.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })
	if len(records) > count {
		records = records[:count]
	}
	s.assignTaglines(ctx, records, ind)
	return records, aiErr == nil, nil
}

// assignTaglines gives model names model taglines and every other name a
// tagline from the industry list.
func (s *Service) assignTaglines(ctx context.Context, records []types.NameRecord, ind industry.Industry) {
	var aiIdx []int
	var aiNames []string
	for i, r := range records {
		if r.Source == types.SourceAI {
			aiIdx = append(aiIdx, i)
			aiNames = append(aiNames, r.Name)
			continue
		}
		records[i].Tagline = s.taglines.Pick(ind)
	}
	if len(aiNames) == 0 {
		return
	}
	lines := s.ai.GenerateTaglines(ctx, aiNames, ind)
	for k, i := range aiIdx {
		if k < len(lines) && lines[k] != "" {
			records[i].Tagline = lines[k]
		} else {
			records[i].Tagline = s.taglines.Pick(ind)
		}
	}
}

// mergeNames lists model names first, then rule names, dropping case-insensitive duplicates.
func mergeNames(aiNames, ruleNames []string) []types.NameRecord {
	seen := make(map[string]bool, len(aiNames)+len(ruleNames))
	out := make([]types.NameRecord, 0, len(aiNames)+len(ruleNames))
	add := func(name, source string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, types.NameRecord{Name: name, Source: source})
	}
	for _, n := range aiNames {
		add(n, types.SourceAI)
	}
	for _, n := range ruleNames {
		add(n, types.SourceRuleBased)
	}
	return out
}
