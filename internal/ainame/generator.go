// Package ainame is the optional language-model name source. It asks a
// primary model (and, when configured, a secondary one) for candidate names
// and per-name taglines. Every failure is reported to the caller, which
// treats this source as best effort.
package ainame

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/namesmith/internal/industry"
	"github.com/jonathan/namesmith/internal/llm"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/naming"
	"github.com/jonathan/namesmith/internal/prompts"
)

const (
	DefaultNameTimeout    = 30 * time.Second
	DefaultTaglineTimeout = 15 * time.Second
	DefaultCacheTTL       = time.Hour

	promptKeywords     = 5
	taglineConcurrency = 4
)

// Options configures a Generator. Zero values use the defaults above.
type Options struct {
	Secondary      llm.Client
	Cache          Cache
	Logger         *slog.Logger
	NameTimeout    time.Duration
	TaglineTimeout time.Duration
	CacheTTL       time.Duration
}

// Generator produces names and taglines with language models.
type Generator struct {
	primary   llm.Client
	secondary llm.Client
	cache     Cache
	log       *slog.Logger
	group     singleflight.Group

	nameTimeout    time.Duration
	taglineTimeout time.Duration
	cacheTTL       time.Duration
}

// New returns a Generator. primary may be nil, in which case the generator
// reports itself unavailable.
func New(primary llm.Client, opts Options) *Generator {
	g := &Generator{
		primary:        primary,
		secondary:      opts.Secondary,
		cache:          opts.Cache,
		log:            opts.Logger,
		nameTimeout:    opts.NameTimeout,
		taglineTimeout: opts.TaglineTimeout,
		cacheTTL:       opts.CacheTTL,
	}
	if g.primary == nil && g.secondary != nil {
		g.primary, g.secondary = g.secondary, nil
	}
	if g.log == nil {
		g.log = logging.Discard()
	}
	if g.nameTimeout <= 0 {
		g.nameTimeout = DefaultNameTimeout
	}
	if g.taglineTimeout <= 0 {
		g.taglineTimeout = DefaultTaglineTimeout
	}
	if g.cacheTTL <= 0 {
		g.cacheTTL = DefaultCacheTTL
	}
	return g
}

// Available reports whether at least one model is configured.
func (g *Generator) Available() bool {
	return g != nil && g.primary != nil
}

// Providers lists the configured backends, primary first.
func (g *Generator) Providers() []llm.Provider {
	if !g.Available() {
		return nil
	}
	out := []llm.Provider{g.primary.Provider()}
	if g.secondary != nil {
		out = append(out, g.secondary.Provider())
	}
	return out
}

// GenerateNames asks the configured models for up to count names built
// around the first keywords. With two models the primary supplies half and
// the secondary the remainder. Results are deduplicated ignoring case and
// cached when a Cache is configured; concurrent identical requests share one
// model call.
func (g *Generator) GenerateNames(ctx context.Context, keywords []string, tone naming.Tone, count int) ([]string, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}
	if count <= 0 || len(keywords) == 0 {
		return []string{}, nil
	}
	if len(keywords) > promptKeywords {
		keywords = keywords[:promptKeywords]
	}

	key := cacheKey(g.providerKey(), string(tone), count, keywords)
	if names, ok := g.cached(ctx, key); ok {
		return names, nil
	}

	// The shared call outlives any one caller; askNames bounds it with
	// nameTimeout.
	shared := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (interface{}, error) {
		if names, ok := g.cached(shared, key); ok {
			return names, nil
		}
		names, err := g.generate(shared, keywords, tone, count)
		if err != nil {
			return nil, err
		}
		if g.cache != nil && len(names) > 0 {
			if err := g.cache.Set(shared, key, names, g.cacheTTL); err != nil {
				g.log.Warn("ai name cache write failed", logging.Err(err))
			}
		}
		return names, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	names := res.Val.([]string)
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

func (g *Generator) generate(ctx context.Context, keywords []string, tone naming.Tone, count int) ([]string, error) {
	primaryCount := count
	if g.secondary != nil {
		primaryCount = max(count/2, 1)
	}

	names, primaryErr := g.askNames(ctx, g.primary, keywords, tone, primaryCount, false)
	if primaryErr != nil {
		if g.secondary == nil {
			return nil, primaryErr
		}
		g.log.Warn("primary name source failed", slog.String("provider", string(g.primary.Provider())), logging.Err(primaryErr))
	}

	if remaining := count - len(names); remaining > 0 && g.secondary != nil {
		more, err := g.askNames(ctx, g.secondary, keywords, tone, remaining, true)
		if err != nil {
			if primaryErr != nil {
				return nil, primaryErr
			}
			g.log.Warn("secondary name source failed", slog.String("provider", string(g.secondary.Provider())), logging.Err(err))
		}
		names = append(names, more...)
	}

	names = dedupe(names)
	if len(names) > count {
		names = names[:count]
	}
	g.log.Debug("ai names generated", slog.Int("requested", count), slog.Int("returned", len(names)))
	return names, nil
}

func (g *Generator) askNames(ctx context.Context, client llm.Client, keywords []string, tone naming.Tone, count int, strict bool) ([]string, error) {
	provider := client.Provider()
	system, err := prompts.Get(prompts.NamingFile, "names-system")
	if err != nil {
		return nil, &ProviderError{Provider: provider, Message: "prompt unavailable", Cause: err}
	}
	user, err := prompts.Render(prompts.NamingFile, "names-user", map[string]string{
		"Count":           fmt.Sprint(count),
		"Keywords":        strings.Join(keywords, ", "),
		"ToneDescription": tone.Description(),
	})
	if err != nil {
		return nil, &ProviderError{Provider: provider, Message: "prompt unavailable", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.nameTimeout)
	defer cancel()
	reply, err := client.Generate(ctx, llm.Request{
		System:      system,
		Prompt:      user,
		Tier:        llm.TierStandard,
		Temperature: 0.8,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, &ProviderError{Provider: provider, Message: "name request failed", Cause: err}
	}

	candidates := ParseNameList(reply)
	if strict {
		cleaned := candidates[:0]
		for _, c := range candidates {
			if name, ok := CleanGeneratedName(c); ok {
				cleaned = append(cleaned, name)
			}
		}
		candidates = cleaned
	}
	if len(candidates) == 0 {
		return nil, &ProviderError{Provider: provider, Message: "reply contained no usable names"}
	}
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

// GenerateTaglines returns one tagline per name, asking the primary model
// once per name. Without a model every tagline is "Innovation in <industry>";
// a failed call yields "Excellence in <industry>" for that name.
func (g *Generator) GenerateTaglines(ctx context.Context, names []string, ind industry.Industry) []string {
	out := make([]string, len(names))
	if !g.Available() {
		for i := range out {
			out[i] = fmt.Sprintf("Innovation in %s", ind)
		}
		return out
	}

	system, err := prompts.Get(prompts.NamingFile, "tagline-system")
	if err != nil {
		g.log.Warn("tagline prompt unavailable", logging.Err(err))
		system = ""
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(taglineConcurrency)
	for i, name := range names {
		eg.Go(func() error {
			tagline, err := g.askTagline(ctx, system, name, ind)
			if err != nil {
				g.log.Debug("tagline request failed", slog.String("name", name), logging.Err(err))
				tagline = fmt.Sprintf("Excellence in %s", ind)
			}
			out[i] = tagline
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

func (g *Generator) askTagline(ctx context.Context, system, name string, ind industry.Industry) (string, error) {
	user, err := prompts.Render(prompts.NamingFile, "tagline-user", map[string]string{
		"Industry": string(ind),
		"Name":     name,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.taglineTimeout)
	defer cancel()
	reply, err := g.primary.Generate(ctx, llm.Request{
		System:      system,
		Prompt:      user,
		Tier:        llm.TierLite,
		Temperature: 0.7,
		MaxTokens:   50,
	})
	if err != nil {
		return "", &ProviderError{Provider: g.primary.Provider(), Message: "tagline request failed", Cause: err}
	}
	tagline := cleanTagline(reply)
	if tagline == "" {
		return "", &ProviderError{Provider: g.primary.Provider(), Message: "empty tagline"}
	}
	return tagline, nil
}

func (g *Generator) cached(ctx context.Context, key string) ([]string, bool) {
	if g.cache == nil {
		return nil, false
	}
	names, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.log.Warn("ai name cache read failed", logging.Err(err))
		return nil, false
	}
	return names, ok && len(names) > 0
}

func (g *Generator) providerKey() string {
	parts := make([]string, 0, 2)
	for _, p := range g.Providers() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, "+")
}

// Close releases the model clients.
func (g *Generator) Close() error {
	if g == nil {
		return nil
	}
	var firstErr error
	for _, c := range []llm.Client{g.primary, g.secondary} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
