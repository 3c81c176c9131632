package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/namesmith/internal/ainame"
	"github.com/jonathan/namesmith/internal/config"
	"github.com/jonathan/namesmith/internal/generation"
	"github.com/jonathan/namesmith/internal/lexicon"
	"github.com/jonathan/namesmith/internal/llm"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/vocabulary"
)

// runtime holds the generation service and everything that must be closed with it.
type runtime struct {
	service *generation.Service
	ai      *ainame.Generator
	redis   *redis.Client
}

func (r *runtime) Close() {
	if r.ai != nil {
		_ = r.ai.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
}

// buildRuntime wires the language resources, the optional model clients and
// the Redis cache into a generation service. Redis and model failures are
// logged and leave the service rule-based only.
func buildRuntime(ctx context.Context, cfg config.Config, env *config.Env, log *slog.Logger, favorites bool) (*runtime, error) {
	vocab, err := loadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return nil, err
	}

	var lexOpts lexicon.Options
	if cfg.ThesaurusPath != "" {
		th, err := lexicon.LoadThesaurus(cfg.ThesaurusPath)
		if err != nil {
			return nil, err
		}
		lexOpts.Thesaurus = th
	}
	expander, err := lexicon.New(lexOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to load language resources: %w", err)
	}

	rt := &runtime{}
	opts := generation.Options{
		Vocabulary:       vocab,
		Expander:         expander,
		Logger:           log,
		DefaultCount:     env.DefaultCount,
		MaxCount:         env.MaxCount,
		FavoritesStorage: favorites,
	}

	primary, secondary := buildClients(ctx, cfg, env, log)
	if primary != nil || secondary != nil {
		aiOpts := ainame.Options{
			Secondary:   secondary,
			Logger:      log,
			NameTimeout: env.AITimeout,
			CacheTTL:    env.AICacheTTL,
		}
		if cfg.RedisURL != "" {
			client, err := ainame.ConnectRedis(ctx, cfg.RedisURL)
			if err != nil {
				log.Warn("AI name cache disabled", logging.Err(err))
			} else {
				rt.redis = client
				aiOpts.Cache = ainame.NewRedisCache(client)
			}
		}
		rt.ai = ainame.New(primary, aiOpts)
		opts.AI = rt.ai
	}

	rt.service, err = generation.New(opts)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func loadVocabulary(path string) (*vocabulary.Vocabulary, error) {
	if path == "" {
		return vocabulary.Default()
	}
	return vocabulary.Load(path)
}

// buildClients returns the client for the configured provider and, when a key
// for the other provider is present, a secondary client.
func buildClients(ctx context.Context, cfg config.Config, env *config.Env, log *slog.Logger) (llm.Client, llm.Client) {
	keys := map[llm.Provider]string{
		llm.ProviderGemini: cfg.APIKey,
		llm.ProviderOpenAI: cfg.OpenAIAPIKey,
	}
	first := llm.ParseProvider(cfg.Provider)
	second := llm.ProviderOpenAI
	if first == llm.ProviderOpenAI {
		second = llm.ProviderGemini
	}

	newClient := func(p llm.Provider) llm.Client {
		key := keys[p]
		if key == "" {
			return nil
		}
		llmCfg := llm.DefaultConfig(p)
		if p == llm.ProviderOpenAI && env.OpenAIModel != "" {
			llmCfg = llmCfg.WithModel(llm.TierStandard, env.OpenAIModel).WithModel(llm.TierLite, env.OpenAIModel)
		}
		client, err := llm.NewClient(ctx, llmCfg, key)
		if err != nil {
			log.Warn("LLM provider disabled", slog.String("provider", string(p)), logging.Err(err))
			return nil
		}
		return client
	}
	return newClient(first), newClient(second)
}
