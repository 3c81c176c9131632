package ainame

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/namesmith/internal/llm"
)

// fakeClient answers Generate from a function and records every request.
type fakeClient struct {
	provider llm.Provider
	respond  func(req llm.Request) (string, error)
	// gate, when set, holds each call until it is closed or ctx ends.
	gate    chan struct{}
	started chan struct{}

	mu       sync.Mutex
	requests []llm.Request
	closed   bool
}

func (f *fakeClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.gate != nil {
		if f.started != nil {
			select {
			case f.started <- struct{}{}:
			default:
			}
		}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.respond(req)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Provider() llm.Provider        { return f.provider }
func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func replyWith(text string) func(llm.Request) (string, error) {
	return func(llm.Request) (string, error) { return text, nil }
}

func failWith(msg string) func(llm.Request) (string, error) {
	return func(llm.Request) (string, error) { return "", errors.New(msg) }
}

// taglineReply answers tagline prompts with a quoted slogan naming the business.
func taglineReply(req llm.Request) (string, error) {
	start := strings.Index(req.Prompt, "'")
	end := strings.LastIndex(req.Prompt, "'")
	if start < 0 || end <= start {
		return "", errors.New("no name in prompt")
	}
	name := req.Prompt[start+1 : end]
	if name == "Broken" {
		return "", errors.New("model overloaded")
	}
	return `"` + name + ` rises"`, nil
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]string
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names, ok := m.items[key]
	return names, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, names []string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = names
	m.sets++
	return nil
}
