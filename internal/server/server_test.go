package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/namesmith/internal/generation"
	"github.com/jonathan/namesmith/internal/server/middleware"
	"github.com/jonathan/namesmith/internal/server/ratelimit"
	"github.com/jonathan/namesmith/internal/types"
)

type fakeGenerator struct {
	mu       sync.Mutex
	requests []types.GenerateRequest
	err      error
	panicMsg string
	block    bool
	deadline time.Time
}

func (g *fakeGenerator) Run(ctx context.Context, req types.GenerateRequest, onProgress generation.ProgressCallback) (*types.GenerateResponse, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.deadline, _ = ctx.Deadline()
	g.mu.Unlock()

	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if g.panicMsg != "" {
		panic(g.panicMsg)
	}
	if onProgress != nil {
		onProgress(generation.ProgressEvent{Step: generation.StepKeywords, Message: "Extracted 2 keywords"})
		onProgress(generation.ProgressEvent{Step: generation.StepNames, Message: "Generated 2 names"})
	}
	if g.err != nil {
		return nil, g.err
	}
	return &types.GenerateResponse{
		Names: []types.NameRecord{
			{Name: "Galley Works", Tagline: "Taste the difference", ID: 1},
			{Name: "Prime Kitchen", Tagline: "Fresh every day", ID: 2},
		},
		Categories:        map[string][]string{"Short & Catchy": {"Galley Works"}},
		KeywordsExtracted: []string{"kitchen", "galley"},
		IndustryDetected:  "food",
		Tone:              "professional",
		TotalGenerated:    2,
		GenerationMethod:  types.MethodRuleBased,
		RequestID:         "req-1",
	}, nil
}

func (g *fakeGenerator) Features() types.Features {
	return types.Features{RuleBasedGeneration: true, NLPProcessing: true, CategoryFiltering: true, TaglineGeneration: true}
}

type fakeDomains struct{}

func (fakeDomains) Check(name string) *types.DomainCheckResponse {
	return &types.DomainCheckResponse{
		BusinessName:      name,
		DomainSuggestions: []string{"acme.com"},
		Availability:      map[string]bool{"acme.com": true},
		Note:              "demo",
	}
}

type fakeFavorites struct {
	mu    sync.Mutex
	saved []types.Favorite
	err   error
}

func (f *fakeFavorites) SaveFavorite(ctx context.Context, clientID, name, tagline string) (*types.Favorite, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fav := types.Favorite{ID: uuid.New(), ClientID: clientID, Name: name, Tagline: tagline, CreatedAt: time.Now()}
	f.saved = append(f.saved, fav)
	return &fav, nil
}

func (f *fakeFavorites) ListFavorites(ctx context.Context, clientID string, limit int) ([]types.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []types.Favorite{}
	for _, fav := range f.saved {
		if clientID == "" || fav.ClientID == clientID {
			out = append(out, fav)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFavorites) GetFavorite(ctx context.Context, id uuid.UUID) (*types.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.saved {
		if fav.ID == id {
			return &fav, nil
		}
	}
	return nil, nil
}

func (f *fakeFavorites) DeleteFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fav := range f.saved {
		if fav.ID == id {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestServer(t *testing.T, gen Generator, favorites FavoriteStore, rate *ratelimit.Config) *Server {
	t.Helper()
	if rate == nil {
		rate = &ratelimit.Config{Enabled: false}
	}
	s, err := New(Config{Generator: gen, Domains: fakeDomains{}, Favorites: favorites, RateLimit: rate})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{Domains: fakeDomains{}})
	assert.Error(t, err)
	_, err = New(Config{Generator: &fakeGenerator{}})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "Business Name Generator API is running!", body["message"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestFeatures(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	var body types.Features
	decodeBody(t, do(t, s, http.MethodGet, "/features", ""), &body)
	assert.True(t, body.RuleBasedGeneration)
	assert.False(t, body.AIGeneration)
	assert.False(t, body.FavoritesStorage)

	s = newTestServer(t, &fakeGenerator{}, &fakeFavorites{}, nil)
	decodeBody(t, do(t, s, http.MethodGet, "/features", ""), &body)
	assert.True(t, body.FavoritesStorage)
}

func TestGenerate(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(t, gen, nil, nil)

	rec := do(t, s, http.MethodPost, "/generate", `{"input_text":"gourmet kitchen","tone":"playful","count":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body types.GenerateResponse
	decodeBody(t, rec, &body)
	assert.Len(t, body.Names, 2)
	assert.Equal(t, "food", body.IndustryDetected)

	require.Len(t, gen.requests, 1)
	assert.Equal(t, "gourmet kitchen", gen.requests[0].InputText)
	assert.Equal(t, "playful", gen.requests[0].Tone)
	assert.Equal(t, 2, gen.requests[0].Count)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid json", `{"input_text":`, nil, http.StatusBadRequest, "Invalid JSON body"},
		{"empty body", ``, nil, http.StatusBadRequest, "Request body is required"},
		{"input error", `{"input_text":""}`, &generation.InputError{Message: generation.MsgNoInput}, http.StatusBadRequest, generation.MsgNoInput},
		{"internal error", `{"input_text":"x"}`, errors.New("db exploded"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeGenerator{err: tt.err}, nil, nil)
			rec := do(t, s, http.MethodPost, "/generate", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body types.ErrorResponse
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	gen := &fakeGenerator{block: true}
	s, err := New(Config{
		Generator:       gen,
		Domains:         fakeDomains{},
		RateLimit:       &ratelimit.Config{Enabled: false},
		GenerateTimeout: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	start := time.Now()
	rec := do(t, s, http.MethodPost, "/generate", `{"input_text":"bakery"}`)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)

	var body types.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Generation timed out", body.Error)
	assert.False(t, gen.deadline.IsZero())
}

func TestGenerate_DefaultTimeoutBoundsContext(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(t, gen, nil, nil)

	do(t, s, http.MethodPost, "/generate", `{"input_text":"bakery"}`)
	require.False(t, gen.deadline.IsZero())
	assert.WithinDuration(t, time.Now().Add(60*time.Second), gen.deadline, 5*time.Second)
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	rec := do(t, s, http.MethodGet, "/generate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGenerate_PanicRecovered(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{panicMsg: "boom"}, nil, nil)
	rec := do(t, s, http.MethodPost, "/generate", `{"input_text":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestGenerateStream(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate/stream", "application/json", strings.NewReader(`{"input_text":"gourmet kitchen"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var events []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
			events = append(events, name)
		}
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{eventProgress, eventProgress, eventResult}, events)
}

func TestGenerateStream_ErrorEvent(t *testing.T) {
	gen := &fakeGenerator{err: &generation.InputError{Message: generation.MsgNoKeywords}}
	s := newTestServer(t, gen, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate/stream", "application/json", strings.NewReader(`{"input_text":"the and"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var last string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if data, ok := strings.CutPrefix(scanner.Text(), "data: "); ok {
			last = data
		}
	}
	var payload struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(last), &payload))
	assert.Equal(t, generation.MsgNoKeywords, payload.Error)
	assert.Equal(t, http.StatusBadRequest, payload.Status)
}

func TestGenerateStream_ValidationBeforeStreaming(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	rec := do(t, s, http.MethodPost, "/generate/stream", `{"input_text":"x","count":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body types.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "invalid request: Count must be at least 0", body.Error)
}

func TestCheckDomain(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)

	rec := do(t, s, http.MethodPost, "/check-domain", `{"business_name":"  Acme  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body types.DomainCheckResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Acme", body.BusinessName)
	assert.Equal(t, []string{"acme.com"}, body.DomainSuggestions)

	rec = do(t, s, http.MethodPost, "/check-domain", `{"business_name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody types.ErrorResponse
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "Business name is required", errBody.Error)
}

func TestSaveFavorite_WithoutStore(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	rec := do(t, s, http.MethodPost, "/save_favorite", `{"name":"Galley Works","tagline":"Taste the difference"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body types.SaveFavoriteResponse
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "Favorite saved!", body.Message)
	assert.Nil(t, body.Favorite)

	rec = do(t, s, http.MethodGet, "/favorites", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSaveFavorite_Validation(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, &fakeFavorites{}, nil)
	rec := do(t, s, http.MethodPost, "/save_favorite", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body types.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "invalid request: Name is required", body.Error)
}

func TestFavoritesLifecycle(t *testing.T) {
	store := &fakeFavorites{}
	s := newTestServer(t, &fakeGenerator{}, store, nil)

	rec := do(t, s, http.MethodPost, "/save_favorite", `{"name":"Galley Works","tagline":"Taste the difference","client_id":"c1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var saved types.SaveFavoriteResponse
	decodeBody(t, rec, &saved)
	require.NotNil(t, saved.Favorite)
	assert.Equal(t, "Galley Works", saved.Favorite.Name)

	do(t, s, http.MethodPost, "/save_favorite", `{"name":"Other","client_id":"c2"}`)

	var list types.FavoritesResponse
	decodeBody(t, do(t, s, http.MethodGet, "/favorites?client_id=c1", ""), &list)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Galley Works", list.Favorites[0].Name)

	var got types.Favorite
	decodeBody(t, do(t, s, http.MethodGet, "/favorites/"+saved.Favorite.ID.String(), ""), &got)
	assert.Equal(t, "Taste the difference", got.Tagline)

	rec = do(t, s, http.MethodDelete, "/favorites/"+saved.Favorite.ID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/favorites/"+saved.Favorite.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/favorites/"+saved.Favorite.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/favorites/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/favorites?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveFavorite_StoreError(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, &fakeFavorites{err: errors.New("connection refused")}, nil)
	rec := do(t, s, http.MethodPost, "/save_favorite", `{"name":"Galley Works"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	rec := do(t, s, http.MethodOptions, "/generate", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRateLimit(t *testing.T) {
	rate := &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/generate", Method: "POST", Limit: 2, Window: time.Minute},
		},
		Unlimited: ratelimit.DefaultUnlimited(),
	}
	s := newTestServer(t, &fakeGenerator{}, nil, rate)

	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodPost, "/generate", `{"input_text":"x"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := do(t, s, http.MethodPost, "/generate", `{"input_text":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "rate_limit_exceeded", body["error"])

	rec = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, nil, nil)
	do(t, s, http.MethodPost, "/generate", `{"input_text":"gourmet kitchen"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `namesmith_http_requests_total{method="POST",route="POST /generate",status="200"} 1`)
	assert.Contains(t, body, `namesmith_names_generated_total{method="Rule-based"} 2`)
	assert.Contains(t, body, `namesmith_generations_total{industry="food"} 1`)
}
