package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(provider domain.Provider, endpoint string) LLMConfig {
	cfg := DefaultConfig()
	pc := cfg.Providers[provider]
	pc.Endpoint = endpoint
	cfg.Providers[provider] = pc
	return cfg
}

func openAIKey() domain.AIConfig {
	return domain.AIConfig{Provider: domain.ProviderOpenAI, APIKey: "sk-test"}
}

func writeOpenAI(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func TestNewClient_RequiresKeyAndKnownProvider(t *testing.T) {
	_, err := NewClient(DefaultConfig(), domain.AIConfig{Provider: domain.ProviderOpenAI}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(DefaultConfig(), domain.AIConfig{Provider: "claude", APIKey: "k"}, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "system prompt", req.Messages[0].Content)
		assert.Equal(t, "user prompt", req.Messages[1].Content)
		assert.Equal(t, 4096, req.MaxTokens)

		writeOpenAI(w, `{"epics":[]}`)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(domain.ProviderOpenAI, srv.URL), openAIKey(), NoopObserver{})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskPlan,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"epics":[]}`, resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "sys", req.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)

		json.NewEncoder(w).Encode(map[string]any{
			"modelVersion": "gemini-1.5-flash-002",
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": `{"a":`}, {"text": `1}`}}}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(domain.ProviderGemini, srv.URL),
		domain.AIConfig{Provider: domain.ProviderGemini, APIKey: "g-key"}, NoopObserver{})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskPlan,
		SystemPrompt: "sys",
		UserPrompt:   "plan it",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, resp.Text)
	assert.Equal(t, "gemini-1.5-flash-002", resp.Model)
}

func TestClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(domain.ProviderOpenAI, srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskPlan: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	client, err := NewClient(cfg, openAIKey(), NoopObserver{})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlan, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Generate_CallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(domain.ProviderOpenAI, srv.URL), openAIKey(), NoopObserver{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = client.Generate(ctx, GenerateRequest{Task: TaskPlan, UserPrompt: "test"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig(domain.ProviderOpenAI, "http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client, err := NewClient(cfg, openAIKey(), NoopObserver{})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlan, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestClient_Generate_RetryOnTransientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		writeOpenAI(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(domain.ProviderOpenAI, srv.URL)
	cfg.MaxRetries = 1

	var captured LLMCallEvent
	client, err := NewClient(cfg, openAIKey(), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskPlan, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
	assert.True(t, captured.Success)
	assert.Equal(t, 2, captured.Attempts)
	assert.Equal(t, domain.ProviderOpenAI, captured.Provider)
}

func TestClient_Generate_ServerErrorExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	cfg := testConfig(domain.ProviderOpenAI, srv.URL)
	cfg.MaxRetries = 0

	var captured LLMCallEvent
	client, err := NewClient(cfg, openAIKey(), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlan, UserPrompt: "test"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.NotContains(t, err.Error(), "sk-test")
	assert.False(t, captured.Success)
	assert.Equal(t, "RETRY_EXHAUSTED", captured.ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
