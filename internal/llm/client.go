package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// wireCodec turns a GenerateRequest into a provider HTTP request and decodes
// the provider's response body.
type wireCodec interface {
	newRequest(ctx context.Context, pc ProviderConfig, apiKey string, call wireCall) (*http.Request, error)
	decode(body []byte) (text string, model string, err error)
}

// wireCall is a GenerateRequest with task defaults applied.
type wireCall struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

var codecs = map[domain.Provider]wireCodec{
	domain.ProviderOpenAI: openAICodec{},
	domain.ProviderGemini: geminiCodec{},
}

// httpClient implements LLMClient against a hosted provider API.
type httpClient struct {
	cfg      LLMConfig
	provider domain.Provider
	apiKey   string
	codec    wireCodec
	http     *http.Client
	observer Observer
}

// NewClient creates an LLMClient for the provider and key in ai.
func NewClient(cfg LLMConfig, ai domain.AIConfig, observer Observer) (LLMClient, error) {
	codec, ok := codecs[ai.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, ai.Provider)
	}
	if ai.APIKey == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingAPIKey, ai.Provider)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg:      cfg,
		provider: ai.Provider,
		apiKey:   ai.APIKey,
		codec:    codec,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}, nil
}

func (c *httpClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	call := wireCall{
		System:      req.SystemPrompt,
		Prompt:      req.UserPrompt,
		Temperature: domain.ValueOr(req.Temperature, taskCfg.Temperature),
		MaxTokens:   domain.ValueOr(req.MaxTokens, taskCfg.MaxTokens),
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	pc := c.cfg.Providers[c.provider]

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	made := 0

	for i := 0; i < attempts; i++ {
		made++
		text, model, err := c.doRequest(ctx, pc, call)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  c.provider,
				Model:     pc.Model,
				LatencyMs: latency,
				Attempts:  made,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      text,
				Model:     domain.CoalesceStr(model, pc.Model),
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	switch {
	case ctx.Err() != nil:
		lastErr = fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	case isConnectionError(lastErr):
		lastErr = ErrProviderUnavailable
	default:
		lastErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.provider,
		Model:     pc.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  made,
		Success:   false,
		ErrorCode: errorCode(lastErr),
	})
	return nil, lastErr
}

func (c *httpClient) doRequest(ctx context.Context, pc ProviderConfig, call wireCall) (string, string, error) {
	httpReq, err := c.codec.newRequest(ctx, pc, c.apiKey, call)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%s returned status %d: %s", c.provider, httpResp.StatusCode, truncate(string(respBody), 512))
	}

	return c.codec.decode(respBody)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
