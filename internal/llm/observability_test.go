package llm

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: deadline", ErrTimeout), "TIMEOUT"},
		{ErrProviderUnavailable, "UNAVAILABLE"},
		{fmt.Errorf("%w: bad request", ErrRetryExhausted), "RETRY_EXHAUSTED"},
		{fmt.Errorf("%w for gemini", ErrMissingAPIKey), "MISSING_KEY"},
		{fmt.Errorf("boom"), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorCode(tt.err), "%v", tt.err)
	}
}

func TestLogObserver_WritesCallMetadata(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{
		Task:      TaskPlan,
		Provider:  domain.ProviderOpenAI,
		Model:     "gpt-4o-mini",
		Attempts:  2,
		LatencyMs: 150,
		ErrorCode: "TIMEOUT",
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "provider=openai")
	assert.Contains(t, out, "attempts=2")
	assert.Contains(t, out, "status=err:TIMEOUT")
}
