package llm

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/planboard/internal/domain"
)

// LLMCallEvent records metadata about a single LLM invocation. It never
// carries the prompt, the response or the api key.
type LLMCallEvent struct {
	Task      TaskType
	Provider  domain.Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Status is "ok" or "err:<code>".
func (e LLMCallEvent) Status() string {
	if e.Success {
		return "ok"
	}
	return "err:" + e.ErrorCode
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver records each call as an llm_call log line.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	o.logger.Log(context.Background(), level, "llm_call",
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
		"status", event.Status(),
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
