package llm

import (
	"os"
	"strconv"

	"github.com/alexanderramin/planboard/internal/domain"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPlan TaskType = "plan"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// ProviderConfig locates one hosted model API.
type ProviderConfig struct {
	Endpoint string
	Model    string
}

// LLMConfig holds all configuration for the LLM subsystem. Credentials are
// not part of it; they live in the project's aiConfig.
type LLMConfig struct {
	LogCalls   bool
	TimeoutMs  int
	MaxRetries int
	Providers  map[domain.Provider]ProviderConfig
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:   false,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Providers: map[domain.Provider]ProviderConfig{
			domain.ProviderOpenAI: {Endpoint: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
			domain.ProviderGemini: {Endpoint: "https://generativelanguage.googleapis.com/v1beta", Model: "gemini-1.5-flash"},
		},
		Tasks: map[TaskType]TaskConfig{
			TaskPlan: {Temperature: 0.3, MaxTokens: 4096, TimeoutMs: 45000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("PLANBOARD_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLANBOARD_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANBOARD_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyProviderEnv(&cfg, domain.ProviderOpenAI, "PLANBOARD_LLM_OPENAI")
	applyProviderEnv(&cfg, domain.ProviderGemini, "PLANBOARD_LLM_GEMINI")
	applyTaskTimeoutEnv(&cfg, TaskPlan, "PLANBOARD_LLM_PLAN_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyProviderEnv(cfg *LLMConfig, p domain.Provider, prefix string) {
	pc := cfg.Providers[p]
	if v := os.Getenv(prefix + "_ENDPOINT"); v != "" {
		pc.Endpoint = v
	}
	if v := os.Getenv(prefix + "_MODEL"); v != "" {
		pc.Model = v
	}
	cfg.Providers[p] = pc
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
