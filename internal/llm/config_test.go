package llm

import (
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_PlanTaskTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, 30000, cfg.TaskTimeout("unknown"))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PLANBOARD_LLM_TIMEOUT_MS", "9000")
	t.Setenv("PLANBOARD_LLM_MAX_RETRIES", "3")
	t.Setenv("PLANBOARD_LLM_PLAN_TIMEOUT_MS", "15000")
	t.Setenv("PLANBOARD_LLM_GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("PLANBOARD_LLM_OPENAI_ENDPOINT", "http://localhost:8080/v1")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, "gemini-2.0-flash", cfg.Providers[domain.ProviderGemini].Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Providers[domain.ProviderOpenAI].Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Providers[domain.ProviderOpenAI].Model)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("PLANBOARD_LLM_PLAN_TIMEOUT_MS", "not-a-number")
	t.Setenv("PLANBOARD_LLM_MAX_RETRIES", "-2")

	cfg := LoadConfig()

	assert.Equal(t, 45000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, 1, cfg.MaxRetries)
}
