package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/llm"
)

// ClientFactory builds an LLM client for the current provider and key.
type ClientFactory func(ai domain.AIConfig) (llm.LLMClient, error)

// AIConfigSource reads the provider and key at call time so settings changes
// apply to the next generation.
type AIConfigSource func() domain.AIConfig

type llmGenerator struct {
	newClient ClientFactory
	aiConfig  AIConfigSource
	now       func() time.Time
}

// NewLLMGenerator creates a Generator backed by the hosted model named in the
// project's aiConfig.
func NewLLMGenerator(cfg llm.LLMConfig, observer llm.Observer, aiConfig AIConfigSource) Generator {
	return newLLMGenerator(func(ai domain.AIConfig) (llm.LLMClient, error) {
		return llm.NewClient(cfg, ai, observer)
	}, aiConfig)
}

func newLLMGenerator(factory ClientFactory, aiConfig AIConfigSource) *llmGenerator {
	return &llmGenerator{newClient: factory, aiConfig: aiConfig, now: time.Now}
}

func (g *llmGenerator) GeneratePlan(ctx context.Context, description string) (*domain.Plan, error) {
	client, err := g.newClient(g.aiConfig())
	if err != nil {
		return nil, planError(err)
	}

	resp, err := client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   g.buildPrompt(description),
	})
	if err != nil {
		return nil, planError(fmt.Errorf("llm plan generation failed: %w", err))
	}

	plan, err := llm.ExtractJSON[domain.Plan](resp.Text, nil)
	if err != nil {
		return nil, planError(fmt.Errorf("failed to extract plan: %w", err))
	}
	normalize(&plan)
	return checked(&plan)
}

func (g *llmGenerator) buildPrompt(description string) string {
	var b strings.Builder
	b.WriteString("Today is ")
	b.WriteString(domain.DateOf(g.now()).String())
	b.WriteString(". Schedule work starting no earlier than today.\n\n")
	b.WriteString("Project description:\n")
	b.WriteString(strings.TrimSpace(description))
	return b.String()
}
