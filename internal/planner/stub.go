package planner

import (
	"context"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// StubGenerator returns a fixed starter plan without calling any model.
type StubGenerator struct {
	// Delay simulates model latency. The wait honours ctx.
	Delay time.Duration
}

func NewStubGenerator() *StubGenerator {
	return &StubGenerator{}
}

func (g *StubGenerator) GeneratePlan(ctx context.Context, _ string) (*domain.Plan, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, planError(ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, planError(err)
	}
	return checked(StarterPlan())
}

// StarterPlan is the plan StubGenerator hands out.
func StarterPlan() *domain.Plan {
	return &domain.Plan{
		Epics: []domain.Epic{{
			ID:          "epic1",
			Title:       "Project Setup",
			Description: "Initial project setup and planning",
			StartDate:   domain.NewDate(2024, time.February, 1),
			EndDate:     domain.NewDate(2024, time.February, 15),
		}},
		Stories: []domain.Story{{
			ID:          "story1",
			EpicID:      "epic1",
			Title:       "Environment Setup",
			Description: "Set up development environment",
			Points:      5,
		}},
		Tasks: []domain.Task{{
			ID:          "task1",
			StoryID:     "story1",
			Title:       "Install Dependencies",
			Description: "Install and configure project dependencies",
			Assignee:    "developer1",
			Status:      domain.StatusTodo,
			Priority:    domain.PriorityHigh,
			StartDate:   domain.NewDate(2024, time.February, 1),
			EndDate:     domain.NewDate(2024, time.February, 2),
		}},
	}
}
