// Package planner turns a natural-language project description into a plan of
// epics, stories and tasks. Every plan a Generator returns has been validated:
// ids are unique and every story and task reference resolves.
package planner

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Generator produces a validated plan. Failures are *domain.PlanGenerationError.
// Callers reject blank descriptions before calling.
type Generator interface {
	GeneratePlan(ctx context.Context, description string) (*domain.Plan, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, description string) (*domain.Plan, error)

func (f GeneratorFunc) GeneratePlan(ctx context.Context, description string) (*domain.Plan, error) {
	return f(ctx, description)
}

func planError(err error) error {
	return &domain.PlanGenerationError{Err: err}
}
