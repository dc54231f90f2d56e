package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/planner"
	"github.com/google/uuid"
)

// DefaultProjectName names projects the intake did not name.
const DefaultProjectName = "New Project"

type planService struct {
	generator planner.Generator
	store     PlanStore
	timeout   time.Duration
	observer  UseCaseObserver
	newID     func() string
}

// NewPlanService bounds each generation by timeout (0 disables the bound).
func NewPlanService(generator planner.Generator, store PlanStore, timeout time.Duration, observers ...UseCaseObserver) PlanService {
	return &planService{
		generator: generator,
		store:     store,
		timeout:   timeout,
		observer:  useCaseObserverOrNoop(observers),
		newID:     func() string { return uuid.New().String() },
	}
}

func (s *planService) CreateProjectPlan(ctx context.Context, info ProjectInfo) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-project-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	description := strings.TrimSpace(info.Description)
	if description == "" {
		return nil, domain.NewValidationError("description", "is required")
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	plan, err := s.generator.GeneratePlan(genCtx, description)
	if err == nil && plan == nil {
		err = errors.New("generator returned no plan")
	}
	if err == nil {
		// A plan that arrives after the deadline is discarded.
		err = genCtx.Err()
	}
	if err != nil {
		if !errors.Is(err, domain.ErrPlanGeneration) {
			err = &domain.PlanGenerationError{Err: err}
		}
		return nil, err
	}
	fields["epics"] = len(plan.Epics)
	fields["tasks"] = len(plan.Tasks)

	start, end := plan.DateSpan()
	p := domain.Project{
		ID:          s.newID(),
		Name:        domain.CoalesceStr(strings.TrimSpace(info.Name), DefaultProjectName),
		Description: description,
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.store.ReplacePlan(ctx, p, *plan); err != nil {
		return nil, err
	}
	return &p, nil
}
