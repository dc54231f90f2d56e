package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/planner"
	"github.com/alexanderramin/planboard/internal/store"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func fixedPlan() planner.Generator {
	return planner.GeneratorFunc(func(context.Context, string) (*domain.Plan, error) {
		plan := testutil.NewTestPlan()
		return &plan, nil
	})
}

func TestCreateProjectPlan_InstallsPlan(t *testing.T) {
	st := store.New()
	obs := &recordingObserver{}
	svc := NewPlanService(fixedPlan(), st, time.Second, obs)

	project, err := svc.CreateProjectPlan(context.Background(), ProjectInfo{Description: "  an online shop  "})
	require.NoError(t, err)

	assert.Equal(t, DefaultProjectName, project.Name)
	assert.Equal(t, "an online shop", project.Description)
	assert.Equal(t, domain.MustParseDate("2024-02-01"), project.StartDate)
	assert.Equal(t, domain.MustParseDate("2024-02-15"), project.EndDate)
	assert.NotEmpty(t, project.ID)

	state := st.State()
	require.True(t, state.HasPlan())
	assert.Equal(t, *project, *state.Project)
	assert.Len(t, state.Tasks, 1)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-project-plan", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Fields["tasks"])
}

func TestCreateProjectPlan_RejectsBlankDescription(t *testing.T) {
	called := false
	gen := planner.GeneratorFunc(func(context.Context, string) (*domain.Plan, error) {
		called = true
		return nil, nil
	})
	svc := NewPlanService(gen, store.New(), 0)

	_, err := svc.CreateProjectPlan(context.Background(), ProjectInfo{Description: " \n\t"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)
}

func TestCreateProjectPlan_FailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	st := store.New()
	_, err := NewPlanService(fixedPlan(), st, 0).CreateProjectPlan(ctx, ProjectInfo{Description: "first"})
	require.NoError(t, err)
	before := st.State()

	failing := planner.GeneratorFunc(func(context.Context, string) (*domain.Plan, error) {
		return nil, errors.New("service unavailable")
	})
	_, err = NewPlanService(failing, st, 0).CreateProjectPlan(ctx, ProjectInfo{Description: "second"})

	var perr *domain.PlanGenerationError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, before, st.State())
}

func TestCreateProjectPlan_Timeout(t *testing.T) {
	st := store.New()
	slow := &planner.StubGenerator{Delay: time.Second}
	svc := NewPlanService(slow, st, 20*time.Millisecond)

	_, err := svc.CreateProjectPlan(context.Background(), ProjectInfo{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrPlanGeneration)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, st.HasPlan())
}

func TestCreateProjectPlan_Cancelled(t *testing.T) {
	st := store.New()
	ctx, cancel := context.WithCancel(context.Background())
	gen := planner.GeneratorFunc(func(context.Context, string) (*domain.Plan, error) {
		cancel()
		plan := testutil.NewTestPlan()
		return &plan, nil
	})

	_, err := NewPlanService(gen, st, 0).CreateProjectPlan(ctx, ProjectInfo{Description: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, st.HasPlan(), "late plan is discarded")
}
