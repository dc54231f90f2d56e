package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/planner"
	"github.com/alexanderramin/planboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_StartsWithGreeting(t *testing.T) {
	c := NewConversation()
	require.Equal(t, 1, c.Len())
	assert.Equal(t, SenderBot, c.Last().From)
	assert.Equal(t, GreetingMessage, c.Last().Content)
}

func TestIntake_SuccessKeepsTranscript(t *testing.T) {
	st := store.New()
	intake := NewIntakeService(NewPlanService(fixedPlan(), st, 0))
	conv := NewConversation()

	next, project, err := intake.Submit(context.Background(), conv, "Build a CRM")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "Build a CRM", project.Description)

	msgs := next.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, Message{From: SenderUser, Content: "Build a CRM"}, msgs[1])
	assert.Equal(t, ProcessingMessage, msgs[2].Content)
	assert.Equal(t, 1, conv.Len(), "input conversation is unchanged")
	assert.True(t, st.HasPlan())
}

func TestIntake_FailureAppendsApology(t *testing.T) {
	st := store.New()
	failing := planner.GeneratorFunc(func(context.Context, string) (*domain.Plan, error) {
		return nil, errors.New("boom")
	})
	intake := NewIntakeService(NewPlanService(failing, st, 0))

	next, project, err := intake.Submit(context.Background(), NewConversation(), "Build a CRM")
	assert.ErrorIs(t, err, domain.ErrPlanGeneration)
	assert.Nil(t, project)
	assert.Equal(t, 4, next.Len())
	assert.Equal(t, FailureMessage, next.Last().Content)
	assert.False(t, st.HasPlan())
}

func TestIntake_BlankInputIgnored(t *testing.T) {
	intake := NewIntakeService(NewPlanService(fixedPlan(), store.New(), 0))
	conv := NewConversation()

	next, _, err := intake.Submit(context.Background(), conv, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, conv.Messages(), next.Messages())
}
