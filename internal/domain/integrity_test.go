package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReferences_Clean(t *testing.T) {
	errs := CheckReferences(
		[]Epic{{ID: "e1"}},
		[]Story{{ID: "s1", EpicID: "e1"}},
		[]Task{{ID: "t1", StoryID: "s1"}},
	)
	assert.Empty(t, errs)
}

func TestCheckReferences_Dangling(t *testing.T) {
	errs := CheckReferences(
		[]Epic{{ID: "e1"}},
		[]Story{{ID: "s1", EpicID: "missing"}},
		[]Task{{ID: "t1", StoryID: "nope"}},
	)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `unknown epic "missing"`)
	assert.Contains(t, errs[1].Error(), `unknown story "nope"`)
	assert.True(t, errors.Is(errs[0], ErrValidation))
}

func TestCheckReferences_DuplicateIDs(t *testing.T) {
	errs := CheckReferences(
		[]Epic{{ID: "e1"}, {ID: "e1"}},
		nil,
		nil,
	)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "duplicate")
}

func TestValidateValues(t *testing.T) {
	s := EmptyState()
	s.Tasks = []Task{{ID: "t1", Status: "blocked", Priority: PriorityHigh}}
	s.Resources = []Resource{{Email: "a@x", Role: "ceo"}}

	errs := ValidateValues(s)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "tasks[0].status")
	assert.Contains(t, errs[1].Error(), "resources[0].role")
}

func TestErrorKinds_MatchSentinels(t *testing.T) {
	assert.ErrorIs(t, &NotFoundError{Kind: "task", ID: "t9"}, ErrNotFound)
	assert.ErrorIs(t, &PlanGenerationError{Err: errors.New("boom")}, ErrPlanGeneration)
	assert.ErrorIs(t, &PersistenceError{Tier: "fast", Op: "write", Err: errors.New("disk")}, ErrPersistence)

	cause := errors.New("denied")
	w := &PersistenceWarning{Tier: "file", Op: "write", Err: cause}
	assert.ErrorIs(t, w, cause)
	assert.NotErrorIs(t, w, ErrPersistence)
}
