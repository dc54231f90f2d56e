package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrPlanGeneration = errors.New("plan generation failed")
	ErrPersistence    = errors.New("persistence failed")
)

// ValidationError rejects input that breaks a domain rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError names a missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PlanGenerationError wraps a generator failure: transport, timeout or a
// malformed plan.
type PlanGenerationError struct {
	Err error
}

func (e *PlanGenerationError) Error() string {
	return fmt.Sprintf("generating plan: %v", e.Err)
}

func (e *PlanGenerationError) Unwrap() error { return e.Err }

func (e *PlanGenerationError) Is(target error) bool { return target == ErrPlanGeneration }

// PersistenceError is a fast tier failure. Durability is compromised.
type PersistenceError struct {
	Tier string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s tier %s: %v", e.Tier, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// PersistenceWarning is a non-fatal file tier failure.
type PersistenceWarning struct {
	Tier string
	Op   string
	Err  error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("warning: %s tier %s: %v", w.Tier, w.Op, w.Err)
}

func (w *PersistenceWarning) Unwrap() error { return w.Err }
