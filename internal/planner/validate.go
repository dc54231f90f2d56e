package planner

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
)

// ValidatePlan checks a generated plan before it is handed to the store.
// Returns a slice of all validation errors found.
func ValidatePlan(p *domain.Plan) []error {
	if p == nil {
		return []error{domain.NewValidationError("plan", "is empty")}
	}
	var errs []error
	if len(p.Epics) == 0 {
		errs = append(errs, domain.NewValidationError("epics", "at least one epic is required"))
	}

	errs = append(errs, domain.CheckReferences(p.Epics, p.Stories, p.Tasks)...)

	for i, e := range p.Epics {
		field := fmt.Sprintf("epics[%d]", i)
		if e.Title == "" {
			errs = append(errs, domain.NewValidationError(field+".title", "is required"))
		}
		errs = append(errs, validateSpan(field, e.StartDate, e.EndDate)...)
	}
	for i, st := range p.Stories {
		field := fmt.Sprintf("stories[%d]", i)
		if st.Title == "" {
			errs = append(errs, domain.NewValidationError(field+".title", "is required"))
		}
		if st.Points < 0 {
			errs = append(errs, domain.NewValidationError(field+".points", "must be non-negative, got %d", st.Points))
		}
	}
	for i, t := range p.Tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		if t.Title == "" {
			errs = append(errs, domain.NewValidationError(field+".title", "is required"))
		}
		if !t.Status.Valid() {
			errs = append(errs, domain.NewValidationError(field+".status", "invalid value %q", t.Status))
		}
		if !t.Priority.Valid() {
			errs = append(errs, domain.NewValidationError(field+".priority", "invalid value %q", t.Priority))
		}
		errs = append(errs, validateSpan(field, t.StartDate, t.EndDate)...)
	}
	return errs
}

func validateSpan(field string, start, end domain.Date) []error {
	var errs []error
	if start.IsZero() {
		errs = append(errs, domain.NewValidationError(field+".startDate", "is required"))
	}
	if end.IsZero() {
		errs = append(errs, domain.NewValidationError(field+".endDate", "is required"))
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, domain.NewValidationError(field+".endDate", "%s is before startDate %s", end, start))
	}
	return errs
}

// normalize fills optional task fields the model may omit. Tasks are leaves,
// so a missing task id can be minted without breaking references.
func normalize(p *domain.Plan) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == "" {
			p.Tasks[i].ID = uuid.New().String()
		}
		if p.Tasks[i].Status == "" {
			p.Tasks[i].Status = domain.StatusTodo
		}
		if p.Tasks[i].Priority == "" {
			p.Tasks[i].Priority = domain.PriorityMedium
		}
	}
}

// checked validates p and folds the findings into one error.
func checked(p *domain.Plan) (*domain.Plan, error) {
	if errs := ValidatePlan(p); len(errs) > 0 {
		return nil, planError(fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...)))
	}
	return p, nil
}
