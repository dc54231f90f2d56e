package domain

// TaskPatch lists the task fields an update replaces. Nil fields are kept.
type TaskPatch struct {
	StoryID     *string
	Title       *string
	Description *string
	Assignee    *string
	Status      *TaskStatus
	Priority    *Priority
	StartDate   *Date
	EndDate     *Date
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.StoryID == nil && p.Title == nil && p.Description == nil && p.Assignee == nil &&
		p.Status == nil && p.Priority == nil && p.StartDate == nil && p.EndDate == nil
}

// Validate checks enum fields that are set.
func (p TaskPatch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", "invalid value %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return NewValidationError("priority", "invalid value %q", *p.Priority)
	}
	return nil
}

// ApplyTo returns t with the patch merged over it.
func (p TaskPatch) ApplyTo(t Task) Task {
	t = t.Clone()
	t.StoryID = ValueOr(p.StoryID, t.StoryID)
	t.Title = ValueOr(p.Title, t.Title)
	t.Description = ValueOr(p.Description, t.Description)
	t.Assignee = ValueOr(p.Assignee, t.Assignee)
	t.Status = ValueOr(p.Status, t.Status)
	t.Priority = ValueOr(p.Priority, t.Priority)
	t.StartDate = ValueOr(p.StartDate, t.StartDate)
	t.EndDate = ValueOr(p.EndDate, t.EndDate)
	return t
}

// AIConfigPatch is a shallow update of AIConfig.
type AIConfigPatch struct {
	Provider *Provider
	APIKey   *string
}

func (p AIConfigPatch) Validate() error {
	if p.Provider != nil && !p.Provider.Valid() {
		return NewValidationError("provider", "invalid value %q (expected openai or gemini)", *p.Provider)
	}
	return nil
}

func (p AIConfigPatch) ApplyTo(c AIConfig) AIConfig {
	c.Provider = ValueOr(p.Provider, c.Provider)
	c.APIKey = ValueOr(p.APIKey, c.APIKey)
	return c
}
