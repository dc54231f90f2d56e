package store

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
)

// Command is one named state transition. Apply returns the next state and
// must leave its input untouched. A *domain.NotFoundError from Apply marks a
// forgiving no-op; any other error rejects the command.
type Command interface {
	Name() string
	Apply(s domain.ProjectState) (domain.ProjectState, error)
}

// ReplacePlan swaps project, epics, stories and tasks in one step.
type ReplacePlan struct {
	Project domain.Project
	Plan    domain.Plan
}

func (ReplacePlan) Name() string { return "replace_plan" }

func (c ReplacePlan) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	project := c.Project
	s.Project = &project
	s.Epics = slices.Clone(c.Plan.Epics)
	s.Stories = slices.Clone(c.Plan.Stories)
	s.Tasks = make([]domain.Task, len(c.Plan.Tasks))
	for i, t := range c.Plan.Tasks {
		s.Tasks[i] = t.Clone()
	}
	return s, nil
}

// UpdateTask merges Patch into the task with TaskID. Other tasks are kept as
// they are.
type UpdateTask struct {
	TaskID string
	Patch  domain.TaskPatch
}

func (UpdateTask) Name() string { return "update_task" }

func (c UpdateTask) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	if err := c.Patch.Validate(); err != nil {
		return s, err
	}
	if c.Patch.StoryID != nil && !hasStory(s, *c.Patch.StoryID) {
		return s, domain.NewValidationError("storyId", "references unknown story %q", *c.Patch.StoryID)
	}
	return mapTask(s, c.TaskID, c.Patch.ApplyTo)
}

// SetResources replaces the resource list.
type SetResources struct {
	Resources []domain.Resource
}

func (SetResources) Name() string { return "set_resources" }

func (c SetResources) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	seen := make(map[string]bool, len(c.Resources))
	for i, r := range c.Resources {
		if err := validateResource(r); err != nil {
			return s, err
		}
		key := emailKey(r.Email)
		if seen[key] {
			return s, domain.NewValidationError("resources", "duplicate email %q at index %d", r.Email, i)
		}
		seen[key] = true
	}
	s.Resources = slices.Clone(c.Resources)
	if s.Resources == nil {
		s.Resources = []domain.Resource{}
	}
	return s, nil
}

// AddResource appends a team member. Email must be unique.
type AddResource struct {
	Resource domain.Resource
}

func (AddResource) Name() string { return "add_resource" }

func (c AddResource) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	if err := validateResource(c.Resource); err != nil {
		return s, err
	}
	key := emailKey(c.Resource.Email)
	for _, r := range s.Resources {
		if emailKey(r.Email) == key {
			return s, domain.NewValidationError("email", "a resource with email %q already exists", c.Resource.Email)
		}
	}
	next := make([]domain.Resource, len(s.Resources), len(s.Resources)+1)
	copy(next, s.Resources)
	s.Resources = append(next, c.Resource)
	return s, nil
}

// UpdateAIConfig shallow-merges into aiConfig.
type UpdateAIConfig struct {
	Patch domain.AIConfigPatch
}

func (UpdateAIConfig) Name() string { return "update_ai_config" }

func (c UpdateAIConfig) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	if err := c.Patch.Validate(); err != nil {
		return s, err
	}
	s.AIConfig = c.Patch.ApplyTo(s.AIConfig)
	return s, nil
}

// AddComment appends a comment to a task, stamping its task id and filling
// id and creation time when absent.
type AddComment struct {
	TaskID  string
	Comment domain.Comment
	Now     func() time.Time
}

func (AddComment) Name() string { return "add_comment" }

func (c AddComment) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	if strings.TrimSpace(c.Comment.Content) == "" {
		return s, domain.NewValidationError("content", "comment cannot be empty")
	}
	comment := c.Comment
	comment.TaskID = c.TaskID
	comment.ID = domain.CoalesceStr(comment.ID, uuid.New().String())
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = nowUTC(c.Now)
	}
	return mapTask(s, c.TaskID, func(t domain.Task) domain.Task {
		t = t.Clone()
		t.Comments = append(t.Comments, comment)
		return t
	})
}

// AddAttachment appends attachment metadata to a task.
type AddAttachment struct {
	TaskID     string
	Attachment domain.Attachment
	Now        func() time.Time
}

func (AddAttachment) Name() string { return "add_attachment" }

func (c AddAttachment) Apply(s domain.ProjectState) (domain.ProjectState, error) {
	if c.Attachment.Name == "" {
		return s, domain.NewValidationError("name", "attachment name is required")
	}
	if c.Attachment.Size < 0 {
		return s, domain.NewValidationError("size", "must be non-negative, got %d", c.Attachment.Size)
	}
	a := c.Attachment
	a.TaskID = c.TaskID
	a.ID = domain.CoalesceStr(a.ID, uuid.New().String())
	if a.UploadedAt.IsZero() {
		a.UploadedAt = nowUTC(c.Now)
	}
	return mapTask(s, c.TaskID, func(t domain.Task) domain.Task {
		t = t.Clone()
		t.Attachments = append(t.Attachments, a)
		return t
	})
}

// Reset returns to the empty default.
type Reset struct{}

func (Reset) Name() string { return "reset" }

func (Reset) Apply(domain.ProjectState) (domain.ProjectState, error) {
	return domain.EmptyState(), nil
}

// mapTask rebuilds the task list with fn applied to the task matching id.
func mapTask(s domain.ProjectState, id string, fn func(domain.Task) domain.Task) (domain.ProjectState, error) {
	idx := slices.IndexFunc(s.Tasks, func(t domain.Task) bool { return t.ID == id })
	if idx < 0 {
		return s, &domain.NotFoundError{Kind: "task", ID: id}
	}
	next := slices.Clone(s.Tasks)
	next[idx] = fn(s.Tasks[idx])
	s.Tasks = next
	return s, nil
}

func hasStory(s domain.ProjectState, id string) bool {
	return slices.ContainsFunc(s.Stories, func(st domain.Story) bool { return st.ID == id })
}

func validateResource(r domain.Resource) error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.NewValidationError("name", "is required")
	}
	if !strings.Contains(r.Email, "@") {
		return domain.NewValidationError("email", "%q is not an email address", r.Email)
	}
	if !r.Role.Valid() {
		return domain.NewValidationError("role", "invalid value %q (expected developer, designer, pm, ba or qa)", r.Role)
	}
	return nil
}

// emailKey normalizes an email for uniqueness checks.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nowUTC(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return now().UTC()
}
