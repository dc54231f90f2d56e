package domain

import "slices"

// ProjectState is the aggregate root and the only persisted unit.
type ProjectState struct {
	Project   *Project   `json:"project"`
	Epics     []Epic     `json:"epics"`
	Stories   []Story    `json:"stories"`
	Tasks     []Task     `json:"tasks"`
	Resources []Resource `json:"resources"`
	AIConfig  AIConfig   `json:"aiConfig"`
}

// EmptyState returns the fixed default a store starts from.
func EmptyState() ProjectState {
	return ProjectState{
		Epics:     []Epic{},
		Stories:   []Story{},
		Tasks:     []Task{},
		Resources: []Resource{},
		AIConfig:  AIConfig{Provider: ProviderOpenAI},
	}
}

// HasPlan reports whether a plan has been generated or restored.
func (s ProjectState) HasPlan() bool {
	return s.Project != nil
}

// Clone returns a deep copy. Nil slices come back as empty slices so a clone
// always serializes to arrays, never null.
func (s ProjectState) Clone() ProjectState {
	out := ProjectState{
		Epics:     cloneSlice(s.Epics),
		Stories:   cloneSlice(s.Stories),
		Tasks:     make([]Task, len(s.Tasks)),
		Resources: cloneSlice(s.Resources),
		AIConfig:  s.AIConfig,
	}
	if s.Project != nil {
		p := *s.Project
		out.Project = &p
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Clone copies the task including its comment and attachment lists.
func (t Task) Clone() Task {
	t.Comments = slices.Clone(t.Comments)
	t.Attachments = slices.Clone(t.Attachments)
	return t
}

// TaskByID returns the task with the given id.
func (s ProjectState) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// StoriesOf returns the stories of an epic in state order.
func (s ProjectState) StoriesOf(epicID string) []Story {
	var out []Story
	for _, st := range s.Stories {
		if st.EpicID == epicID {
			out = append(out, st)
		}
	}
	return out
}

// TasksOf returns the tasks of a story in state order.
func (s ProjectState) TasksOf(storyID string) []Task {
	var out []Task
	for _, t := range s.Tasks {
		if t.StoryID == storyID {
			out = append(out, t)
		}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
