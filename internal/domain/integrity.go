package domain

import "fmt"

// ValidateValues checks enum fields of a snapshot. A snapshot that fails is
// treated as unreadable.
func ValidateValues(s ProjectState) []error {
	var errs []error
	for i, t := range s.Tasks {
		if !t.Status.Valid() {
			errs = append(errs, NewValidationError(fmt.Sprintf("tasks[%d].status", i), "invalid value %q", t.Status))
		}
		if !t.Priority.Valid() {
			errs = append(errs, NewValidationError(fmt.Sprintf("tasks[%d].priority", i), "invalid value %q", t.Priority))
		}
	}
	for i, st := range s.Stories {
		if st.Points < 0 {
			errs = append(errs, NewValidationError(fmt.Sprintf("stories[%d].points", i), "must be non-negative, got %d", st.Points))
		}
	}
	for i, r := range s.Resources {
		if !r.Role.Valid() {
			errs = append(errs, NewValidationError(fmt.Sprintf("resources[%d].role", i), "invalid value %q", r.Role))
		}
	}
	if s.AIConfig.Provider != "" && !s.AIConfig.Provider.Valid() {
		errs = append(errs, NewValidationError("aiConfig.provider", "invalid value %q", s.AIConfig.Provider))
	}
	return errs
}

// CheckReferences reports duplicate ids and dangling foreign keys across
// epics, stories and tasks. It never modifies the state.
func CheckReferences(epics []Epic, stories []Story, tasks []Task) []error {
	var errs []error

	epicIDs := make(map[string]bool, len(epics))
	for i, e := range epics {
		if e.ID == "" {
			errs = append(errs, NewValidationError(fmt.Sprintf("epics[%d].id", i), "is required"))
			continue
		}
		if epicIDs[e.ID] {
			errs = append(errs, NewValidationError(fmt.Sprintf("epics[%d].id", i), "duplicate id %q", e.ID))
		}
		epicIDs[e.ID] = true
	}

	storyIDs := make(map[string]bool, len(stories))
	for i, st := range stories {
		field := fmt.Sprintf("stories[%d]", i)
		if st.ID == "" {
			errs = append(errs, NewValidationError(field+".id", "is required"))
			continue
		}
		if storyIDs[st.ID] {
			errs = append(errs, NewValidationError(field+".id", "duplicate id %q", st.ID))
		}
		storyIDs[st.ID] = true
		if !epicIDs[st.EpicID] {
			errs = append(errs, NewValidationError(field+".epicId", "references unknown epic %q", st.EpicID))
		}
	}

	taskIDs := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		if t.ID == "" {
			errs = append(errs, NewValidationError(field+".id", "is required"))
			continue
		}
		if taskIDs[t.ID] {
			errs = append(errs, NewValidationError(field+".id", "duplicate id %q", t.ID))
		}
		taskIDs[t.ID] = true
		if !storyIDs[t.StoryID] {
			errs = append(errs, NewValidationError(field+".storyId", "references unknown story %q", t.StoryID))
		}
	}
	return errs
}

// CheckIntegrity runs CheckReferences over a full snapshot.
func CheckIntegrity(s ProjectState) []error {
	return CheckReferences(s.Epics, s.Stories, s.Tasks)
}
