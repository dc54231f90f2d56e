package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Field names a top-level ProjectState key accepted by SavePartial.
type Field string

const (
	FieldProject   Field = "project"
	FieldEpics     Field = "epics"
	FieldStories   Field = "stories"
	FieldTasks     Field = "tasks"
	FieldResources Field = "resources"
	FieldAIConfig  Field = "aiConfig"
)

var fields = map[Field]bool{
	FieldProject: true, FieldEpics: true, FieldStories: true,
	FieldTasks: true, FieldResources: true, FieldAIConfig: true,
}

func (f Field) Valid() bool { return fields[f] }

// Encode serializes a snapshot. Indented output is used for files.
func Encode(s domain.ProjectState, indent bool) ([]byte, error) {
	s = s.Clone()
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and rejects invalid enum values. Missing
// collections come back empty.
func Decode(data []byte) (domain.ProjectState, error) {
	var s domain.ProjectState
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.ProjectState{}, fmt.Errorf("decoding state: %w", err)
	}
	if errs := domain.ValidateValues(s); len(errs) > 0 {
		return domain.ProjectState{}, fmt.Errorf("decoding state: %w", errors.Join(errs...))
	}
	if s.AIConfig.Provider == "" {
		s.AIConfig.Provider = domain.ProviderOpenAI
	}
	return s.Clone(), nil
}

// replaceField swaps one top-level key of s for value.
func replaceField(s domain.ProjectState, field Field, value any) (domain.ProjectState, error) {
	if !field.Valid() {
		return s, domain.NewValidationError("key", "unknown state field %q", field)
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return s, fmt.Errorf("encoding state: %w", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(doc, &m); err != nil {
		return s, fmt.Errorf("encoding state: %w", err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return s, fmt.Errorf("encoding %s: %w", field, err)
	}
	m[string(field)] = raw
	merged, err := json.Marshal(m)
	if err != nil {
		return s, fmt.Errorf("encoding state: %w", err)
	}
	next, err := Decode(merged)
	if err != nil {
		return s, domain.NewValidationError(string(field), "%v", err)
	}
	return next, nil
}
