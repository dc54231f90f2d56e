package domain

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyState_SerializesToDocumentShape(t *testing.T) {
	data, err := json.Marshal(EmptyState())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"project": null,
		"epics": [],
		"stories": [],
		"tasks": [],
		"resources": [],
		"aiConfig": {"provider": "openai", "apiKey": ""}
	}`, string(data))
	assert.False(t, EmptyState().HasPlan())
}

func TestClone_IsIndependent(t *testing.T) {
	s := EmptyState()
	s.Project = &Project{ID: "p1", Name: "Alpha"}
	s.Tasks = []Task{{
		ID:       "t1",
		Status:   StatusTodo,
		Comments: []Comment{{ID: "c1", TaskID: "t1", Content: "hi"}},
	}}

	c := s.Clone()
	c.Project.Name = "Changed"
	c.Tasks[0].Status = StatusDone
	c.Tasks[0].Comments[0].Content = "changed"

	assert.Equal(t, "Alpha", s.Project.Name)
	assert.Equal(t, StatusTodo, s.Tasks[0].Status)
	assert.Equal(t, "hi", s.Tasks[0].Comments[0].Content)
}

func TestClone_NilSlicesBecomeEmpty(t *testing.T) {
	c := ProjectState{}.Clone()
	assert.NotNil(t, c.Epics)
	assert.NotNil(t, c.Stories)
	assert.NotNil(t, c.Tasks)
	assert.NotNil(t, c.Resources)
}

func TestAIConfig_LogValueMasksKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("config", "ai", AIConfig{Provider: ProviderGemini, APIKey: "sk-secret"})

	out := buf.String()
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "ai.provider=gemini")
	assert.Contains(t, out, "ai.api_key=***")
}

func TestClassifyPriority(t *testing.T) {
	assert.Equal(t, ClassCritical, ClassifyPriority(PriorityHigh))
	assert.Equal(t, ClassWarning, ClassifyPriority(PriorityMedium))
	assert.Equal(t, ClassSafe, ClassifyPriority(PriorityLow))
	assert.Equal(t, ClassNeutral, ClassifyPriority("urgent"))
	assert.Less(t, int(ClassifyPriority(PriorityHigh)), int(ClassifyPriority(PriorityLow)))
}

func TestPlan_DateSpan(t *testing.T) {
	p := Plan{
		Epics: []Epic{{ID: "e1", StartDate: MustParseDate("2024-02-05"), EndDate: MustParseDate("2024-02-20")}},
		Tasks: []Task{{ID: "t1", StartDate: MustParseDate("2024-02-01"), EndDate: MustParseDate("2024-02-02")}},
	}
	start, end := p.DateSpan()
	assert.Equal(t, MustParseDate("2024-02-01"), start)
	assert.Equal(t, MustParseDate("2024-02-20"), end)
}
