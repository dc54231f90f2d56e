package domain

import (
	"log/slog"
	"time"
)

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
}

type Epic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
}

type Story struct {
	ID          string `json:"id"`
	EpicID      string `json:"epicId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type Task struct {
	ID          string       `json:"id"`
	StoryID     string       `json:"storyId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Assignee    string       `json:"assignee"`
	Status      TaskStatus   `json:"status"`
	Priority    Priority     `json:"priority"`
	StartDate   Date         `json:"startDate"`
	EndDate     Date         `json:"endDate"`
	Comments    []Comment    `json:"comments,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Attachment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Resource is a team member. Email is the uniqueness key.
type Resource struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}

type AIConfig struct {
	Provider Provider `json:"provider"`
	APIKey   string   `json:"apiKey"`
}

// LogValue keeps the api key out of every log record.
func (c AIConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", string(c.Provider)),
		slog.String("api_key", MaskSecret(c.APIKey)),
	)
}

// MaskSecret renders a secret for display: empty stays empty, anything else
// becomes a fixed mask.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// Plan is the epics/stories/tasks triple produced by plan generation.
type Plan struct {
	Epics   []Epic  `json:"epics"`
	Stories []Story `json:"stories"`
	Tasks   []Task  `json:"tasks"`
}

// DateSpan returns the earliest and latest date mentioned by the plan's epics
// and tasks. Both are zero for an empty plan.
func (p Plan) DateSpan() (Date, Date) {
	var dates []Date
	for _, e := range p.Epics {
		dates = append(dates, e.StartDate, e.EndDate)
	}
	for _, t := range p.Tasks {
		dates = append(dates, t.StartDate, t.EndDate)
	}
	return MinDate(dates...), MaxDate(dates...)
}
