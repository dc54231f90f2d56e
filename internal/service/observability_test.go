package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "export", Duration: 5 * time.Millisecond, Success: true,
		Fields: map[string]any{"path": "/tmp/x.json", "b": 1},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "import", Err: errors.New("bad file")})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "create-project-plan", Err: domain.NewValidationError("description", "is required")})

	out := buf.String()
	assert.Contains(t, out, "use_case=export")
	assert.Contains(t, out, "b=1 path=/tmp/x.json", "fields are sorted by key")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="bad file"`)
	assert.Contains(t, out, "level=WARN")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
