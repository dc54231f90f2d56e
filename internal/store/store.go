// Package store holds the authoritative ProjectState. All changes go through
// Dispatch, which applies one Command at a time, publishes the new snapshot to
// subscribers and hands it to the persister without waiting for the write.
package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/planboard/internal/coalesce"
	"github.com/alexanderramin/planboard/internal/domain"
)

// Persister durably saves full snapshots.
type Persister interface {
	Save(ctx context.Context, s domain.ProjectState) error
}

// Listener observes every accepted snapshot. It must not call Dispatch.
type Listener func(domain.ProjectState)

type Store struct {
	// dispatchMu serializes transitions end to end, including notification.
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     domain.ProjectState
	listeners map[int]Listener
	nextID    int

	persist        *coalesce.Queue[domain.ProjectState]
	persister      Persister
	persistTimeout time.Duration
	onPersistError func(error)
	logger         *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPersister saves every accepted snapshot through p. Writes are queued;
// a burst of transitions collapses to the latest snapshot.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithPersistTimeout bounds each background save.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) { s.persistTimeout = d }
}

// WithPersistErrorHandler is told about failed background saves. The
// in-memory state is never rolled back.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithInitialState seeds the store instead of the empty default.
func WithInitialState(st domain.ProjectState) Option {
	return func(s *Store) { s.state = st.Clone() }
}

// New creates a Store holding the empty default state.
func New(opts ...Option) *Store {
	s := &Store{
		state:          domain.EmptyState(),
		listeners:      make(map[int]Listener),
		persistTimeout: 10 * time.Second,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.persister != nil {
		s.persist = coalesce.New(s.persister.Save,
			coalesce.WithTimeout[domain.ProjectState](s.persistTimeout),
			coalesce.WithErrorHandler[domain.ProjectState](s.handlePersistError),
		)
	}
	return s
}

// Dispatch applies cmd. Rejected commands return their error and leave the
// state as it was. A command that targets a missing entity is a logged no-op
// and returns nil.
func (s *Store) Dispatch(ctx context.Context, cmd Command) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	start := time.Now()
	s.mu.RLock()
	current := s.state
	s.mu.RUnlock()

	next, err := cmd.Apply(current)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			s.logger.WarnContext(ctx, "store_transition_noop", "command", cmd.Name(), "error", err.Error())
			return nil
		}
		s.logger.InfoContext(ctx, "store_transition_rejected", "command", cmd.Name(), "error", err.Error())
		return err
	}

	s.commit(next)
	if s.persist != nil {
		s.persist.Submit(next.Clone())
	}

	s.logger.DebugContext(ctx, "store_transition",
		"command", cmd.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
		"epics", len(next.Epics),
		"tasks", len(next.Tasks),
		"resources", len(next.Resources),
	)
	return nil
}

// Reload replaces the whole state without persisting it. Used when the
// snapshot already came from durable storage.
func (s *Store) Reload(ctx context.Context, st domain.ProjectState) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.commit(st.Clone())
	s.logger.DebugContext(ctx, "store_reloaded", "has_plan", st.HasPlan(), "tasks", len(st.Tasks))
}

func (s *Store) commit(next domain.ProjectState) {
	s.mu.Lock()
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.Clone())
	}
}

// State returns a deep copy of the current snapshot.
func (s *Store) State() domain.ProjectState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// HasPlan reports whether a project plan exists.
func (s *Store) HasPlan() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasPlan()
}

// AIConfig returns the current provider settings.
func (s *Store) AIConfig() domain.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AIConfig
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Flush waits for queued saves to finish.
func (s *Store) Flush(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	return s.persist.Flush(ctx)
}

// Close stops persisting new snapshots after draining queued ones.
func (s *Store) Close(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	return s.persist.Close(ctx)
}

func (s *Store) handlePersistError(err error) {
	s.logger.Error("store_persist_failed", "error", err.Error())
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}

// ReplacePlan installs a freshly generated plan.
func (s *Store) ReplacePlan(ctx context.Context, project domain.Project, plan domain.Plan) error {
	return s.Dispatch(ctx, ReplacePlan{Project: project, Plan: plan})
}

// UpdateTask merges patch into task id; a missing id is a no-op.
func (s *Store) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) error {
	return s.Dispatch(ctx, UpdateTask{TaskID: id, Patch: patch})
}

// MoveTask moves a task to another kanban bucket.
func (s *Store) MoveTask(ctx context.Context, id string, status domain.TaskStatus) error {
	return s.UpdateTask(ctx, id, domain.TaskPatch{Status: &status})
}

func (s *Store) SetResources(ctx context.Context, resources []domain.Resource) error {
	return s.Dispatch(ctx, SetResources{Resources: resources})
}

func (s *Store) AddResource(ctx context.Context, r domain.Resource) error {
	return s.Dispatch(ctx, AddResource{Resource: r})
}

func (s *Store) UpdateAIConfig(ctx context.Context, patch domain.AIConfigPatch) error {
	return s.Dispatch(ctx, UpdateAIConfig{Patch: patch})
}

func (s *Store) AddComment(ctx context.Context, taskID string, c domain.Comment) error {
	return s.Dispatch(ctx, AddComment{TaskID: taskID, Comment: c})
}

func (s *Store) AddAttachment(ctx context.Context, taskID string, a domain.Attachment) error {
	return s.Dispatch(ctx, AddAttachment{TaskID: taskID, Attachment: a})
}

func (s *Store) Reset(ctx context.Context) error {
	return s.Dispatch(ctx, Reset{})
}
