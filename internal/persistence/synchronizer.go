// Package persistence keeps the project snapshot durable across two tiers: a
// local SQLite cache that is authoritative for the session and a JSON file
// mirror for portability. It also implements explicit export and import.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/planboard/internal/coalesce"
	"github.com/alexanderramin/planboard/internal/domain"
)

type Synchronizer struct {
	fast   FastTier
	file   Tier
	picker FilePicker

	mirror      *coalesce.Queue[[]byte]
	fileTimeout time.Duration
	onWarning   func(*domain.PersistenceWarning)
	logger      *slog.Logger
}

type Option func(*Synchronizer)

// WithFileTier mirrors every save to t.
func WithFileTier(t Tier) Option {
	return func(s *Synchronizer) { s.file = t }
}

// WithPicker sets the prompt used by ExportToFile and ImportFromFile.
func WithPicker(p FilePicker) Option {
	return func(s *Synchronizer) { s.picker = p }
}

// WithFileTimeout bounds each file tier write.
func WithFileTimeout(d time.Duration) Option {
	return func(s *Synchronizer) { s.fileTimeout = d }
}

// WithWarningHandler receives every non-fatal file tier failure.
func WithWarningHandler(fn func(*domain.PersistenceWarning)) Option {
	return func(s *Synchronizer) { s.onWarning = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) { s.logger = l }
}

func New(fast FastTier, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		fast:        fast,
		picker:      DeclinePicker{},
		fileTimeout: 30 * time.Second,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.file != nil {
		s.mirror = coalesce.New(s.writeFile,
			coalesce.WithTimeout[[]byte](s.fileTimeout),
			coalesce.WithErrorHandler[[]byte](func(err error) { s.warn("save", err) }),
		)
	}
	return s
}

// Save writes st to the fast tier before returning and queues the file
// mirror. Only a fast tier failure is returned.
func (s *Synchronizer) Save(ctx context.Context, st domain.ProjectState) error {
	data, err := Encode(st, false)
	if err != nil {
		return &domain.PersistenceError{Tier: s.fast.Name(), Op: "save", Err: err}
	}
	if err := s.fast.Write(ctx, data); err != nil {
		return &domain.PersistenceError{Tier: s.fast.Name(), Op: "save", Err: err}
	}
	s.mirrorState(st)
	return nil
}

func (s *Synchronizer) mirrorState(st domain.ProjectState) {
	if s.mirror == nil {
		return
	}
	data, err := Encode(st, true)
	if err != nil {
		s.warn("save", err)
		return
	}
	s.mirror.Submit(data)
}

func (s *Synchronizer) writeFile(ctx context.Context, data []byte) error {
	return s.file.Write(ctx, data)
}

// Load restores the last snapshot. A readable fast tier snapshot wins
// outright; otherwise the file tier is read and copied into the fast tier.
// It returns (nil, nil) when neither tier has a usable snapshot.
func (s *Synchronizer) Load(ctx context.Context) (*domain.ProjectState, error) {
	if st, ok := s.readTier(ctx, s.fast); ok {
		return st, nil
	}
	if s.file == nil {
		return nil, nil
	}
	st, ok := s.readTier(ctx, s.file)
	if !ok {
		return nil, nil
	}

	data, err := Encode(*st, false)
	if err == nil {
		err = s.fast.Write(ctx, data)
	}
	if err != nil {
		return st, &domain.PersistenceError{Tier: s.fast.Name(), Op: "backfill", Err: err}
	}
	s.logger.InfoContext(ctx, "persistence_backfilled", "from", s.file.Name(), "tasks", len(st.Tasks))
	return st, nil
}

func (s *Synchronizer) readTier(ctx context.Context, t Tier) (*domain.ProjectState, bool) {
	data, err := t.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoState) {
			s.logger.WarnContext(ctx, "persistence_read_failed", "tier", t.Name(), "error", err.Error())
		}
		return nil, false
	}
	st, err := Decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "persistence_unreadable", "tier", t.Name(), "error", err.Error())
		return nil, false
	}
	if errs := domain.CheckIntegrity(st); len(errs) > 0 {
		s.logger.WarnContext(ctx, "persistence_integrity", "tier", t.Name(), "error", errors.Join(errs...).Error())
	}
	return &st, true
}

// SavePartial replaces one top-level field of the stored snapshot and saves
// the whole snapshot back. With nothing stored it starts from the empty
// default.
func (s *Synchronizer) SavePartial(ctx context.Context, field Field, value any) error {
	if !field.Valid() {
		return domain.NewValidationError("key", "unknown state field %q", field)
	}

	if u, ok := s.fast.(Updater); ok {
		var saved domain.ProjectState
		err := u.Update(ctx, func(current []byte) ([]byte, error) {
			base := domain.EmptyState()
			if current != nil {
				if st, err := Decode(current); err == nil {
					base = st
				}
			} else if st, _ := s.readFileState(ctx); st != nil {
				base = *st
			}
			next, err := replaceField(base, field, value)
			if err != nil {
				return nil, err
			}
			saved = next
			return Encode(next, false)
		})
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return err
			}
			return &domain.PersistenceError{Tier: s.fast.Name(), Op: "save_partial", Err: err}
		}
		s.mirrorState(saved)
		return nil
	}

	base := domain.EmptyState()
	current, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if current != nil {
		base = *current
	}
	next, err := replaceField(base, field, value)
	if err != nil {
		return err
	}
	return s.Save(ctx, next)
}

func (s *Synchronizer) readFileState(ctx context.Context) (*domain.ProjectState, bool) {
	if s.file == nil {
		return nil, false
	}
	return s.readTier(ctx, s.file)
}

// ExportToFile writes st to a location chosen through the picker,
// independent of the routine save file. It returns the path written.
func (s *Synchronizer) ExportToFile(ctx context.Context, st domain.ProjectState) (string, error) {
	path, err := s.picker.PickSave(ctx, BackupFileName)
	if err != nil {
		return "", fmt.Errorf("choosing export location: %w", err)
	}
	data, err := Encode(st, true)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", &domain.PersistenceError{Tier: "export", Op: "write", Err: err}
	}
	s.logger.InfoContext(ctx, "persistence_exported", "path", path)
	return path, nil
}

// ImportFromFile reads a snapshot chosen through the picker and saves it over
// both tiers. The caller reloads its in-memory state from the result.
func (s *Synchronizer) ImportFromFile(ctx context.Context) (domain.ProjectState, error) {
	path, err := s.picker.PickOpen(ctx)
	if err != nil {
		return domain.ProjectState{}, fmt.Errorf("choosing import file: %w", err)
	}
	data, err := readFile(path)
	if errors.Is(err, ErrNoState) {
		return domain.ProjectState{}, domain.NewValidationError("file", "%s is empty or missing", path)
	}
	if err != nil {
		return domain.ProjectState{}, &domain.PersistenceError{Tier: "import", Op: "read", Err: err}
	}
	st, err := Decode(data)
	if err != nil {
		return domain.ProjectState{}, domain.NewValidationError("file", "%s: %v", path, err)
	}
	if err := s.Save(ctx, st); err != nil {
		return domain.ProjectState{}, err
	}
	s.logger.InfoContext(ctx, "persistence_imported", "path", path, "tasks", len(st.Tasks))
	return st, nil
}

// Clear drops the cached snapshot and overwrites the file mirror with the
// empty default.
func (s *Synchronizer) Clear(ctx context.Context) error {
	if err := s.fast.Clear(ctx); err != nil {
		return &domain.PersistenceError{Tier: s.fast.Name(), Op: "clear", Err: err}
	}
	s.mirrorState(domain.EmptyState())
	return nil
}

// Flush waits for queued file writes.
func (s *Synchronizer) Flush(ctx context.Context) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirror.Flush(ctx)
}

// Close flushes and stops the file mirror.
func (s *Synchronizer) Close(ctx context.Context) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirror.Close(ctx)
}

func (s *Synchronizer) warn(op string, err error) {
	w := &domain.PersistenceWarning{Tier: s.file.Name(), Op: op, Err: err}
	s.logger.Warn("persistence_warning", "tier", w.Tier, "op", op, "error", err.Error())
	if s.onWarning != nil {
		s.onWarning(w)
	}
}
