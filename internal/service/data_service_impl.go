package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

type dataService struct {
	store    SnapshotStore
	sync     Synchronizer
	observer UseCaseObserver
}

func NewDataService(store SnapshotStore, sync Synchronizer, observers ...UseCaseObserver) DataService {
	return &dataService{store: store, sync: sync, observer: useCaseObserverOrNoop(observers)}
}

func (s *dataService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *dataService) Restore(ctx context.Context) (found bool, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "restore", startedAt, err, map[string]any{"found": found}) }()

	st, err := s.sync.Load(ctx)
	if st != nil {
		s.store.Reload(ctx, *st)
		found = true
	}
	return found, err
}

func (s *dataService) Export(ctx context.Context) (path string, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "export", startedAt, err, map[string]any{"path": path}) }()

	return s.sync.ExportToFile(ctx, s.store.State())
}

// Import waits for queued saves so none lands on top of the imported
// snapshot, then replaces everything with the file's contents.
func (s *dataService) Import(ctx context.Context) (st domain.ProjectState, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "import", startedAt, err, map[string]any{"tasks": len(st.Tasks)}) }()

	_ = s.store.Flush(ctx)
	st, err = s.sync.ImportFromFile(ctx)
	if err != nil {
		return domain.ProjectState{}, err
	}
	s.store.Reload(ctx, st)
	return st, nil
}

// Clear drops saved data and resets the store to the empty default.
func (s *dataService) Clear(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "clear", startedAt, err, nil) }()

	_ = s.store.Flush(ctx)
	if err := s.sync.Clear(ctx); err != nil {
		return err
	}
	s.store.Reload(ctx, domain.EmptyState())
	return nil
}
