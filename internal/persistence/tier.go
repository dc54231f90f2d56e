package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/repository"
)

// StateKey is the fast tier key of the project snapshot.
const StateKey = "project_management_state"

var (
	// ErrNoState means the tier holds no snapshot.
	ErrNoState = errors.New("no saved state")
	// ErrPickerDeclined means the user cancelled a file prompt.
	ErrPickerDeclined = errors.New("file selection declined")
)

// Tier stores one encoded snapshot.
type Tier interface {
	Name() string
	// Read returns ErrNoState when nothing is stored.
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// FastTier is the local cache. It can also be cleared.
type FastTier interface {
	Tier
	Clear(ctx context.Context) error
}

// Updater is implemented by tiers that can read-modify-write atomically.
// fn receives nil when nothing is stored.
type Updater interface {
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}

// SQLiteTier keeps the snapshot in the local SQLite cache.
type SQLiteTier struct {
	db      *sql.DB
	newRepo repository.SnapshotRepoFactory
	key     string
}

func NewSQLiteTier(database *sql.DB) *SQLiteTier {
	return &SQLiteTier{
		db:      database,
		newRepo: repository.NewSnapshotRepo,
		key:     StateKey,
	}
}

func (t *SQLiteTier) Name() string { return "fast" }

func (t *SQLiteTier) Read(ctx context.Context) ([]byte, error) {
	s, err := t.newRepo(t.db).Get(ctx, t.key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, err
	}
	return s.Payload, nil
}

func (t *SQLiteTier) Write(ctx context.Context, data []byte) error {
	return t.newRepo(t.db).Put(ctx, t.key, data)
}

func (t *SQLiteTier) Clear(ctx context.Context) error {
	return t.newRepo(t.db).Delete(ctx, t.key)
}

func (t *SQLiteTier) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	return db.InTx(ctx, t.db, func(ctx context.Context, conn db.Conn) error {
		repo := t.newRepo(conn)
		var current []byte
		s, err := repo.Get(ctx, t.key)
		switch {
		case err == nil:
			current = s.Payload
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := repo.Put(ctx, t.key, next); err != nil {
			return fmt.Errorf("writing updated snapshot: %w", err)
		}
		return nil
	})
}
