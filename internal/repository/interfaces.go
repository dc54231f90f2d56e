package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/planboard/internal/db"
)

// ErrNotFound is returned when no row exists for the requested key.
var ErrNotFound = errors.New("not found")

// Snapshot is one cached JSON document.
type Snapshot struct {
	Key       string
	Payload   []byte
	Revision  int
	UpdatedAt time.Time
}

type SnapshotRepo interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// SnapshotRepoFactory builds a repo bound to a connection or transaction.
type SnapshotRepoFactory func(conn db.Conn) SnapshotRepo
