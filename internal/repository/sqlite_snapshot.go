package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
)

// SQLiteSnapshotRepo implements SnapshotRepo over the snapshots table.
type SQLiteSnapshotRepo struct {
	db db.Conn
}

func NewSQLiteSnapshotRepo(conn db.Conn) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

// NewSnapshotRepo adapts NewSQLiteSnapshotRepo to SnapshotRepoFactory.
func NewSnapshotRepo(conn db.Conn) SnapshotRepo {
	return NewSQLiteSnapshotRepo(conn)
}

func (r *SQLiteSnapshotRepo) Get(ctx context.Context, key string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, payload, revision, updated_at FROM snapshots WHERE key = ?`, key)

	var (
		s         Snapshot
		payload   string
		updatedAt string
	)
	if err := row.Scan(&s.Key, &payload, &s.Revision, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.Payload = []byte(payload)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}

// Put inserts or replaces the payload under key and bumps its revision.
func (r *SQLiteSnapshotRepo) Put(ctx context.Context, key string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, revision, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			revision = snapshots.revision + 1,
			updated_at = excluded.updated_at`,
		key, string(payload), nowUTC())
	if err != nil {
		return fmt.Errorf("upserting snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning snapshot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
