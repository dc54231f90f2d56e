package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DataFileName is the suggested name of the routine save file.
const DataFileName = "project-data.json"

// BackupFileName is the suggested name of an explicit export.
const BackupFileName = "project-backup.json"

// FileTier mirrors the snapshot to a user-chosen JSON file. The location is
// asked for once, on first use, and reused afterwards.
type FileTier struct {
	picker FilePicker

	mu   sync.Mutex
	path string
}

func NewFileTier(picker FilePicker) *FileTier {
	return &FileTier{picker: picker}
}

func (t *FileTier) Name() string { return "file" }

// Path returns the chosen location, or "" before the first prompt.
func (t *FileTier) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

func (t *FileTier) resolve(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.path != "" {
		return t.path, nil
	}
	path, err := t.picker.PickSave(ctx, DataFileName)
	if err != nil {
		return "", err
	}
	t.path = path
	return path, nil
}

func (t *FileTier) Read(ctx context.Context) ([]byte, error) {
	path, err := t.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return readFile(path)
}

func (t *FileTier) Write(ctx context.Context, data []byte) error {
	path, err := t.resolve(ctx)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, ErrNoState
	}
	return data, nil
}

// writeFileAtomic replaces path so readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
