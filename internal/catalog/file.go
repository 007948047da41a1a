package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Persistence is the whole-catalogue storage collaborator. Save replaces the
// serialized catalogue atomically; Load returns the empty catalogue when no
// file exists yet.
type Persistence interface {
	Load(ctx context.Context) ([]Instance, error)
	Save(ctx context.Context, items []Instance) error
}

const catalogueFilename = "instances.json"

// ErrCatalogueLocked indicates another cellar process holds the catalogue.
var ErrCatalogueLocked = errors.New("catalogue is locked by another cellar process")

// FileStore persists the catalogue as a JSON document in the data directory.
// A file lock rejects a second concurrent process instead of attempting any
// cross-process reconciliation.
type FileStore struct {
	path string
	lock *flock.Flock
}

// OpenFileStore acquires the catalogue lock and returns the file-backed
// persistence collaborator.
func OpenFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %q: %w", dataDir, err)
	}
	lock := flock.New(filepath.Join(dataDir, "catalogue.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalogue lock: %w", err)
	}
	if !ok {
		return nil, ErrCatalogueLocked
	}
	return &FileStore{
		path: filepath.Join(dataDir, catalogueFilename),
		lock: lock,
	}, nil
}

// Path returns the catalogue file location.
func (f *FileStore) Path() string {
	return f.path
}

// Close releases the catalogue lock.
func (f *FileStore) Close() error {
	if f == nil || f.lock == nil {
		return nil
	}
	return f.lock.Unlock()
}

// Load reads and decodes the catalogue. A missing file yields an empty
// catalogue; a payload that is not a JSON sequence is an error the caller
// recovers from by resetting to empty.
func (f *FileStore) Load(ctx context.Context) ([]Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Instance{}, nil
		}
		return nil, fmt.Errorf("read catalogue: %w", err)
	}

	var items []Instance
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	if items == nil {
		items = []Instance{}
	}
	return items, nil
}

// Save serializes the full catalogue and replaces the file atomically.
func (f *FileStore) Save(ctx context.Context, items []Instance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []Instance{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalogue: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(f.path), catalogueFilename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp catalogue: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write catalogue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp catalogue: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace catalogue: %w", err)
	}
	return nil
}
