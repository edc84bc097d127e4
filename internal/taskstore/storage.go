package taskstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bankflowai/bankflow/internal/types"
)

// Storage defines the snapshot backend for the task store. Implementations
// persist the raw task collection only; findings and metrics are always
// recomputed on load and never stored.
type Storage interface {
	// Load reads the persisted task snapshot. A missing snapshot is not an
	// error: it returns an empty collection.
	Load() ([]types.Task, error)

	// Save replaces the persisted snapshot with the given tasks.
	Save(tasks []types.Task) error
}

// FileStorage persists the task snapshot as a JSON file
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads and decodes the snapshot file
func (f *FileStorage) Load() ([]types.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read task snapshot: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse task snapshot %s: %w", f.path, err)
	}
	return tasks, nil
}

// Save writes the snapshot atomically via a temp file and rename
func (f *FileStorage) Save(tasks []types.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode task snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write task snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close task snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace task snapshot: %w", err)
	}
	return nil
}

// MemoryStorage keeps the snapshot in memory. Useful for tests and for
// running the engine without touching the filesystem.
type MemoryStorage struct {
	tasks []types.Task
}

// NewMemoryStorage creates an in-memory storage, optionally pre-seeded
func NewMemoryStorage(tasks []types.Task) *MemoryStorage {
	return &MemoryStorage{tasks: append([]types.Task(nil), tasks...)}
}

// Load returns a copy of the held snapshot
func (m *MemoryStorage) Load() ([]types.Task, error) {
	return append([]types.Task(nil), m.tasks...), nil
}

// Save replaces the held snapshot with a copy of the given tasks
func (m *MemoryStorage) Save(tasks []types.Task) error {
	m.tasks = append([]types.Task(nil), tasks...)
	return nil
}
