// Package storage persists the task collection as a single JSON file. Writes
// are atomic (write-temp-then-rename) and guarded by an OS file lock so two
// processes sharing the file degrade to last-writer-wins instead of
// interleaved corruption.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/insighteck/todo-app/internal/tasks"
)

const filePerm = 0o600

// FileStore implements tasks.Store on the local filesystem.
type FileStore struct {
	path string
	flk  *flock.Flock
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, flk: flock.New(path + ".lock")}
}

// Load reads the full task list. A missing file is an empty collection;
// corrupt JSON is an error.
func (s *FileStore) Load() ([]tasks.Task, error) {
	if err := s.flk.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []tasks.Task{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var list []tasks.Task
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: corrupted task file: %w", s.path, err)
	}
	return list, nil
}

// Save overwrites the full task list atomically.
func (s *FileStore) Save(list []tasks.Task) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return atomicWrite(s.path, data)
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
