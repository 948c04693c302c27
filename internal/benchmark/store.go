package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Store defines the interface for storing benchmark runs.
type Store interface {
	Save(run Run) error
	LoadLatest() (*Run, error)
	LoadAll() ([]Run, error)
	Close() error
}

// FileStore keeps every run in one JSON array on fsys.
type FileStore struct {
	fsys afero.Fs
	path string
}

// NewFileStore returns a store backed by path on fsys, creating its parent
// directory. The file itself is written on the first Save.
func NewFileStore(fsys afero.Fs, path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &FileStore{fsys: fsys, path: path}, nil
}

// Save appends run. An unreadable file is reported instead of being replaced.
func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(append(runs, run), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	if err := afero.WriteFile(s.fsys, s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// LoadAll returns the stored runs, oldest first. A missing or empty file
// holds no runs.
func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := afero.ReadFile(s.fsys, s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []Run{}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	case len(data) == 0:
		return []Run{}, nil
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal runs: %w", err)
	}

	slices.SortStableFunc(runs, func(a, b Run) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

// LoadLatest returns the most recent run, or nil when there is none.
func (s *FileStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[len(runs)-1], nil
}

// Exists reports whether anything has been saved yet.
func (s *FileStore) Exists() (bool, error) {
	return afero.Exists(s.fsys, s.path)
}

// Close is a no-op; the file is rewritten on every Save.
func (s *FileStore) Close() error {
	return nil
}
