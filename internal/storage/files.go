package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore writes rendered persona reports to a directory and reads
// them back for download.
type FileStore struct {
	dir string
}

// NewFileStore creates the output directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the report directory.
func (f *FileStore) Dir() string {
	return f.dir
}

// WriteReport stores a rendered report as <username>_persona.txt and
// returns the full path. An existing report for the same username is
// overwritten; records keep their own copy of the path.
func (f *FileStore) WriteReport(username, content string) (string, error) {
	path := filepath.Join(f.dir, username+"_persona.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// ReadReport returns the report bytes at path. Missing files map to
// ErrNotFound so callers can distinguish them from IO failures.
func (f *FileStore) ReadReport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return data, nil
}
