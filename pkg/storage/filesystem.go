package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportStore keeps rendered timetable documents on local disk, grouped in
// month directories under a base path.
type ExportStore struct {
	dir string
}

// NewExportStore ensures the base directory exists and returns a handle.
func NewExportStore(dir string) (*ExportStore, error) {
	if dir == "" {
		dir = "./exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &ExportStore{dir: dir}, nil
}

// Save writes a rendered document under the given relative name.
func (s *ExportStore) Save(name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", name, err)
	}
	return name, nil
}

// ReadFile loads a stored document whole. Exports are single PDF or CSV
// files small enough to buffer.
func (s *ExportStore) ReadFile(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", name, err)
	}
	return data, nil
}

// Sweep removes documents whose modification time predates the TTL and
// prunes month directories left empty. Returns the removed names.
func (s *ExportStore) Sweep(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	var removed []string
	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !exportFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			rel = path
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sweep exports: %w", err)
	}
	s.pruneEmptyDirs()
	return removed, nil
}

func (s *ExportStore) pruneEmptyDirs() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(s.dir, e.Name())
		if children, err := os.ReadDir(sub); err == nil && len(children) == 0 {
			_ = os.Remove(sub)
		}
	}
}

func exportFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".csv":
		return true
	}
	return false
}

// resolve maps a relative name onto the base directory, rejecting paths
// that escape it.
func (s *ExportStore) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	return filepath.Join(s.dir, clean), nil
}
