package changelog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store reads and atomically replaces the persisted changelog document.
type Store struct {
	Fs   afero.Fs
	Path string
}

// NewStore returns a Store backed by the OS filesystem.
func NewStore(path string) *Store {
	return &Store{Fs: afero.NewOsFs(), Path: path}
}

// Load reads the whole document. A missing file is reported as exists=false
// rather than as an error.
func (s *Store) Load() (doc string, exists bool, err error) {
	data, err := afero.ReadFile(s.Fs, s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return string(data), true, nil
}

// Save replaces the document by writing a temporary file in the same directory
// and renaming it over the target.
func (s *Store) Save(doc string) error {
	dir := filepath.Dir(s.Path)
	if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.Fs, dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		s.Fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		s.Fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := s.Fs.Chmod(tmpName, 0o644); err != nil {
		s.Fs.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := s.Fs.Rename(tmpName, s.Path); err != nil {
		s.Fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.Path, err)
	}

	logDebug("[store] wrote %d bytes to %s", len(doc), s.Path)
	return nil
}
