// Package store is the filesystem capability used to load and persist
// environment files.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("file not found")

// NotFoundError reports a file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReadError reports a file that exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write. The target keeps its previous content.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store reads and writes whole files.
type Store interface {
	Exists(path string) bool
	Read(path string) (string, error)
	Write(path, content string) error
}

const defaultMode fs.FileMode = 0o644

// FS implements Store on an afero filesystem.
type FS struct {
	fs afero.Fs
}

// New wraps an afero filesystem.
func New(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// NewOS returns a store on the real disk.
func NewOS() *FS {
	return New(afero.NewOsFs())
}

// Exists reports whether path names an existing regular file.
func (s *FS) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Read returns the whole content of path.
func (s *FS) Read(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: path}
		}
		return "", &ReadError{Path: path, Err: err}
	}
	return string(data), nil
}

// Write replaces the content of path. The content goes to a temporary file in
// the same directory which is then renamed over path, so readers see either
// the old or the new file. An existing file keeps its mode.
func (s *FS) Write(path, content string) error {
	mode := defaultMode
	if info, err := s.fs.Stat(path); err == nil {
		if info.IsDir() {
			return &WriteError{Path: path, Err: fmt.Errorf("is a directory")}
		}
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := s.fs.Chmod(tmpName, mode); err != nil {
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
