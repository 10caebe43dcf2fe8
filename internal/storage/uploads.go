// Package storage keeps the raw uploaded export files so they can be
// re-served later. Files are addressed by a generated stored name; lookups
// never touch anything outside the uploads directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("upload not found")
	ErrInvalidName = errors.New("invalid upload name")
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the upload under a fresh uuid-prefixed name and returns that
// stored name.
func (s *Store) Save(filename string, data []byte) (string, error) {
	storedName := uuid.New().String() + "_" + sanitizeFilename(filename)
	if err := os.WriteFile(filepath.Join(s.dir, storedName), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return storedName, nil
}

// Read returns the content of a previously stored upload. Names with path
// separators or parent-directory tokens are rejected outright.
func (s *Store) Read(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, ErrInvalidName
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// sanitizeFilename keeps only characters safe for a flat file name. Runs of
// dots are collapsed so a stored name can never trip the parent-directory
// check in Read.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
