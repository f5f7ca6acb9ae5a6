// Package jsonstore is the flat-file system of record for all API state.
// Each named file holds one JSON document; writes are atomic via a temp
// file plus rename, and every file carries its own RWMutex so readers do
// not block each other.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("jsonstore: not found")

type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("jsonstore: data directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create data directory: %w", err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.RWMutex)}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) lock(name string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("jsonstore: invalid file name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Load decodes the named file into v. A missing file reports ErrNotFound so
// callers can seed defaults instead of treating first-run state as a failure.
func (s *Store) Load(name string, v any) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	l := s.lock(name)
	l.RLock()
	defer l.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("jsonstore: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("jsonstore: decode %s: %w", name, err)
	}
	return nil
}

// Save writes v as indented JSON. The temp-file-and-rename dance keeps a
// crashed write from truncating the previous contents.
func (s *Store) Save(name string, v any) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: encode %s: %w", name, err)
	}

	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonstore: temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: rename %s: %w", name, err)
	}
	return nil
}

func (s *Store) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// ModTime reports when the named file last changed; the order feed uses it
// to detect updates without reparsing the file.
func (s *Store) ModTime(name string) (time.Time, error) {
	path, err := s.path(name)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
