package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/kampushq/kampus/core/nav"
)

// Store is a file-backed key-value store for small client preferences
// (sidebar state, cached session token). Reads come from memory; every Set
// rewrites the JSON file.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

var _ nav.Store = (*Store)(nil)

func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading prefs %s", path)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Wrapf(err, "parsing prefs %s", path)
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flush()
}

func (s *Store) flush() error {
	if s.path == "" { // in-mem
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating prefs dir")
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding prefs")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "writing prefs %s", s.path)
	}
	return nil
}

// InMem returns a Store that never touches disk; for tests.
func InMem() *Store {
	return &Store{values: make(map[string]string)}
}
