// Package filestore persists state as a single JSON document on disk.
// Writes go through a temp file and rename so a crashed writer leaves
// either the old or the new document, never a torn one. Concurrent
// processes overwrite each other last-write-wins.
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/updatekit/updatekit/store"
)

type Store struct {
	path string

	mu   sync.Mutex
	data map[string][]byte
}

func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string][]byte),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "read state file")
	}
	if err := sonic.Unmarshal(raw, &s.data); err != nil {
		// a corrupt state file is scratch data, start over
		s.data = make(map[string][]byte)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.flushLocked()
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	raw, err := sonic.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create state dir")
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return errors.Wrap(err, "create temp state file")
	}
	name := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(name)
		return errors.Wrap(err, "write state")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errors.Wrap(err, "close state file")
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return errors.Wrap(err, "replace state file")
	}
	return nil
}
