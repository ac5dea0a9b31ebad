// Package memstore is a process-local store backed by ristretto. State
// kept here does not survive a restart; hosts that need persistence
// across runs pair it with filestore or redisstore.
package memstore

import (
	"context"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/updatekit/updatekit/store"
)

type Store struct {
	cache *ristretto.Cache[string, []byte]
}

func New() *Store {
	cache, _ := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 500,
		MaxCost:     500,
		BufferItems: 64,
	})
	return &Store{cache: cache}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.cache.Set(key, value, 1)
	// ristretto applies writes asynchronously; readers expect their own
	// writes back immediately
	s.cache.Wait()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.cache.Del(key)
	return nil
}

func (s *Store) Close() {
	s.cache.Close()
}
