// Package redisstore keeps check state in redis, for server-side hosts
// where a fleet shares one update-check state.
package redisstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/updatekit/updatekit/store"
)

type Store struct {
	rdb    *redis.Client
	prefix string
}

// New namespaces every key under prefix, typically the package name of
// the host application.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *Store) key(k string) string {
	return "updatekit:" + s.prefix + ":" + k
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(err, "redis get")
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}
