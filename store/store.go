// Package store defines the key-value persistence used for check results
// and dismissal state. Both the foreground flow and the background
// checker write here; implementations are last-write-wins and must not
// assume exclusive access.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
