package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/updatekit/updatekit/store"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "update_info")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, "update_info", []byte(`{"v":1}`)))
	v, err := s.Get(ctx, "update_info")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"v":1}`), v)

	require.NoError(t, s.Delete(ctx, "update_info"))
	_, err = s.Get(ctx, "update_info")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "dismissed_version", []byte(`"1.2.0"`)))
	require.NoError(t, s.Set(ctx, "dismiss_count", []byte(`3`)))

	reopened, err := Open(path)
	require.NoError(t, err)
	v, err := reopened.Get(ctx, "dismissed_version")
	require.NoError(t, err)
	require.Equal(t, []byte(`"1.2.0"`), v)
}

func TestFileStoreCorruptFileStartsFresh(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Get(ctx, "anything")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "last_check", []byte(`1717243200000`)))

	_, err = os.Stat(path)
	require.NoError(t, err)
}
