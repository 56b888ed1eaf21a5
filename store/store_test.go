package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	local, err := NewLocalStore(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)

	return map[string]Store{
		"local":  local,
		"memory": NewMemoryStore(),
	}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "b.mat", []byte("second")))
			require.NoError(t, s.Put(ctx, "a.mat", []byte("first")))
			require.NoError(t, s.Put(ctx, "a.omfs", []byte("snap")))

			data, err := s.Get(ctx, "a.mat")
			require.NoError(t, err)
			require.Equal(t, []byte("first"), data)

			require.NoError(t, s.Put(ctx, "a.mat", []byte("replaced")))
			data, err = s.Get(ctx, "a.mat")
			require.NoError(t, err)
			require.Equal(t, []byte("replaced"), data)

			names, err := s.List(ctx, "")
			require.NoError(t, err)
			require.Equal(t, []string{"a.mat", "a.omfs", "b.mat"}, names)

			names, err = s.List(ctx, "a.")
			require.NoError(t, err)
			require.Equal(t, []string{"a.mat", "a.omfs"}, names)

			_, err = s.Get(ctx, "missing.mat")
			require.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestLocalStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.Equal(t, dir, s.Root())

	require.NoError(t, s.Put(context.Background(), "sub/x.mat", []byte("x")))

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "x.mat", entries[0].Name())
}

func TestLocalStore_RejectsEscapingNames(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range []string{"../x", "/abs", "", "."} {
		require.Error(t, s.Put(ctx, name, []byte("x")), name)
	}
}

func TestLocalStore_CanceledContext(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Put(ctx, "x.mat", nil), context.Canceled)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Put(ctx, filepath.Join("run", string(rune('a'+i))), []byte{byte(i)})
		}()
	}
	wg.Wait()

	names, err := s.List(ctx, "run")
	require.NoError(t, err)
	require.Len(t, names, 16)
}
