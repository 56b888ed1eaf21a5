package minio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/omf/store"
)

// TestStore_Integration needs a MinIO server; set OMF_MINIO_ENDPOINT to run it.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("OMF_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("OMF_MINIO_ENDPOINT not set")
	}

	s, err := Dial(Options{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}, "omf-test", "it/")
	require.NoError(t, err)

	ctx := context.Background()
	if _, err := s.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}
	require.NoError(t, s.EnsureBucket(ctx))

	require.NoError(t, s.Put(ctx, "a.mat", []byte("hello")))
	data, err := s.Get(ctx, "a.mat")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Contains(t, names, "a.mat")

	_, err = s.Get(ctx, "missing.mat")
	require.True(t, errors.Is(err, store.ErrNotFound))
}

func TestStore_Keys(t *testing.T) {
	s := NewStore(nil, "bucket", "runs/42")
	require.Equal(t, "runs/42/m000.mat", s.key("m000.mat"))

	require.Equal(t, "application/x-matlab-data", contentType("m000.mat"))
	require.Equal(t, "application/octet-stream", contentType("m000.omfs"))
}
