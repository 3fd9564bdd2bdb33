package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"tabreview-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	path, err := store.Upload(context.Background(), projectID, "nda final.txt", strings.NewReader("agreement text"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "projects/"+projectID.String()+"/"))
	assert.True(t, strings.HasSuffix(path, "_nda_final.txt"))

	reader, err := store.Download(context.Background(), path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "agreement text", string(data))
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := store.Upload(context.Background(), uuid.New(), "contract.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), path))

	_, err = store.Download(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not found")

	// Deleting an already removed path is a no-op.
	require.NoError(t, store.Delete(context.Background(), path))
}

func TestUploadSeparatesSameFilename(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	first, err := store.Upload(context.Background(), projectID, "nda.txt", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), projectID, "nda.txt", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
