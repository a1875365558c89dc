package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *localStorage {
	t.Helper()
	store, err := newLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalSaveNewAndGet(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	content := "fake image bytes"
	err := store.SaveNew(ctx, "submissions/a.jpg", strings.NewReader(content), int64(len(content)), "image/jpeg")
	require.NoError(t, err)

	reader, err := store.Get(ctx, "submissions/a.jpg")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLocalSaveNewNeverOverwrites(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveNew(ctx, "submissions/a.jpg", strings.NewReader("first"), 5, "image/jpeg"))

	err := store.SaveNew(ctx, "submissions/a.jpg", strings.NewReader("second"), 6, "image/jpeg")
	assert.ErrorIs(t, err, ErrKeyExists)

	// Original content is untouched.
	reader, err := store.Get(ctx, "submissions/a.jpg")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestLocalExists(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "submissions/missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.SaveNew(ctx, "submissions/a.jpg", strings.NewReader("x"), 1, "image/jpeg"))

	exists, err = store.Exists(ctx, "submissions/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalRejectsTraversal(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	for _, key := range []string{"../escape.jpg", "submissions/../../etc/passwd", ""} {
		err := store.SaveNew(ctx, key, strings.NewReader("x"), 1, "image/jpeg")
		assert.Error(t, err, "key %q must be rejected", key)

		_, err = store.Get(ctx, key)
		assert.Error(t, err, "key %q must be rejected", key)
	}
}

func TestLocalHealth(t *testing.T) {
	store := newTestLocalStorage(t)
	assert.NoError(t, store.Health(context.Background()))
}
