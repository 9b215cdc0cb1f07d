// Package storagetest contains the behaviour every storage.Backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carenest/internal/client/storage"
)

// RunBackendSuite runs the contract tests against backends produced by newBackend.
// Every subtest receives a fresh, empty backend.
func RunBackendSuite(t *testing.T, newBackend func(t *testing.T) storage.Backend) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)

		require.NoError(t, b.Put(ctx, "profiles", []byte(`[{"id":"1"}]`)))
		got, err := b.Get(ctx, "profiles")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(got))

		// Перезапись заменяет значение целиком
		require.NoError(t, b.Put(ctx, "profiles", []byte(`[]`)))
		got, err = b.Get(ctx, "profiles")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)

		require.NoError(t, b.Put(ctx, "k", []byte(`true`)))
		require.NoError(t, b.Delete(ctx, "k"))
		require.NoError(t, b.Delete(ctx, "k"))

		_, err := b.Get(ctx, "k")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("KeysByPrefix", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)

		for _, k := range []string{"log-b-2", "log-a-2", "log-a-1", "meds-a", "logx"} {
			require.NoError(t, b.Put(ctx, k, []byte(`{}`)))
		}

		keys, err := b.Keys(ctx, "log-a-")
		require.NoError(t, err)
		assert.Equal(t, []string{"log-a-1", "log-a-2"}, keys)

		keys, err = b.Keys(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"log-a-1", "log-a-2", "log-b-2", "logx", "meds-a"}, keys)

		keys, err = b.Keys(ctx, "nothing-")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("Clear", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)

		require.NoError(t, b.Put(ctx, "a", []byte(`1`)))
		require.NoError(t, b.Put(ctx, "b", []byte(`2`)))
		require.NoError(t, b.Clear(ctx))

		keys, err := b.Keys(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, keys)

		// После очистки хранилище остается рабочим
		require.NoError(t, b.Put(ctx, "c", []byte(`3`)))
		got, err := b.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, `3`, string(got))
	})

	t.Run("ClosedStorage", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)
		require.NoError(t, b.Close())

		_, err := b.Get(ctx, "k")
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
		assert.ErrorIs(t, b.Put(ctx, "k", []byte(`1`)), storage.ErrStorageClosed)
		assert.ErrorIs(t, b.Delete(ctx, "k"), storage.ErrStorageClosed)
		_, err = b.Keys(ctx, "")
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
		assert.ErrorIs(t, b.Clear(ctx), storage.ErrStorageClosed)

		// Повторный Close не должен падать
		assert.NoError(t, b.Close())
	})
}
