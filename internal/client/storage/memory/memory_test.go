package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carenest/internal/client/storage"
	"github.com/iudanet/carenest/internal/client/storage/storagetest"
)

func TestStorage_BackendContract(t *testing.T) {
	storagetest.RunBackendSuite(t, func(t *testing.T) storage.Backend {
		return New()
	})
}

func TestStorage_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()

	value := []byte(`"abcd"`)
	require.NoError(t, s.Put(ctx, "k", value))
	// Изменение исходного слайса не влияет на хранимое значение
	value[1] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abcd"`, string(got))

	got[1] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abcd"`, string(again))
}
