//go:build unit

package engine

import (
	"crypto/sha256"
	"testing"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/infrastructure/backend"
	"crypto_provider_service/internal/pkg/logger"
	"crypto_provider_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) (provider.Backend, *Registry, logger.Logger) {
	t.Helper()
	log := testutil.SetupTestLogger(t)
	b, err := backend.NewSoftwareBackend(log)
	require.NoError(t, err)
	return b, DefaultRegistry(), log
}

func newDigest(t *testing.T, algorithm string) provider.DigestContext {
	t.Helper()
	b, registry, log := setupEngine(t)
	descriptor, err := registry.Lookup(algorithm)
	require.NoError(t, err)
	ctx, err := NewDigestContext(descriptor, b, log)
	require.NoError(t, err)
	return ctx
}

func TestDigestContextFinalize(t *testing.T) {
	t.Run("incremental updates match a one-shot hash", func(t *testing.T) {
		ctx := newDigest(t, backend.AlgorithmSHA256)
		require.NoError(t, ctx.Update([]byte("hello ")))
		require.NoError(t, ctx.Update([]byte("world")))

		sum, err := ctx.Finalize()
		require.NoError(t, err)

		expected := sha256.Sum256([]byte("hello world"))
		assert.Equal(t, expected[:], sum)
	})

	t.Run("output length matches the descriptor", func(t *testing.T) {
		ctx := newDigest(t, backend.AlgorithmBLAKE2b256)
		sum, err := ctx.Finalize()
		require.NoError(t, err)
		assert.Len(t, sum, ctx.Algorithm().DigestSize)
	})

	t.Run("finalize closes the context", func(t *testing.T) {
		ctx := newDigest(t, backend.AlgorithmSHA256)
		_, err := ctx.Finalize()
		require.NoError(t, err)
		assert.Equal(t, provider.StateClosed, ctx.State())

		assert.ErrorIs(t, ctx.Update([]byte("late")), provider.ErrWrongState)
		_, err = ctx.Finalize()
		assert.ErrorIs(t, err, provider.ErrWrongState)
	})
}

func TestDigestContextCopy(t *testing.T) {
	t.Run("copies diverge from a shared prefix", func(t *testing.T) {
		ctx := newDigest(t, backend.AlgorithmSHA256)
		require.NoError(t, ctx.Update([]byte("shared prefix|")))

		clone, err := ctx.Copy()
		require.NoError(t, err)

		require.NoError(t, ctx.Update([]byte("left")))
		require.NoError(t, clone.Update([]byte("right")))

		left, err := ctx.Finalize()
		require.NoError(t, err)
		right, err := clone.Finalize()
		require.NoError(t, err)

		expectedLeft := sha256.Sum256([]byte("shared prefix|left"))
		expectedRight := sha256.Sum256([]byte("shared prefix|right"))
		assert.Equal(t, expectedLeft[:], left)
		assert.Equal(t, expectedRight[:], right)
	})

	t.Run("copying a closed context fails", func(t *testing.T) {
		ctx := newDigest(t, backend.AlgorithmSHA256)
		require.NoError(t, ctx.Close())
		_, err := ctx.Copy()
		assert.ErrorIs(t, err, provider.ErrWrongState)
	})
}

func TestNewDigestContext(t *testing.T) {
	b, registry, log := setupEngine(t)

	t.Run("rejects a cipher descriptor", func(t *testing.T) {
		descriptor, err := registry.Lookup(backend.AlgorithmAES128)
		require.NoError(t, err)
		_, err = NewDigestContext(descriptor, b, log)
		assert.ErrorIs(t, err, provider.ErrUnsupportedAlgorithm)
	})

	t.Run("rejects a public-key descriptor", func(t *testing.T) {
		descriptor, err := registry.Lookup(string(keys.FamilyRSA))
		require.NoError(t, err)
		_, err = NewDigestContext(descriptor, b, log)
		assert.ErrorIs(t, err, provider.ErrUnsupportedAlgorithm)
	})
}
