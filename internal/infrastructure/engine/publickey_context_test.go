//go:build unit

package engine

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicKeyContext(t *testing.T, algorithm string, key *keys.Key) provider.PublicKeyContext {
	t.Helper()
	b, registry, log := setupEngine(t)
	descriptor, err := registry.Lookup(algorithm)
	require.NoError(t, err)
	ctx, err := NewPublicKeyContext(descriptor, b, key, log)
	require.NoError(t, err)
	return ctx
}

func generateKey(t *testing.T, family keys.Family, bits int) *keys.Key {
	t.Helper()
	b, _, _ := setupEngine(t)
	key, err := b.GenerateKey(family, bits)
	require.NoError(t, err)
	return key
}

func TestPublicKeyContextSignVerify(t *testing.T) {
	key := generateKey(t, keys.FamilyRSA, 2048)
	digest := sha256.Sum256([]byte("message"))

	t.Run("sign then verify", func(t *testing.T) {
		signer := newPublicKeyContext(t, AlgorithmRSA, key)
		signature, err := signer.Sign(digest[:])
		require.NoError(t, err)
		assert.LessOrEqual(t, len(signature), signer.MaxSignatureSize())

		verifier := newPublicKeyContext(t, AlgorithmRSA, key.PublicView())
		ok, err := verifier.Verify(digest[:], signature)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("signing with a public-only key fails", func(t *testing.T) {
		ctx := newPublicKeyContext(t, AlgorithmRSA, key.PublicView())
		assert.False(t, ctx.IsPrivate())
		_, err := ctx.Sign(digest[:])
		assert.ErrorIs(t, err, provider.ErrRequiresPrivateKey)
	})

	t.Run("signing after close fails", func(t *testing.T) {
		ctx := newPublicKeyContext(t, AlgorithmRSA, key)
		require.NoError(t, ctx.Close())
		_, err := ctx.Sign(digest[:])
		assert.ErrorIs(t, err, provider.ErrWrongState)
	})
}

func TestPublicKeyContextECDSA(t *testing.T) {
	key := generateKey(t, keys.FamilyEC, 256)
	digest := sha256.Sum256([]byte("message"))

	signer := newPublicKeyContext(t, AlgorithmEC, key)
	signature, err := signer.Sign(digest[:])
	require.NoError(t, err)
	assert.LessOrEqual(t, len(signature), signer.MaxSignatureSize())

	verifier := newPublicKeyContext(t, AlgorithmEC, key.PublicView())
	ok, err := verifier.Verify(digest[:], signature)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("EC keys do not encrypt", func(t *testing.T) {
		_, err := signer.Encrypt([]byte("data"))
		assert.ErrorIs(t, err, provider.ErrUnsupportedOperation)
	})
}

func TestPublicKeyContextEncrypt(t *testing.T) {
	key := generateKey(t, keys.FamilyRSA, 2048)

	t.Run("encrypt with public, decrypt with private", func(t *testing.T) {
		encryptor := newPublicKeyContext(t, AlgorithmRSA, key.PublicView())
		ciphertext, err := encryptor.Encrypt([]byte("secret"))
		require.NoError(t, err)

		decryptor := newPublicKeyContext(t, AlgorithmRSA, key)
		plaintext, err := decryptor.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), plaintext)
	})

	t.Run("decrypting with a public-only key fails", func(t *testing.T) {
		ctx := newPublicKeyContext(t, AlgorithmRSA, key.PublicView())
		_, err := ctx.Decrypt(make([]byte, 256))
		assert.ErrorIs(t, err, provider.ErrRequiresPrivateKey)
	})
}

func TestNewPublicKeyContext(t *testing.T) {
	b, registry, log := setupEngine(t)

	t.Run("family must match the descriptor", func(t *testing.T) {
		descriptor, err := registry.Lookup(AlgorithmDSA)
		require.NoError(t, err)

		rsaKey := keys.NewRSAPublicKey(big.NewInt(3233), big.NewInt(17))
		_, err = NewPublicKeyContext(descriptor, b, rsaKey, log)
		assert.ErrorIs(t, err, provider.ErrUnsupportedAlgorithm)
	})

	t.Run("toy RSA public key binds and reports its size", func(t *testing.T) {
		key := keys.NewRSAPublicKey(big.NewInt(3233), big.NewInt(17))
		ctx := newPublicKeyContext(t, AlgorithmRSA, key)
		assert.Equal(t, 12, ctx.KeySizeBits())
		assert.Equal(t, provider.StateReady, ctx.State())
	})
}
