//go:build unit
// +build unit

package codec

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/asn1"
	"errors"
	"math/big"
	"testing"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCodec(t *testing.T) keys.Codec {
	t.Helper()
	log := testutil.SetupTestLogger(t)
	c, err := New(log)
	require.NoError(t, err)
	return c
}

// Toy two-prime RSA key: n = 61*53 = 3233, e = 17, d = 413.
func testRSAPrivateKey() *keys.Key {
	return keys.NewRSAPrivateKey(
		big.NewInt(3233), big.NewInt(17),
		big.NewInt(413), big.NewInt(61), big.NewInt(53),
		big.NewInt(53), big.NewInt(49), big.NewInt(38),
	)
}

// Toy DSA group: g has order q mod p and y = g^x mod p.
func testDSAPrivateKey() *keys.Key {
	params := &keys.DSAParameters{P: big.NewInt(283), Q: big.NewInt(47), G: big.NewInt(60)}
	return keys.NewDSAPrivateKey(params, big.NewInt(158), big.NewInt(24))
}

func testECPrivateKey(t *testing.T) *keys.Key {
	t.Helper()
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return keys.NewECPrivateKey(keys.CurveP256, ecKey.X, ecKey.Y, ecKey.D)
}

func TestKeyRoundTrips(t *testing.T) {
	c := setupCodec(t)

	t.Run("RSA", func(t *testing.T) {
		private := testRSAPrivateKey()

		for _, format := range []string{keys.FormatRSAPrivateKey, keys.FormatPrivateKeyInfo} {
			der, err := c.WriteKey(private, format)
			require.NoError(t, err, format)

			decoded, err := c.ReadKey(der, format)
			require.NoError(t, err, format)
			assert.True(t, decoded.Equal(private), format)
			assert.True(t, decoded.IsPrivate(), format)
			assert.Zero(t, decoded.RSA.D.Cmp(private.RSA.D), format)
		}

		for _, format := range []string{keys.FormatRSAPublicKey, keys.FormatSubjectPublicKeyInfo} {
			der, err := c.WriteKey(private, format)
			require.NoError(t, err, format)

			decoded, err := c.ReadKey(der, format)
			require.NoError(t, err, format)
			assert.True(t, decoded.Equal(private.PublicView()), format)
			assert.False(t, decoded.IsPrivate(), format)
		}
	})

	t.Run("DSA", func(t *testing.T) {
		private := testDSAPrivateKey()

		for _, format := range []string{keys.FormatDSAPrivateKey, keys.FormatPrivateKeyInfo} {
			der, err := c.WriteKey(private, format)
			require.NoError(t, err, format)

			decoded, err := c.ReadKey(der, format)
			require.NoError(t, err, format)
			assert.True(t, decoded.Equal(private), format)
			assert.Zero(t, decoded.DSA.X.Cmp(private.DSA.X), format)
		}

		der, err := c.WriteKey(private, keys.FormatSubjectPublicKeyInfo)
		require.NoError(t, err)

		decoded, err := c.ReadKey(der, keys.FormatSubjectPublicKeyInfo)
		require.NoError(t, err)
		assert.True(t, decoded.Equal(private.PublicView()))
		assert.True(t, decoded.DSA.Params.Equal(private.DSA.Params))
	})

	t.Run("EC", func(t *testing.T) {
		private := testECPrivateKey(t)

		for _, format := range []string{keys.FormatECPrivateKey, keys.FormatPrivateKeyInfo} {
			der, err := c.WriteKey(private, format)
			require.NoError(t, err, format)

			decoded, err := c.ReadKey(der, format)
			require.NoError(t, err, format)
			assert.True(t, decoded.Equal(private), format)
			assert.Zero(t, decoded.EC.D.Cmp(private.EC.D), format)
			assert.Equal(t, keys.CurveP256, decoded.EC.Curve, format)
		}

		der, err := c.WriteKey(private, keys.FormatSubjectPublicKeyInfo)
		require.NoError(t, err)

		decoded, err := c.ReadKey(der, keys.FormatSubjectPublicKeyInfo)
		require.NoError(t, err)
		assert.True(t, decoded.Equal(private.PublicView()))
	})
}

func TestEncodePublicViewFromPrivateKey(t *testing.T) {
	c := setupCodec(t)

	// Encoding a private key as a public-only format drops private parts
	// instead of failing.
	der, err := c.WriteKey(testRSAPrivateKey(), keys.FormatSubjectPublicKeyInfo)
	require.NoError(t, err)

	decoded, err := c.ReadKey(der, keys.FormatSubjectPublicKeyInfo)
	require.NoError(t, err)
	assert.False(t, decoded.IsPrivate())
	assert.Equal(t, big.NewInt(3233), decoded.RSA.N)
	assert.Equal(t, big.NewInt(17), decoded.RSA.E)
}

func TestReadKeyRejectsMalformedContainers(t *testing.T) {
	c := setupCodec(t)

	t.Run("GarbageBytes", func(t *testing.T) {
		_, err := c.ReadKey([]byte{0xde, 0xad, 0xbe, 0xef}, keys.FormatSubjectPublicKeyInfo)
		assert.True(t, errors.Is(err, provider.ErrBadFormat))
	})

	t.Run("TrailingBytesAfterPrivateKey", func(t *testing.T) {
		der, err := c.WriteKey(testRSAPrivateKey(), keys.FormatRSAPrivateKey)
		require.NoError(t, err)

		_, err = c.ReadKey(append(der, 0x00), keys.FormatRSAPrivateKey)
		assert.True(t, errors.Is(err, provider.ErrBadFormat))
	})

	t.Run("WrongStructureForFormat", func(t *testing.T) {
		der, err := c.WriteKey(testRSAPrivateKey(), keys.FormatRSAPublicKey)
		require.NoError(t, err)

		_, err = c.ReadKey(der, keys.FormatRSAPrivateKey)
		assert.Error(t, err)
	})

	t.Run("UnknownFormatName", func(t *testing.T) {
		_, err := c.ReadKey([]byte{0x30, 0x00}, "OpenSSHPrivateKey")
		assert.True(t, errors.Is(err, provider.ErrUnsupportedAlgorithm))
	})
}

func TestReadKeyRejectsUnrecognizedOID(t *testing.T) {
	c := setupCodec(t)

	// An Ed25519 SubjectPublicKeyInfo: well-formed, but the OID is not one
	// of the supported families.
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{Algorithm: asn1.ObjectIdentifier{1, 3, 101, 112}},
		PublicKey: asn1.BitString{Bytes: make([]byte, 32), BitLength: 256},
	})
	require.NoError(t, err)

	_, err = c.ReadKey(der, keys.FormatSubjectPublicKeyInfo)
	assert.True(t, errors.Is(err, provider.ErrUnsupportedAlgorithm))
	assert.False(t, errors.Is(err, provider.ErrBadFormat))
}

func TestReadKeyRejectsMultiPrimeRSA(t *testing.T) {
	c := setupCodec(t)

	der, err := asn1.Marshal(pkcs1PrivateKey{
		Version: 1,
		N:       big.NewInt(3233), E: big.NewInt(17), D: big.NewInt(413),
		P: big.NewInt(61), Q: big.NewInt(53),
		Dp: big.NewInt(53), Dq: big.NewInt(49), QInv: big.NewInt(38),
	})
	require.NoError(t, err)

	_, err = c.ReadKey(der, keys.FormatRSAPrivateKey)
	assert.True(t, errors.Is(err, provider.ErrUnsupportedKeyVariant))
}

func TestReadKeyRejectsBadECPoint(t *testing.T) {
	c := setupCodec(t)

	paramsDER, err := encodeNamedCurveParameters(keys.CurveP256)
	require.NoError(t, err)

	// Compressed point tag inside an otherwise well-formed container.
	compressed := append([]byte{0x02}, make([]byte, 32)...)
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{Algorithm: oidPublicKeyEC, Parameters: paramsDER},
		PublicKey: asn1.BitString{Bytes: compressed, BitLength: 8 * len(compressed)},
	})
	require.NoError(t, err)

	_, err = c.ReadKey(der, keys.FormatSubjectPublicKeyInfo)
	assert.True(t, errors.Is(err, provider.ErrBadPoint))
}

func TestWriteKeyRequiresPrivateComponents(t *testing.T) {
	c := setupCodec(t)

	public := testRSAPrivateKey().PublicView()
	_, err := c.WriteKey(public, keys.FormatRSAPrivateKey)
	assert.True(t, errors.Is(err, provider.ErrRequiresPrivateKey))

	_, err = c.WriteKey(public, keys.FormatPrivateKeyInfo)
	assert.True(t, errors.Is(err, provider.ErrRequiresPrivateKey))
}

func TestWriteKeyRejectsFamilyMismatch(t *testing.T) {
	c := setupCodec(t)

	_, err := c.WriteKey(testDSAPrivateKey(), keys.FormatRSAPrivateKey)
	assert.True(t, errors.Is(err, provider.ErrUnsupportedAlgorithm))
}
