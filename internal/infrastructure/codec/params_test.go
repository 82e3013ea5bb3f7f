//go:build unit
// +build unit

package codec

import (
	"errors"
	"math/big"
	"testing"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgorithmParametersRoundTrips(t *testing.T) {
	c := setupCodec(t)

	t.Run("DSA", func(t *testing.T) {
		params := &keys.AlgorithmParameters{
			Family: keys.FamilyDSA,
			DSA:    &keys.DSAParameters{P: big.NewInt(283), Q: big.NewInt(47), G: big.NewInt(60)},
		}

		der, err := c.WriteParams(params, keys.FormatDSAParameters)
		require.NoError(t, err)

		decoded, err := c.ReadParams(der, keys.FormatDSAParameters)
		require.NoError(t, err)
		assert.True(t, params.DSA.Equal(decoded.DSA))
	})

	t.Run("EC", func(t *testing.T) {
		params := &keys.AlgorithmParameters{
			Family: keys.FamilyEC,
			EC:     &keys.ECParameters{Curve: keys.CurveP384},
		}

		der, err := c.WriteParams(params, keys.FormatECParameters)
		require.NoError(t, err)

		decoded, err := c.ReadParams(der, keys.FormatECParameters)
		require.NoError(t, err)
		assert.Equal(t, keys.CurveP384, decoded.EC.Curve)
	})

	t.Run("DHWithSubgroupOrder", func(t *testing.T) {
		params := &keys.AlgorithmParameters{
			Family: keys.FamilyDH,
			DH:     &keys.DHParameters{P: big.NewInt(23), G: big.NewInt(5), Q: big.NewInt(11)},
		}

		der, err := c.WriteParams(params, keys.FormatDHParameters)
		require.NoError(t, err)

		decoded, err := c.ReadParams(der, keys.FormatDHParameters)
		require.NoError(t, err)
		assert.Zero(t, decoded.DH.P.Cmp(big.NewInt(23)))
		assert.Zero(t, decoded.DH.Q.Cmp(big.NewInt(11)))
	})

	t.Run("DHWithoutSubgroupOrder", func(t *testing.T) {
		params := &keys.AlgorithmParameters{
			Family: keys.FamilyDH,
			DH:     &keys.DHParameters{P: big.NewInt(23), G: big.NewInt(5)},
		}

		der, err := c.WriteParams(params, keys.FormatDHParameters)
		require.NoError(t, err)

		decoded, err := c.ReadParams(der, keys.FormatDHParameters)
		require.NoError(t, err)
		assert.Nil(t, decoded.DH.Q)
	})
}

func TestReadParamsFailures(t *testing.T) {
	c := setupCodec(t)

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := c.ReadParams([]byte{0x30, 0x00}, "RC2Parameters")
		assert.True(t, errors.Is(err, provider.ErrUnsupportedAlgorithm))
	})

	t.Run("UnknownCurveOID", func(t *testing.T) {
		// secp256k1 is well-formed but not a supported named curve.
		der := []byte{0x06, 0x05, 0x2b, 0x81, 0x04, 0x00, 0x0a}
		_, err := c.ReadParams(der, keys.FormatECParameters)
		assert.True(t, errors.Is(err, provider.ErrUnsupportedAlgorithm))
	})

	t.Run("MalformedDER", func(t *testing.T) {
		_, err := c.ReadParams([]byte{0x30, 0x05, 0x01}, keys.FormatDSAParameters)
		assert.True(t, errors.Is(err, provider.ErrBadFormat))
	})
}
