package codec

import (
	"encoding/asn1"
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// dsaVersionLegacy is the fixed version field of the legacy DSA private key
// container.
const dsaVersionLegacy = 0

// readDSAPrivateKey decodes the legacy SEQUENCE { 0, p, q, g, y, x } layout.
// The public value y and private value x are bound from their distinct
// positions; implementations that read both from the same slot exist in the
// wild and are not reproduced here.
func (c *derCodec) readDSAPrivateKey(der []byte) (*keys.Key, error) {
	var priv dsaPrivateKey
	if err := unmarshalExact(der, &priv); err != nil {
		return nil, err
	}
	if priv.Version != dsaVersionLegacy {
		return nil, fmt.Errorf("%w: DSAPrivateKey version %d", provider.ErrUnsupportedKeyVariant, priv.Version)
	}

	params := &keys.DSAParameters{P: priv.P, Q: priv.Q, G: priv.G}
	return keys.NewDSAPrivateKey(params, priv.Y, priv.X), nil
}

func (c *derCodec) writeDSAPrivateKey(key *keys.Key) ([]byte, error) {
	if err := requireFamily(key, keys.FamilyDSA, keys.FormatDSAPrivateKey); err != nil {
		return nil, err
	}
	if err := requirePrivate(key, keys.FormatDSAPrivateKey); err != nil {
		return nil, err
	}

	d := key.DSA
	der, err := asn1.Marshal(dsaPrivateKey{
		Version: dsaVersionLegacy,
		P:       d.Params.P,
		Q:       d.Params.Q,
		G:       d.Params.G,
		Y:       d.Y,
		X:       d.X,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode DSA private key: %w", err)
	}
	return der, nil
}
