package codec

import (
	"encoding/asn1"
	"fmt"
	"math/big"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// pkcs8Version is the only PrivateKeyInfo version this codec accepts.
const pkcs8Version = 0

// readPrivateKeyInfo decodes a PKCS#8 PrivateKeyInfo container, dispatching
// on the algorithm OID inside the structure.
func (c *derCodec) readPrivateKeyInfo(der []byte) (*keys.Key, error) {
	var info pkcs8PrivateKeyInfo
	if err := unmarshalExact(der, &info); err != nil {
		return nil, err
	}
	if info.Version != pkcs8Version {
		return nil, fmt.Errorf("%w: PrivateKeyInfo version %d", provider.ErrUnsupportedKeyVariant, info.Version)
	}

	switch {
	case info.Algorithm.Algorithm.Equal(oidPublicKeyRSA):
		return c.readRSAPrivateKey(info.PrivateKey)

	case info.Algorithm.Algorithm.Equal(oidPublicKeyDSA):
		params, err := decodeDSAAlgorithmParameters(info.Algorithm.Parameters)
		if err != nil {
			return nil, err
		}
		var x *big.Int
		if err := unmarshalExact(info.PrivateKey, &x); err != nil {
			return nil, err
		}
		// PKCS#8 carries only the private value; the public value is
		// recomputed from the group generator.
		y := new(big.Int).Exp(params.G, x, params.P)
		return keys.NewDSAPrivateKey(params, y, x), nil

	case info.Algorithm.Algorithm.Equal(oidPublicKeyEC):
		curveName, err := decodeNamedCurveParameters(info.Algorithm.Parameters)
		if err != nil {
			return nil, err
		}
		return c.readSEC1PrivateKey(info.PrivateKey, curveName)

	default:
		return nil, fmt.Errorf("%w: unrecognized algorithm OID %v",
			provider.ErrUnsupportedAlgorithm, info.Algorithm.Algorithm)
	}
}

// writePrivateKeyInfo encodes a private key as a PKCS#8 PrivateKeyInfo
// container.
func (c *derCodec) writePrivateKeyInfo(key *keys.Key) ([]byte, error) {
	if err := requirePrivate(key, keys.FormatPrivateKeyInfo); err != nil {
		return nil, err
	}

	var algo algorithmIdentifier
	var inner []byte

	switch key.Family {
	case keys.FamilyRSA:
		der, err := c.writeRSAPrivateKey(key)
		if err != nil {
			return nil, err
		}
		algo = algorithmIdentifier{Algorithm: oidPublicKeyRSA, Parameters: asn1.NullRawValue}
		inner = der

	case keys.FamilyDSA:
		paramsDER, err := encodeDSAAlgorithmParameters(key.DSA.Params)
		if err != nil {
			return nil, err
		}
		der, err := asn1.Marshal(key.DSA.X)
		if err != nil {
			return nil, fmt.Errorf("failed to encode DSA private value: %w", err)
		}
		algo = algorithmIdentifier{Algorithm: oidPublicKeyDSA, Parameters: paramsDER}
		inner = der

	case keys.FamilyEC:
		paramsDER, err := encodeNamedCurveParameters(key.EC.Curve)
		if err != nil {
			return nil, err
		}
		der, err := c.writeSEC1PrivateKey(key, false)
		if err != nil {
			return nil, err
		}
		algo = algorithmIdentifier{Algorithm: oidPublicKeyEC, Parameters: paramsDER}
		inner = der

	default:
		return nil, fmt.Errorf("%w: key family %s", provider.ErrUnsupportedAlgorithm, key.Family)
	}

	der, err := asn1.Marshal(pkcs8PrivateKeyInfo{
		Version:    pkcs8Version,
		Algorithm:  algo,
		PrivateKey: inner,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode PrivateKeyInfo: %w", err)
	}
	return der, nil
}
