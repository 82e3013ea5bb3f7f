package codec

import (
	"encoding/asn1"
	"fmt"
	"math/big"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// readSubjectPublicKeyInfo decodes a PKIX SubjectPublicKeyInfo container,
// dispatching on the algorithm OID inside the structure.
func (c *derCodec) readSubjectPublicKeyInfo(der []byte) (*keys.Key, error) {
	var spki subjectPublicKeyInfo
	if err := unmarshalExact(der, &spki); err != nil {
		return nil, err
	}

	keyBytes := spki.PublicKey.RightAlign()

	switch {
	case spki.Algorithm.Algorithm.Equal(oidPublicKeyRSA):
		var pub pkcs1PublicKey
		if err := unmarshalExact(keyBytes, &pub); err != nil {
			return nil, err
		}
		return keys.NewRSAPublicKey(pub.N, pub.E), nil

	case spki.Algorithm.Algorithm.Equal(oidPublicKeyDSA):
		params, err := decodeDSAAlgorithmParameters(spki.Algorithm.Parameters)
		if err != nil {
			return nil, err
		}
		var y *big.Int
		if err := unmarshalExact(keyBytes, &y); err != nil {
			return nil, err
		}
		return keys.NewDSAPublicKey(params, y), nil

	case spki.Algorithm.Algorithm.Equal(oidPublicKeyEC):
		curveName, err := decodeNamedCurveParameters(spki.Algorithm.Parameters)
		if err != nil {
			return nil, err
		}
		x, y, err := DecodePoint(keyBytes)
		if err != nil {
			return nil, err
		}
		return keys.NewECPublicKey(curveName, x, y), nil

	default:
		return nil, fmt.Errorf("%w: unrecognized algorithm OID %v",
			provider.ErrUnsupportedAlgorithm, spki.Algorithm.Algorithm)
	}
}

// writeSubjectPublicKeyInfo encodes the public view of a key as a PKIX
// SubjectPublicKeyInfo container. Private components are dropped, never an
// error: this is the standard derive-public-view path.
func (c *derCodec) writeSubjectPublicKeyInfo(key *keys.Key) ([]byte, error) {
	var algo algorithmIdentifier
	var keyBytes []byte

	switch key.Family {
	case keys.FamilyRSA:
		der, err := asn1.Marshal(pkcs1PublicKey{N: key.RSA.N, E: key.RSA.E})
		if err != nil {
			return nil, fmt.Errorf("failed to encode RSA public key: %w", err)
		}
		algo = algorithmIdentifier{Algorithm: oidPublicKeyRSA, Parameters: asn1.NullRawValue}
		keyBytes = der

	case keys.FamilyDSA:
		paramsDER, err := encodeDSAAlgorithmParameters(key.DSA.Params)
		if err != nil {
			return nil, err
		}
		der, err := asn1.Marshal(key.DSA.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to encode DSA public value: %w", err)
		}
		algo = algorithmIdentifier{Algorithm: oidPublicKeyDSA, Parameters: paramsDER}
		keyBytes = der

	case keys.FamilyEC:
		paramsDER, err := encodeNamedCurveParameters(key.EC.Curve)
		if err != nil {
			return nil, err
		}
		byteLen, err := keys.CurveFieldByteLength(key.EC.Curve)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", provider.ErrUnsupportedAlgorithm, err)
		}
		point, err := EncodePoint(key.EC.X, key.EC.Y, byteLen)
		if err != nil {
			return nil, err
		}
		algo = algorithmIdentifier{Algorithm: oidPublicKeyEC, Parameters: paramsDER}
		keyBytes = point

	default:
		return nil, fmt.Errorf("%w: key family %s", provider.ErrUnsupportedAlgorithm, key.Family)
	}

	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algo,
		PublicKey: asn1.BitString{Bytes: keyBytes, BitLength: 8 * len(keyBytes)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode SubjectPublicKeyInfo: %w", err)
	}
	return der, nil
}

func decodeDSAAlgorithmParameters(raw asn1.RawValue) (*keys.DSAParameters, error) {
	if len(raw.FullBytes) == 0 {
		return nil, fmt.Errorf("%w: DSA container is missing domain parameters", provider.ErrBadFormat)
	}
	var params dsaAlgorithmParameters
	if err := unmarshalExact(raw.FullBytes, &params); err != nil {
		return nil, err
	}
	return &keys.DSAParameters{P: params.P, Q: params.Q, G: params.G}, nil
}

func encodeDSAAlgorithmParameters(params *keys.DSAParameters) (asn1.RawValue, error) {
	der, err := asn1.Marshal(dsaAlgorithmParameters{P: params.P, Q: params.Q, G: params.G})
	if err != nil {
		return asn1.RawValue{}, fmt.Errorf("failed to encode DSA parameters: %w", err)
	}
	return asn1.RawValue{FullBytes: der}, nil
}

func decodeNamedCurveParameters(raw asn1.RawValue) (string, error) {
	if len(raw.FullBytes) == 0 {
		return "", fmt.Errorf("%w: EC container is missing curve parameters", provider.ErrBadFormat)
	}
	var oid asn1.ObjectIdentifier
	if err := unmarshalExact(raw.FullBytes, &oid); err != nil {
		return "", err
	}
	name, ok := curveNameForOID(oid)
	if !ok {
		return "", fmt.Errorf("%w: unrecognized curve OID %v", provider.ErrUnsupportedAlgorithm, oid)
	}
	return name, nil
}

func encodeNamedCurveParameters(curveName string) (asn1.RawValue, error) {
	oid, err := oidForCurveName(curveName)
	if err != nil {
		return asn1.RawValue{}, err
	}
	der, err := asn1.Marshal(oid)
	if err != nil {
		return asn1.RawValue{}, fmt.Errorf("failed to encode curve OID: %w", err)
	}
	return asn1.RawValue{FullBytes: der}, nil
}
