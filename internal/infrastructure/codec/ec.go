package codec

import (
	"encoding/asn1"
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// sec1VersionOne is the fixed version field of the SEC1 ECPrivateKey
// structure (RFC 5915).
const sec1VersionOne = 1

func (c *derCodec) readECPrivateKey(der []byte) (*keys.Key, error) {
	return c.readSEC1PrivateKey(der, "")
}

// readSEC1PrivateKey decodes an ECPrivateKey structure. outerCurve names the
// curve carried by an enclosing PKCS#8 AlgorithmIdentifier, or is empty for
// the standalone format.
func (c *derCodec) readSEC1PrivateKey(der []byte, outerCurve string) (*keys.Key, error) {
	var priv sec1PrivateKey
	if err := unmarshalExact(der, &priv); err != nil {
		return nil, err
	}
	if priv.Version != sec1VersionOne {
		return nil, fmt.Errorf("%w: ECPrivateKey version %d", provider.ErrUnsupportedKeyVariant, priv.Version)
	}

	curveName := outerCurve
	if len(priv.NamedCurveOID) > 0 {
		name, ok := curveNameForOID(priv.NamedCurveOID)
		if !ok {
			return nil, fmt.Errorf("%w: unrecognized curve OID %v", provider.ErrUnsupportedAlgorithm, priv.NamedCurveOID)
		}
		curveName = name
	}
	if curveName == "" {
		return nil, fmt.Errorf("%w: ECPrivateKey does not name a curve", provider.ErrBadFormat)
	}

	if len(priv.PrivateKey) == 0 {
		return nil, fmt.Errorf("%w: ECPrivateKey has an empty scalar", provider.ErrBadFormat)
	}
	scalar := newBigInt(priv.PrivateKey)

	if priv.PublicKey.BitLength == 0 {
		return nil, fmt.Errorf("%w: ECPrivateKey does not carry the public point", provider.ErrBadFormat)
	}
	x, y, err := DecodePoint(priv.PublicKey.RightAlign())
	if err != nil {
		return nil, err
	}

	return keys.NewECPrivateKey(curveName, x, y, scalar), nil
}

func (c *derCodec) writeECPrivateKey(key *keys.Key) ([]byte, error) {
	if err := requireFamily(key, keys.FamilyEC, keys.FormatECPrivateKey); err != nil {
		return nil, err
	}
	if err := requirePrivate(key, keys.FormatECPrivateKey); err != nil {
		return nil, err
	}
	return c.writeSEC1PrivateKey(key, true)
}

// writeSEC1PrivateKey encodes an ECPrivateKey structure. The curve OID is
// included for the standalone format and omitted when the structure nests
// inside PKCS#8, where the AlgorithmIdentifier already names the curve.
func (c *derCodec) writeSEC1PrivateKey(key *keys.Key, includeCurveOID bool) ([]byte, error) {
	ec := key.EC

	byteLen, err := keys.CurveFieldByteLength(ec.Curve)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrUnsupportedAlgorithm, err)
	}

	scalar, err := FixedWidthBytes(ec.D, byteLen)
	if err != nil {
		return nil, fmt.Errorf("invalid EC scalar: %w", err)
	}
	point, err := EncodePoint(ec.X, ec.Y, byteLen)
	if err != nil {
		return nil, err
	}

	priv := sec1PrivateKey{
		Version:    sec1VersionOne,
		PrivateKey: scalar,
		PublicKey:  asn1.BitString{Bytes: point, BitLength: 8 * len(point)},
	}
	if includeCurveOID {
		oid, err := oidForCurveName(ec.Curve)
		if err != nil {
			return nil, err
		}
		priv.NamedCurveOID = oid
	}

	der, err := asn1.Marshal(priv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode EC private key: %w", err)
	}
	return der, nil
}
