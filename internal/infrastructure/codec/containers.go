package codec

import (
	"encoding/asn1"
	"fmt"
	"math/big"

	"crypto_provider_service/internal/domain/provider"
)

// ASN.1 templates of the supported container structures. Field order matters;
// encoding/asn1 marshals struct fields in declaration order.

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

// subjectPublicKeyInfo is the PKIX public key container (RFC 5280).
type subjectPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

// pkcs8PrivateKeyInfo is the PKCS#8 private key container (RFC 5208).
type pkcs8PrivateKeyInfo struct {
	Version    int
	Algorithm  algorithmIdentifier
	PrivateKey []byte
}

// pkcs1PrivateKey is the two-prime RSAPrivateKey structure (RFC 8017).
type pkcs1PrivateKey struct {
	Version int
	N       *big.Int
	E       *big.Int
	D       *big.Int
	P       *big.Int
	Q       *big.Int
	Dp      *big.Int
	Dq      *big.Int
	QInv    *big.Int
}

// pkcs1PublicKey is the bare RSAPublicKey structure (RFC 8017).
type pkcs1PublicKey struct {
	N *big.Int
	E *big.Int
}

// dsaPrivateKey is the legacy OpenSSL DSA private key layout.
type dsaPrivateKey struct {
	Version int
	P       *big.Int
	Q       *big.Int
	G       *big.Int
	Y       *big.Int
	X       *big.Int
}

// dsaAlgorithmParameters are the DSA domain parameters (RFC 3279).
type dsaAlgorithmParameters struct {
	P *big.Int
	Q *big.Int
	G *big.Int
}

// dhAlgorithmParameters are PKCS#3 / RFC 3279 DH group parameters.
type dhAlgorithmParameters struct {
	P *big.Int
	G *big.Int
	Q *big.Int `asn1:"optional"`
}

// sec1PrivateKey is the SEC1 ECPrivateKey structure (RFC 5915).
type sec1PrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

// unmarshalExact decodes a DER structure and rejects trailing bytes after the
// enclosing SEQUENCE.
func unmarshalExact(der []byte, val interface{}) error {
	rest, err := asn1.Unmarshal(der, val)
	if err != nil {
		return fmt.Errorf("%w: %v", provider.ErrBadFormat, err)
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes after structure", provider.ErrBadFormat, len(rest))
	}
	return nil
}
