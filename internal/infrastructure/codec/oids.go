package codec

import (
	"encoding/asn1"
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// Algorithm object identifiers from RFC 3279 and RFC 5480.
var (
	oidPublicKeyRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidPublicKeyDSA = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}
	oidPublicKeyEC  = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

// Named curve object identifiers from RFC 5480.
var (
	oidNamedCurveP224 = asn1.ObjectIdentifier{1, 3, 132, 0, 33}
	oidNamedCurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidNamedCurveP384 = asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	oidNamedCurveP521 = asn1.ObjectIdentifier{1, 3, 132, 0, 35}
)

func oidForCurveName(name string) (asn1.ObjectIdentifier, error) {
	switch name {
	case keys.CurveP224:
		return oidNamedCurveP224, nil
	case keys.CurveP256:
		return oidNamedCurveP256, nil
	case keys.CurveP384:
		return oidNamedCurveP384, nil
	case keys.CurveP521:
		return oidNamedCurveP521, nil
	default:
		return nil, fmt.Errorf("%w: unknown curve %q", provider.ErrUnsupportedAlgorithm, name)
	}
}

func curveNameForOID(oid asn1.ObjectIdentifier) (string, bool) {
	switch {
	case oid.Equal(oidNamedCurveP224):
		return keys.CurveP224, true
	case oid.Equal(oidNamedCurveP256):
		return keys.CurveP256, true
	case oid.Equal(oidNamedCurveP384):
		return keys.CurveP384, true
	case oid.Equal(oidNamedCurveP521):
		return keys.CurveP521, true
	default:
		return "", false
	}
}
