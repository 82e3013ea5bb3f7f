package keys

import (
	"crypto/elliptic"
	"fmt"
)

// Named curve identifiers
const (
	CurveP224 = "P-224"
	CurveP256 = "P-256"
	CurveP384 = "P-384"
	CurveP521 = "P-521"
)

// CurveByName resolves a named curve identifier to its parameters.
func CurveByName(name string) (elliptic.Curve, error) {
	switch name {
	case CurveP224:
		return elliptic.P224(), nil
	case CurveP256:
		return elliptic.P256(), nil
	case CurveP384:
		return elliptic.P384(), nil
	case CurveP521:
		return elliptic.P521(), nil
	default:
		return nil, fmt.Errorf("unknown curve %q", name)
	}
}

// CurveFieldByteLength returns ceil(field bit-length / 8) for a named curve,
// the fixed width of point coordinates and scalars on the wire.
func CurveFieldByteLength(name string) (int, error) {
	curve, err := CurveByName(name)
	if err != nil {
		return 0, err
	}
	return (curve.Params().BitSize + 7) / 8, nil
}
