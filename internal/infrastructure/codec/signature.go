package codec

import (
	"encoding/asn1"
	"fmt"
	"math/big"
)

// dsaSignature is the SEQUENCE { INTEGER r, INTEGER s } layout shared by DSA
// and ECDSA signatures.
type dsaSignature struct {
	R *big.Int
	S *big.Int
}

// MarshalDSASignature encodes a (r, s) signature pair as DER.
func MarshalDSASignature(r, s *big.Int) ([]byte, error) {
	if r == nil || s == nil {
		return nil, fmt.Errorf("signature components must not be nil")
	}
	der, err := asn1.Marshal(dsaSignature{R: r, S: s})
	if err != nil {
		return nil, fmt.Errorf("failed to encode signature: %w", err)
	}
	return der, nil
}

// UnmarshalDSASignature decodes a DER SEQUENCE { r, s } signature.
func UnmarshalDSASignature(der []byte) (r, s *big.Int, err error) {
	var sig dsaSignature
	if err := unmarshalExact(der, &sig); err != nil {
		return nil, nil, err
	}
	return sig.R, sig.S, nil
}
