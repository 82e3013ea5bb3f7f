package codec

import (
	"fmt"
	"math/big"
)

// FixedWidthBytes converts a non-negative integer to a big-endian byte string
// of exactly byteLength bytes, left-padded with zeros. Used where the
// surrounding format requires fixed-width encoding (EC scalars and point
// coordinates); general ASN.1 INTEGER fields use the ASN.1 layer's own
// minimal-length convention.
func FixedWidthBytes(v *big.Int, byteLength int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("fixed-width encoding requires a non-negative integer")
	}
	if v.BitLen() > 8*byteLength {
		return nil, fmt.Errorf("integer of %d bits does not fit in %d bytes", v.BitLen(), byteLength)
	}
	return v.FillBytes(make([]byte, byteLength)), nil
}

// newBigInt interprets a big-endian byte string as a non-negative integer.
func newBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
