package codec

import (
	"fmt"
	"math/big"

	"crypto_provider_service/internal/domain/provider"
)

// uncompressedPointTag is the leading byte of an uncompressed point (SEC1 2.3.3).
const uncompressedPointTag = 0x04

// EncodePoint encodes an elliptic curve point in uncompressed form:
// the tag byte 0x04 followed by two fixed-width big-endian coordinates.
func EncodePoint(x, y *big.Int, fieldByteLength int) ([]byte, error) {
	xBytes, err := FixedWidthBytes(x, fieldByteLength)
	if err != nil {
		return nil, fmt.Errorf("invalid x coordinate: %w", err)
	}
	yBytes, err := FixedWidthBytes(y, fieldByteLength)
	if err != nil {
		return nil, fmt.Errorf("invalid y coordinate: %w", err)
	}

	out := make([]byte, 0, 1+2*fieldByteLength)
	out = append(out, uncompressedPointTag)
	out = append(out, xBytes...)
	out = append(out, yBytes...)
	return out, nil
}

// DecodePoint decodes an uncompressed elliptic curve point. Compressed and
// point-at-infinity encodings are rejected; callers needing those must handle
// them upstream.
func DecodePoint(data []byte) (x, y *big.Int, err error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty point encoding", provider.ErrBadPoint)
	}
	if data[0] != uncompressedPointTag {
		return nil, nil, fmt.Errorf("%w: leading byte 0x%02x is not the uncompressed form tag", provider.ErrBadPoint, data[0])
	}
	if len(data)%2 != 1 || len(data) < 3 {
		return nil, nil, fmt.Errorf("%w: coordinates must be two equal-length byte strings", provider.ErrBadPoint)
	}

	byteLen := (len(data) - 1) / 2
	x = new(big.Int).SetBytes(data[1 : 1+byteLen])
	y = new(big.Int).SetBytes(data[1+byteLen:])
	return x, y, nil
}
