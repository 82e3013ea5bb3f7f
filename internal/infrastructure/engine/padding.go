package engine

import (
	"fmt"

	"crypto_provider_service/internal/domain/provider"
)

// pkcs7Pad appends PKCS#7 padding so the result is a whole number of blocks.
// Input that is already aligned gains a full block of padding.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad validates and strips PKCS#7 padding from an aligned buffer.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: padded data length %d", provider.ErrBadPadding, len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("%w: pad length %d", provider.ErrBadPadding, padLen)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: inconsistent pad bytes", provider.ErrBadPadding)
		}
	}
	return data[:len(data)-padLen], nil
}
