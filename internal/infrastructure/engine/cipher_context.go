package engine

import (
	"fmt"

	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/pkg/logger"
)

// cipherContext struct that implements the provider.CipherContext interface.
// It turns a raw block or stream primitive into an incremental byte-stream
// transform. Between Update calls at most one block of input is buffered;
// decryption with padding additionally retains the last full ciphertext block
// until Finalize so the padding can be stripped.
type cipherContext struct {
	descriptor *provider.AlgorithmDescriptor
	mode       provider.CipherMode
	direction  provider.Direction
	padding    bool
	state      provider.State
	logger     logger.Logger

	block  provider.BlockPrimitive
	stream provider.StreamPrimitive

	carry []byte // buffered unprocessed input
	chain []byte // CBC chaining block
	prev  []byte // CBC decrypt scratch

	counter   []byte // CTR counter block
	keystream []byte // CTR keystream for the current counter
	ksUsed    int    // keystream bytes already consumed
}

// NewCipherContext creates a ready-to-use cipher context. The IV length must
// match what the mode requires: none for ECB, the descriptor's IV size
// otherwise. Padding applies to ECB and CBC only.
func NewCipherContext(descriptor *provider.AlgorithmDescriptor, b provider.Backend, mode provider.CipherMode,
	direction provider.Direction, key, iv []byte, padding bool, logger logger.Logger) (provider.CipherContext, error) {

	if descriptor.Class != provider.ClassCipher {
		return nil, fmt.Errorf("%w: %q is not a cipher algorithm", provider.ErrUnsupportedAlgorithm, descriptor.Name)
	}
	if len(key) != descriptor.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, algorithm %q takes %d",
			provider.ErrBadKeySize, len(key), descriptor.Name, descriptor.KeySize)
	}

	expectedIV := descriptor.IVSize
	if mode == provider.ModeECB {
		expectedIV = 0
	}
	if len(iv) != expectedIV {
		return nil, fmt.Errorf("%w: got %d bytes, mode %s takes %d",
			provider.ErrBadIVSize, len(iv), mode, expectedIV)
	}

	c := &cipherContext{
		descriptor: descriptor,
		mode:       mode,
		direction:  direction,
		padding:    padding,
		logger:     logger,
	}

	switch mode {
	case provider.ModeStream:
		if descriptor.BlockSize != 1 {
			return nil, fmt.Errorf("%w: %q is not a stream primitive", provider.ErrUnsupportedAlgorithm, descriptor.Name)
		}
		stream, err := b.StreamCipher(descriptor.Name, key, iv)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher context: %w", err)
		}
		c.stream = stream

	case provider.ModeECB, provider.ModeCBC, provider.ModeCTR:
		if descriptor.BlockSize <= 1 {
			return nil, fmt.Errorf("%w: %q has no block primitive", provider.ErrUnsupportedAlgorithm, descriptor.Name)
		}
		block, err := b.BlockCipher(descriptor.Name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher context: %w", err)
		}
		c.block = block

		switch mode {
		case provider.ModeCBC:
			c.chain = append([]byte(nil), iv...)
			c.prev = make([]byte, descriptor.BlockSize)
		case provider.ModeCTR:
			c.counter = append([]byte(nil), iv...)
			c.keystream = make([]byte, descriptor.BlockSize)
			c.ksUsed = descriptor.BlockSize
		}

	default:
		return nil, fmt.Errorf("%w: cipher mode %q", provider.ErrUnsupportedAlgorithm, mode)
	}

	c.state = provider.StateReady
	return c, nil
}

func (c *cipherContext) Algorithm() *provider.AlgorithmDescriptor { return c.descriptor }

func (c *cipherContext) State() provider.State { return c.state }

// Update appends input to the stream and returns all output that can be
// produced without seeing more data.
func (c *cipherContext) Update(input []byte) ([]byte, error) {
	if err := provider.CheckState(c.state, provider.StateReady); err != nil {
		return nil, err
	}

	switch c.mode {
	case provider.ModeStream:
		output := make([]byte, len(input))
		c.stream.XORKeyStream(output, input)
		return output, nil

	case provider.ModeCTR:
		output := make([]byte, len(input))
		c.ctrXOR(output, input)
		return output, nil

	default:
		return c.updateBlocks(input), nil
	}
}

// updateBlocks buffers input and transforms every block that is safe to emit.
// Decryption with padding keeps one full block back: the final ciphertext
// block carries the padding and must not reach the caller before Finalize.
func (c *cipherContext) updateBlocks(input []byte) []byte {
	blockSize := c.block.BlockSize()

	data := make([]byte, 0, len(c.carry)+len(input))
	data = append(data, c.carry...)
	data = append(data, input...)

	keep := len(data) % blockSize
	if c.direction == provider.DirectionDecrypt && c.padding && keep == 0 && len(data) > 0 {
		keep = blockSize
	}

	process := data[:len(data)-keep]
	c.carry = append([]byte(nil), data[len(data)-keep:]...)

	output := make([]byte, len(process))
	for offset := 0; offset < len(process); offset += blockSize {
		c.transformBlock(output[offset:offset+blockSize], process[offset:offset+blockSize])
	}
	return output
}

// transformBlock applies one block in the configured mode and direction,
// advancing the CBC chain as needed.
func (c *cipherContext) transformBlock(dst, src []byte) {
	switch c.mode {
	case provider.ModeECB:
		if c.direction == provider.DirectionEncrypt {
			c.block.EncryptBlock(dst, src)
		} else {
			c.block.DecryptBlock(dst, src)
		}

	case provider.ModeCBC:
		if c.direction == provider.DirectionEncrypt {
			for i := range src {
				dst[i] = src[i] ^ c.chain[i]
			}
			c.block.EncryptBlock(dst, dst)
			copy(c.chain, dst)
		} else {
			copy(c.prev, src)
			c.block.DecryptBlock(dst, src)
			for i := range dst {
				dst[i] ^= c.chain[i]
			}
			copy(c.chain, c.prev)
		}
	}
}

// ctrXOR XORs input with the counter-mode keystream. The encrypt primitive
// generates the keystream in both directions.
func (c *cipherContext) ctrXOR(dst, src []byte) {
	blockSize := c.block.BlockSize()
	for i := range src {
		if c.ksUsed == blockSize {
			c.block.EncryptBlock(c.keystream, c.counter)
			incrementCounter(c.counter)
			c.ksUsed = 0
		}
		dst[i] = src[i] ^ c.keystream[c.ksUsed]
		c.ksUsed++
	}
}

// incrementCounter treats the counter block as a big-endian integer.
func incrementCounter(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}

// Finalize flushes buffered data and closes the context. The context is
// closed and its key material released even when finalization fails.
func (c *cipherContext) Finalize() ([]byte, error) {
	if err := provider.CheckState(c.state, provider.StateReady); err != nil {
		return nil, err
	}

	output, err := c.finalizeOutput()
	closeErr := c.Close()
	if err != nil {
		return nil, err
	}
	return output, closeErr
}

func (c *cipherContext) finalizeOutput() ([]byte, error) {
	switch c.mode {
	case provider.ModeStream, provider.ModeCTR:
		// These modes drain on every Update; nothing is buffered.
		return []byte{}, nil
	}

	blockSize := c.block.BlockSize()

	if c.direction == provider.DirectionEncrypt {
		if !c.padding {
			if len(c.carry) != 0 {
				return nil, fmt.Errorf("%w: %d trailing bytes", provider.ErrIncompleteBlock, len(c.carry))
			}
			return []byte{}, nil
		}

		padded := pkcs7Pad(c.carry, blockSize)
		output := make([]byte, len(padded))
		for offset := 0; offset < len(padded); offset += blockSize {
			c.transformBlock(output[offset:offset+blockSize], padded[offset:offset+blockSize])
		}
		return output, nil
	}

	if !c.padding {
		if len(c.carry) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes", provider.ErrIncompleteBlock, len(c.carry))
		}
		return []byte{}, nil
	}

	// Padded decryption holds the final ciphertext block in the carry buffer.
	if len(c.carry) != blockSize {
		return nil, fmt.Errorf("%w: padded ciphertext is not block aligned", provider.ErrIncompleteBlock)
	}
	last := make([]byte, blockSize)
	c.transformBlock(last, c.carry)
	return pkcs7Unpad(last, blockSize)
}

// Close releases key material and marks the context closed. Closing twice is
// harmless.
func (c *cipherContext) Close() error {
	zeroize(c.carry)
	zeroize(c.chain)
	zeroize(c.prev)
	zeroize(c.counter)
	zeroize(c.keystream)
	c.carry, c.chain, c.prev, c.counter, c.keystream = nil, nil, nil, nil, nil
	c.block = nil
	c.stream = nil
	c.state = provider.StateClosed
	return nil
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
