package provider

import (
	"hash"

	"crypto_provider_service/internal/domain/keys"
)

// Context is the base contract every stateful cryptographic handle obeys.
// A context is exclusively owned by one caller at a time; its methods carry
// no internal synchronization.
type Context interface {
	// Algorithm returns the immutable descriptor this context is bound to.
	Algorithm() *AlgorithmDescriptor

	// State returns the current lifecycle state.
	State() State

	// Close releases backend resources and key material. Using a closed
	// context afterwards fails with ErrWrongState.
	Close() error
}

// DigestContext computes a message digest incrementally.
type DigestContext interface {
	Context

	// Update feeds more data into the digest. Repeatable while Ready.
	Update(data []byte) error

	// Finalize returns the digest, sized exactly to the algorithm's declared
	// digest size, and closes the context.
	Finalize() ([]byte, error)

	// Copy returns an independent context with identical internal state,
	// enabling digests that share a common prefix. Copying a closed
	// context fails with ErrWrongState.
	Copy() (DigestContext, error)
}

// CipherContext transforms a byte stream under a symmetric cipher.
type CipherContext interface {
	Context

	// Update appends input to the stream and returns all fully transformed
	// output. Block modes carry at most one partial block between calls.
	Update(input []byte) ([]byte, error)

	// Finalize flushes the stream and closes the context. Block modes fail
	// with ErrIncompleteBlock on unpadded leftover data.
	Finalize() ([]byte, error)
}

// PublicKeyContext performs asymmetric operations with one key. Operations
// are gated by the algorithm's capability flags; operations that need a
// private component fail with ErrRequiresPrivateKey on a public-only key.
type PublicKeyContext interface {
	Context

	// IsPrivate reports whether the bound key carries a private component.
	IsPrivate() bool

	// KeySizeBits returns the key size in bits.
	KeySizeBits() int

	// MaxSignatureSize returns an upper bound on the signature length.
	MaxSignatureSize() int

	// Sign signs a precomputed digest with the private key.
	Sign(digest []byte) ([]byte, error)

	// Verify verifies a signature over a precomputed digest.
	Verify(digest, signature []byte) (bool, error)

	// Encrypt encrypts a small plaintext with the public key.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt decrypts a ciphertext with the private key.
	Decrypt(ciphertext []byte) ([]byte, error)
}

// BlockPrimitive is a raw fixed-size block transform supplied by a backend.
// It performs no buffering and no chaining.
type BlockPrimitive interface {
	BlockSize() int
	EncryptBlock(dst, src []byte)
	DecryptBlock(dst, src []byte)
}

// StreamPrimitive processes buffers of arbitrary length directly.
type StreamPrimitive interface {
	XORKeyStream(dst, src []byte)
}

// Backend supplies raw cryptographic primitives keyed by algorithm name.
// Implementations do no buffering and no container formatting; failures are
// wrapped in ErrBackendFailure.
type Backend interface {
	// BlockCipher returns the raw block transform for a cipher algorithm.
	BlockCipher(algorithm string, key []byte) (BlockPrimitive, error)

	// StreamCipher returns the keystream transform for a stream algorithm.
	StreamCipher(algorithm string, key, iv []byte) (StreamPrimitive, error)

	// Digest returns a fresh hash for a digest algorithm.
	Digest(algorithm string) (hash.Hash, error)

	// SignDigest signs a precomputed digest with the key's private component.
	SignDigest(key *keys.Key, digest []byte) ([]byte, error)

	// VerifyDigest verifies a signature over a precomputed digest.
	VerifyDigest(key *keys.Key, digest, signature []byte) (bool, error)

	// EncryptWithPublicKey encrypts plaintext with the key's public component.
	EncryptWithPublicKey(key *keys.Key, plaintext []byte) ([]byte, error)

	// DecryptWithPrivateKey decrypts ciphertext with the key's private component.
	DecryptWithPrivateKey(key *keys.Key, ciphertext []byte) ([]byte, error)

	// GenerateKey generates a fresh key pair for an algorithm family.
	GenerateKey(family keys.Family, bits int) (*keys.Key, error)
}
