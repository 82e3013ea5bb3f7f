package engine

import (
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/pkg/logger"
)

// publicKeyContext struct that implements the provider.PublicKeyContext
// interface. Operations are gated by the descriptor's capability flags and
// dispatched to the backend.
type publicKeyContext struct {
	descriptor *provider.AlgorithmDescriptor
	backend    provider.Backend
	key        *keys.Key
	state      provider.State
	logger     logger.Logger
}

// NewPublicKeyContext binds a key to a public-key algorithm descriptor. The
// key's family must match the descriptor.
func NewPublicKeyContext(descriptor *provider.AlgorithmDescriptor, b provider.Backend, key *keys.Key, logger logger.Logger) (provider.PublicKeyContext, error) {
	if descriptor.Class != provider.ClassPublicKey {
		return nil, fmt.Errorf("%w: %q is not a public-key algorithm", provider.ErrUnsupportedAlgorithm, descriptor.Name)
	}
	if string(key.Family) != descriptor.Name {
		return nil, fmt.Errorf("%w: %s key bound to algorithm %q", provider.ErrUnsupportedAlgorithm, key.Family, descriptor.Name)
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create public-key context: %w", err)
	}

	return &publicKeyContext{
		descriptor: descriptor,
		backend:    b,
		key:        key,
		state:      provider.StateReady,
		logger:     logger,
	}, nil
}

func (p *publicKeyContext) Algorithm() *provider.AlgorithmDescriptor { return p.descriptor }

func (p *publicKeyContext) State() provider.State { return p.state }

func (p *publicKeyContext) IsPrivate() bool { return p.key.IsPrivate() }

func (p *publicKeyContext) KeySizeBits() int { return p.key.Bits() }

// MaxSignatureSize returns an upper bound on the signature length: the
// modulus size for RSA, the DER envelope of two subgroup-sized integers for
// DSA and ECDSA.
func (p *publicKeyContext) MaxSignatureSize() int {
	switch p.key.Family {
	case keys.FamilyRSA:
		return (p.key.Bits() + 7) / 8
	case keys.FamilyDSA:
		orderLen := (p.key.DSA.Params.Q.BitLen() + 7) / 8
		return derSignatureBound(orderLen)
	case keys.FamilyEC:
		fieldLen, err := keys.CurveFieldByteLength(p.key.EC.Curve)
		if err != nil {
			return 0
		}
		return derSignatureBound(fieldLen)
	default:
		return 0
	}
}

// derSignatureBound bounds SEQUENCE{r, s} where each integer fits in
// intLen bytes plus a possible leading zero.
func derSignatureBound(intLen int) int {
	return 2*(intLen+3) + 4
}

// Sign signs a precomputed digest with the private key.
func (p *publicKeyContext) Sign(digest []byte) ([]byte, error) {
	if err := provider.CheckState(p.state, provider.StateReady); err != nil {
		return nil, err
	}
	if !p.descriptor.CanSign {
		return nil, fmt.Errorf("%w: %q does not sign", provider.ErrUnsupportedOperation, p.descriptor.Name)
	}
	if !p.key.IsPrivate() {
		return nil, fmt.Errorf("%w: signing", provider.ErrRequiresPrivateKey)
	}
	return p.backend.SignDigest(p.key, digest)
}

// Verify verifies a signature over a precomputed digest.
func (p *publicKeyContext) Verify(digest, signature []byte) (bool, error) {
	if err := provider.CheckState(p.state, provider.StateReady); err != nil {
		return false, err
	}
	if !p.descriptor.CanSign {
		return false, fmt.Errorf("%w: %q does not sign", provider.ErrUnsupportedOperation, p.descriptor.Name)
	}
	return p.backend.VerifyDigest(p.key, digest, signature)
}

// Encrypt encrypts plaintext with the public key.
func (p *publicKeyContext) Encrypt(plaintext []byte) ([]byte, error) {
	if err := provider.CheckState(p.state, provider.StateReady); err != nil {
		return nil, err
	}
	if !p.descriptor.CanEncrypt {
		return nil, fmt.Errorf("%w: %q does not encrypt", provider.ErrUnsupportedOperation, p.descriptor.Name)
	}
	return p.backend.EncryptWithPublicKey(p.key, plaintext)
}

// Decrypt decrypts ciphertext with the private key.
func (p *publicKeyContext) Decrypt(ciphertext []byte) ([]byte, error) {
	if err := provider.CheckState(p.state, provider.StateReady); err != nil {
		return nil, err
	}
	if !p.descriptor.CanEncrypt {
		return nil, fmt.Errorf("%w: %q does not encrypt", provider.ErrUnsupportedOperation, p.descriptor.Name)
	}
	if !p.key.IsPrivate() {
		return nil, fmt.Errorf("%w: decryption", provider.ErrRequiresPrivateKey)
	}
	return p.backend.DecryptWithPrivateKey(p.key, ciphertext)
}

// Close drops the key reference and marks the context closed.
func (p *publicKeyContext) Close() error {
	p.key = nil
	p.state = provider.StateClosed
	return nil
}
