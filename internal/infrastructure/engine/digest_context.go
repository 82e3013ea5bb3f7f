package engine

import (
	"encoding"
	"fmt"
	"hash"

	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/pkg/logger"
)

// digestContext struct that implements the provider.DigestContext interface
type digestContext struct {
	descriptor *provider.AlgorithmDescriptor
	backend    provider.Backend
	hash       hash.Hash
	state      provider.State
	logger     logger.Logger
}

// NewDigestContext creates a ready-to-use digest context for a registered
// digest algorithm.
func NewDigestContext(descriptor *provider.AlgorithmDescriptor, b provider.Backend, logger logger.Logger) (provider.DigestContext, error) {
	if descriptor.Class != provider.ClassDigest {
		return nil, fmt.Errorf("%w: %q is not a digest algorithm", provider.ErrUnsupportedAlgorithm, descriptor.Name)
	}

	h, err := b.Digest(descriptor.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest context: %w", err)
	}

	return &digestContext{
		descriptor: descriptor,
		backend:    b,
		hash:       h,
		state:      provider.StateReady,
		logger:     logger,
	}, nil
}

func (d *digestContext) Algorithm() *provider.AlgorithmDescriptor { return d.descriptor }

func (d *digestContext) State() provider.State { return d.state }

// Update feeds more data into the digest.
func (d *digestContext) Update(data []byte) error {
	if err := provider.CheckState(d.state, provider.StateReady); err != nil {
		return err
	}
	d.hash.Write(data)
	return nil
}

// Finalize returns the digest and closes the context.
func (d *digestContext) Finalize() ([]byte, error) {
	if err := provider.CheckState(d.state, provider.StateReady); err != nil {
		return nil, err
	}
	d.state = provider.StateClosed

	sum := d.hash.Sum(nil)
	if len(sum) != d.descriptor.DigestSize {
		return nil, fmt.Errorf("%w: digest size %d does not match declared %d",
			provider.ErrBackendFailure, len(sum), d.descriptor.DigestSize)
	}
	return sum, nil
}

// Copy returns an independent context carrying the same accumulated state.
func (d *digestContext) Copy() (provider.DigestContext, error) {
	if err := provider.CheckState(d.state, provider.StateReady); err != nil {
		return nil, err
	}

	// All hashes served by the software backend serialize their state.
	marshaler, ok := d.hash.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not support state copy", provider.ErrUnsupportedOperation, d.descriptor.Name)
	}
	snapshot, err := marshaler.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot digest state: %w", err)
	}

	fresh, err := d.backend.Digest(d.descriptor.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest copy: %w", err)
	}
	unmarshaler, ok := fresh.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not support state copy", provider.ErrUnsupportedOperation, d.descriptor.Name)
	}
	if err := unmarshaler.UnmarshalBinary(snapshot); err != nil {
		return nil, fmt.Errorf("failed to restore digest state: %w", err)
	}

	return &digestContext{
		descriptor: d.descriptor,
		backend:    d.backend,
		hash:       fresh,
		state:      provider.StateReady,
		logger:     d.logger,
	}, nil
}

// Close discards the accumulated state. Closing twice is harmless.
func (d *digestContext) Close() error {
	d.hash = nil
	d.state = provider.StateClosed
	return nil
}
