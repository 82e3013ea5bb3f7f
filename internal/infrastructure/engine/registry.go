package engine

import (
	"fmt"
	"sort"
	"sync"

	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/infrastructure/backend"
)

// Public-key algorithm names served by the software backend
const (
	AlgorithmRSA = "RSA"
	AlgorithmDSA = "DSA"
	AlgorithmEC  = "EC"
)

// Registry maps algorithm names to immutable descriptors. It is populated at
// startup via Register and read concurrently afterwards.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*provider.AlgorithmDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*provider.AlgorithmDescriptor),
	}
}

// Register validates a descriptor and adds it to the registry. Registering a
// name twice fails; descriptors are never replaced or mutated.
func (r *Registry) Register(descriptor *provider.AlgorithmDescriptor) error {
	if err := descriptor.Validate(); err != nil {
		return fmt.Errorf("failed to register algorithm: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[descriptor.Name]; exists {
		return fmt.Errorf("algorithm %q is already registered", descriptor.Name)
	}
	r.descriptors[descriptor.Name] = descriptor
	return nil
}

// Lookup returns the shared descriptor for an algorithm name.
func (r *Registry) Lookup(name string) (*provider.AlgorithmDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, exists := r.descriptors[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q is not registered", provider.ErrUnsupportedAlgorithm, name)
	}
	return descriptor, nil
}

// Names returns the registered algorithm names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry seeded with the software backend's
// algorithm catalog. It is built once and shared.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, descriptor := range builtinDescriptors() {
			// Built-in descriptors are static and validated in tests; a
			// registration failure here is a programming error.
			if err := defaultRegistry.Register(descriptor); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

func builtinDescriptors() []*provider.AlgorithmDescriptor {
	return []*provider.AlgorithmDescriptor{
		{Name: backend.AlgorithmSHA256, Class: provider.ClassDigest, DigestSize: 32},
		{Name: backend.AlgorithmSHA512, Class: provider.ClassDigest, DigestSize: 64},
		{Name: backend.AlgorithmSHA3256, Class: provider.ClassDigest, DigestSize: 32},
		{Name: backend.AlgorithmBLAKE2b256, Class: provider.ClassDigest, DigestSize: 32},

		{Name: backend.AlgorithmAES128, Class: provider.ClassCipher, KeySize: 16, BlockSize: 16, IVSize: 16},
		{Name: backend.AlgorithmAES192, Class: provider.ClassCipher, KeySize: 24, BlockSize: 16, IVSize: 16},
		{Name: backend.AlgorithmAES256, Class: provider.ClassCipher, KeySize: 32, BlockSize: 16, IVSize: 16},
		{Name: backend.AlgorithmDES, Class: provider.ClassCipher, KeySize: 8, BlockSize: 8, IVSize: 8},
		{Name: backend.Algorithm3DES, Class: provider.ClassCipher, KeySize: 24, BlockSize: 8, IVSize: 8},
		// BlockSize 1 marks a stream primitive.
		{Name: backend.AlgorithmChaCha20, Class: provider.ClassCipher, KeySize: 32, BlockSize: 1, IVSize: 12},

		{Name: AlgorithmRSA, Class: provider.ClassPublicKey, CanSign: true, CanEncrypt: true},
		{Name: AlgorithmDSA, Class: provider.ClassPublicKey, CanSign: true, HasParams: true},
		{Name: AlgorithmEC, Class: provider.ClassPublicKey, CanSign: true, HasParams: true},
	}
}
