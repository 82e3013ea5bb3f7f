package provider

import "errors"

// Error taxonomy of the provider framework. All failures are surfaced
// synchronously to the caller and are matchable with errors.Is.
var (
	// ErrWrongState indicates an operation invalid in the context's current lifecycle state.
	ErrWrongState = errors.New("operation invalid in current context state")

	// ErrBadFormat indicates malformed wire bytes in a key container.
	ErrBadFormat = errors.New("malformed key container")

	// ErrBadPoint indicates an elliptic curve point that is not a well-formed uncompressed encoding.
	ErrBadPoint = errors.New("malformed elliptic curve point")

	// ErrUnsupportedAlgorithm indicates a recognized-but-unimplemented algorithm or an unknown name/OID.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrUnsupportedKeyVariant indicates a recognized container whose declared variant is not implemented,
	// such as a multi-prime RSA private key.
	ErrUnsupportedKeyVariant = errors.New("unsupported key variant")

	// ErrBadIVSize indicates an initialization vector whose length does not match the algorithm descriptor.
	ErrBadIVSize = errors.New("initialization vector size mismatch")

	// ErrBadKeySize indicates key material whose length does not match the algorithm descriptor.
	ErrBadKeySize = errors.New("key size mismatch")

	// ErrIncompleteBlock indicates a cipher finalize with unpadded leftover data in a block mode.
	ErrIncompleteBlock = errors.New("incomplete trailing block")

	// ErrBadPadding indicates block padding that fails verification on decryption.
	ErrBadPadding = errors.New("invalid block padding")

	// ErrRequiresPrivateKey indicates an operation that needs a private component the key lacks.
	ErrRequiresPrivateKey = errors.New("operation requires a private key")

	// ErrUnsupportedOperation indicates an operation not covered by the algorithm's capability flags.
	ErrUnsupportedOperation = errors.New("operation not supported by algorithm")

	// ErrBackendFailure indicates an opaque failure surfaced from the algorithm backend.
	ErrBackendFailure = errors.New("backend failure")
)
